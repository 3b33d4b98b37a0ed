// Package rational gives exact rational arithmetic over math/big.Rat a
// DivByZero error return instead of a panic, the same shape the teacher's
// calculate() function uses for its (float64, ok bool) result.
package rational

import (
	"math/big"

	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
)

// Rational is an exact, always-reduced fraction.
type Rational = big.Rat

// FromInt builds a Rational equal to n.
func FromInt(n int) *Rational {
	return new(big.Rat).SetInt64(int64(n))
}

// Add returns a + b.
func Add(a, b *Rational) *Rational {
	return new(big.Rat).Add(a, b)
}

// Sub returns a - b.
func Sub(a, b *Rational) *Rational {
	return new(big.Rat).Sub(a, b)
}

// Mul returns a * b.
func Mul(a, b *Rational) *Rational {
	return new(big.Rat).Mul(a, b)
}

// Div returns a / b, or a DivByZero *engineerr.Err if b is zero.
func Div(a, b *Rational) (*Rational, error) {
	if b.Sign() == 0 {
		return nil, engineerr.New(engineerr.DivByZero, "division by zero")
	}
	return new(big.Rat).Quo(a, b), nil
}

// IsNegative reports whether r < 0.
func IsNegative(r *Rational) bool {
	return r.Sign() < 0
}

// IsZero reports whether r == 0.
func IsZero(r *Rational) bool {
	return r.Sign() == 0
}

// Equal reports whether a == b.
func Equal(a, b *Rational) bool {
	return a.Cmp(b) == 0
}

// Neg returns -r.
func Neg(r *Rational) *Rational {
	return new(big.Rat).Neg(r)
}

// Abs returns |r|.
func Abs(r *Rational) *Rational {
	return new(big.Rat).Abs(r)
}

// Key renders r the way ExprTree's canonical key requires: the exact
// fraction string, e.g. "3" or "3/2" or "-1/2".
func Key(r *Rational) string {
	return r.RatString()
}

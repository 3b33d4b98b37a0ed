package rational

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
)

func TestArithmetic(t *testing.T) {
	a, b := FromInt(1), FromInt(3)
	qt.Assert(t, qt.Equals(Add(a, b).RatString(), "4"))
	qt.Assert(t, qt.Equals(Sub(a, b).RatString(), "-2"))
	qt.Assert(t, qt.Equals(Mul(a, b).RatString(), "3"))

	q, err := Div(a, b)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(q.RatString(), "1/3"))
}

func TestDivByZero(t *testing.T) {
	_, err := Div(FromInt(1), FromInt(0))
	qt.Assert(t, qt.ErrorIs(err, engineerr.New(engineerr.DivByZero, "")))
}

func TestPredicates(t *testing.T) {
	qt.Assert(t, qt.IsTrue(IsNegative(FromInt(-1))))
	qt.Assert(t, qt.IsFalse(IsNegative(FromInt(0))))
	qt.Assert(t, qt.IsTrue(IsZero(FromInt(0))))
	qt.Assert(t, qt.IsTrue(Equal(FromInt(4), Mul(FromInt(2), FromInt(2)))))
	qt.Assert(t, qt.Equals(Neg(FromInt(3)).RatString(), "-3"))
	qt.Assert(t, qt.Equals(Abs(FromInt(-3)).RatString(), "3"))
}

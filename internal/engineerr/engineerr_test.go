package engineerr

import (
	"errors"
	"math/big"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestIsMatchesByKind(t *testing.T) {
	err := WrongValueErr(big.NewRat(5, 1))
	qt.Assert(t, qt.IsTrue(errors.Is(err, New(WrongValue, ""))))
	qt.Assert(t, qt.IsFalse(errors.Is(err, New(Syntax, ""))))
}

func TestErrorMessages(t *testing.T) {
	qt.Assert(t, qt.Equals(WrongValueErr(big.NewRat(5, 1)).Error(), "WrongValue: evaluated to 5"))
	qt.Assert(t, qt.Equals(WrongNumbersErr([]int{1, 2, 3}).Error(), "WrongNumbers: got [1 2 3]"))
	qt.Assert(t, qt.Equals(DuplicateErr("1+2").Error(), `Duplicate: already accepted as "1+2"`))
	qt.Assert(t, qt.Equals(New(Syntax, "unexpected token").Error(), "Syntax: unexpected token"))
}

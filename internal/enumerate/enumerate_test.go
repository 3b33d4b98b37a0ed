package enumerate

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/rational"
)

func TestEnumerateSingleLiteral(t *testing.T) {
	trees, err := Enumerate([]int{7}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(trees, 1))
	qt.Assert(t, qt.Equals(trees[0].Value().RatString(), "7"))
}

func TestEnumerateDedupesStructure(t *testing.T) {
	trees, err := Enumerate([]int{1, 1}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	seen := map[string]bool{}
	for _, e := range trees {
		key := e.CanonicalKey()
		qt.Assert(t, qt.IsFalse(seen[key]))
		seen[key] = true
	}
}

func TestEnumeratePrunesNegativeAndDivByZero(t *testing.T) {
	trees, err := Enumerate([]int{0, 3}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	for _, e := range trees {
		qt.Assert(t, qt.IsFalse(rational.IsNegative(e.Value())))
		qt.Assert(t, qt.IsFalse(e.CanonicalKey() == "/[3][0]"))
	}
}

func TestEnumerateFindsKnownSolution(t *testing.T) {
	trees, err := Enumerate([]int{3, 4, 6, 7, 12}, config.Default())
	qt.Assert(t, qt.IsNil(err))
	found := false
	for _, e := range trees {
		if rational.Equal(e.Value(), rational.FromInt(42)) {
			found = true
			break
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

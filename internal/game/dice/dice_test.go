package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rowanvale/lantern/internal/game/dice"
)

// fixedSource returns scripted values in order, repeating the last one.
type fixedSource struct {
	values []int
	idx    int
}

func (f *fixedSource) Intn(n int) int {
	v := f.values[f.idx]
	if f.idx < len(f.values)-1 {
		f.idx++
	}
	return v % n
}

func TestParse(t *testing.T) {
	tests := []struct {
		expr  string
		want  dice.Expression
		valid bool
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}, true},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}, true},
		{"1d20+2", dice.Expression{Raw: "1d20+2", Count: 1, Sides: 20, Modifier: 2}, true},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}, true},
		{"2D6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}, true},
		{"", dice.Expression{}, false},
		{"20", dice.Expression{}, false},
		{"0d6", dice.Expression{}, false},
		{"2d1", dice.Expression{}, false},
		{"2d6+x", dice.Expression{}, false},
	}
	for _, tt := range tests {
		got, err := dice.Parse(tt.expr)
		if !tt.valid {
			assert.Error(t, err, "expression %q must not parse", tt.expr)
			continue
		}
		require.NoError(t, err, "expression %q must parse", tt.expr)
		assert.Equal(t, tt.want, got)
	}
}

func TestMustParse_PanicsOnBadExpression(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("not dice") })
}

func TestRoll_UsesEveryDie(t *testing.T) {
	src := &fixedSource{values: []int{3, 4}}
	got := dice.Roll(dice.MustParse("2d6+3"), src)

	assert.Equal(t, []int{4, 5}, got.Dice)
	assert.Equal(t, 3, got.Modifier)
	assert.Equal(t, 12, got.Total())
	assert.Equal(t, "2d6+3: [4 5]+3 = 12", got.String())
}

func TestRollExpr_RejectsBadExpression(t *testing.T) {
	_, err := dice.RollExpr("banana", dice.NewCryptoSource())
	assert.Error(t, err)
}

// TestRoll_FacesInRange checks that every rolled face lands in
// [1, sides] and the total matches the faces plus the modifier, for
// arbitrary expressions.
func TestRoll_FacesInRange(t *testing.T) {
	src := dice.NewCryptoSource()
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 10).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		mod := rapid.IntRange(-20, 20).Draw(rt, "mod")

		expr := dice.Expression{Raw: "x", Count: count, Sides: sides, Modifier: mod}
		got := dice.Roll(expr, src)

		require.Len(rt, got.Dice, count)
		sum := mod
		for _, face := range got.Dice {
			assert.GreaterOrEqual(rt, face, 1)
			assert.LessOrEqual(rt, face, sides)
			sum += face
		}
		assert.Equal(rt, sum, got.Total())
	})
}

func TestCryptoSource_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 500; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSource_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
}

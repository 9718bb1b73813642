// Package dice evaluates the d-notation expressions the encounter
// handlers roll: attack checks, weapon and spell damage, flee attempts.
package dice

import "fmt"

// Source supplies the randomness behind every roll. Implementations must
// be safe for concurrent use; combat tests substitute a scripted source
// to make encounters deterministic.
type Source interface {
	// Intn returns a random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult records one evaluated roll. The individual die faces stay
// separate from the modifier so a fight's outcome can be audited.
type RollResult struct {
	Expression string
	Dice       []int
	Modifier   int
}

// Total returns the rolled faces summed with the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll for debug logs, e.g. "2d6+3: [4 5]+3 = 12".
func (r RollResult) String() string {
	return fmt.Sprintf("%s: %v%+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed d-notation expression: Count dice of Sides faces
// plus a flat Modifier. Encounter tuning declares these once at package
// level via MustParse.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// Parse reads an expression of the form "d20", "2d6", "1d20+2", or
// "4d8-2".
//
// Postcondition: On success Count >= 1 and Sides >= 2.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}

	countStr, rest, found := strings.Cut(s, "d")
	if !found {
		return Expression{}, fmt.Errorf("dice: %q has no die marker", expr)
	}

	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return Expression{}, fmt.Errorf("dice: bad die count in %q", expr)
		}
		count = n
	}

	// Split the modifier off the sides. The sign stays attached so Atoi
	// reads "+3" and "-2" directly.
	sidesStr := rest
	modStr := ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 {
		return Expression{}, fmt.Errorf("dice: bad die sides in %q", expr)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: bad modifier in %q", expr)
		}
	}

	return Expression{Raw: s, Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParse parses expr and panics on error, for package-level tuning
// declarations.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err.Error())
	}
	return e
}

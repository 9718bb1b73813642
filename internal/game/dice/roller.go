package dice

// Roll evaluates a parsed expression against src.
//
// Precondition: expr must come from Parse or MustParse; src must be
// non-nil.
// Postcondition: len(result.Dice) == expr.Count and every face is in
// [1, expr.Sides].
func Roll(expr Expression, src Source) RollResult {
	faces := make([]int, expr.Count)
	for i := range faces {
		faces[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       faces,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses and rolls expr in one call, for expressions that arrive
// at runtime rather than from package-level tuning.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

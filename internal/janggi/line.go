package janggi

// between returns the squares strictly between from and to when they share a
// rank, a file, or a palace diagonal. ok is false for any other pair and for
// from == to.
func between(from, to Coordinate) ([]Coordinate, bool) {
	if from == to {
		return nil, false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	if dr != 0 && dc != 0 && !diagonalLink(from, to) {
		return nil, false
	}

	stepR, stepC := sign(dr), sign(dc)
	steps := max(abs(dr), abs(dc))

	squares := make([]Coordinate, 0, steps-1)
	for i := 1; i < steps; i++ {
		squares = append(squares, from.Offset(stepR*i, stepC*i))
	}

	return squares, true
}

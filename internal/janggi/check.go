package janggi

// IsInCheck reports whether any opposing piece has a path to color's general.
func (that *Board) IsInCheck(color Color) bool {
	general := that.generals[color]
	if general == nil {
		return false
	}

	target := general.pos
	for _, attacker := range that.pieces[color.Opponent()] {
		if attacker.HasPathTo(target, that) {
			return true
		}
	}

	return false
}

// Checkers returns every opposing piece currently threatening color's general.
func (that *Board) Checkers(color Color) []*Piece {
	general := that.generals[color]
	if general == nil {
		return nil
	}

	var checkers []*Piece
	for _, attacker := range that.pieces[color.Opponent()] {
		if attacker.HasPathTo(general.pos, that) {
			checkers = append(checkers, attacker)
		}
	}

	return checkers
}

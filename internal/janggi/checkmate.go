package janggi

import "slices"

// rescuePlan collects the squares that can answer every current check.
type rescuePlan struct {
	// squares where any defender may land: checker squares and their blocking squares.
	squares []Coordinate
	// cannon screens owned by the defender; moving them anywhere breaks the jump.
	ownScreens []Coordinate
	// cannon screens owned by the attacker; only a cannon landing there breaks the jump.
	enemyScreens []Coordinate
}

func (that *rescuePlan) addSquare(sq Coordinate) {
	if !slices.Contains(that.squares, sq) {
		that.squares = append(that.squares, sq)
	}
}

// IsCheckmate reports whether color is in check and has no legal reply.
//
// Instead of trying every move of every piece it only probes the moves that
// can possibly matter: general moves inside the palace, captures of a checker,
// interpositions on a checker's line, and moves of a defender serving as a
// cannon's screen.
func (that *Board) IsCheckmate(color Color) bool {
	general := that.generals[color]
	if general == nil || !that.IsInCheck(color) {
		return false
	}

	origin := general.pos
	for _, sq := range PalaceSquares(color) {
		if that.AttemptMove(origin, sq) {
			return false
		}
	}

	plan := that.planRescue(color, origin)

	defenders := slices.Clone(that.pieces[color])
	for _, defender := range defenders {
		if defender == general {
			continue
		}

		from := defender.pos
		for _, sq := range plan.squares {
			if that.AttemptMove(from, sq) {
				return false
			}
		}

		if defender.kind != Cannon {
			continue
		}

		for _, sq := range plan.enemyScreens {
			if that.AttemptMove(from, sq) {
				return false
			}
		}
	}

	for _, screen := range plan.ownScreens {
		for _, sq := range AllSquares() {
			if that.AttemptMove(screen, sq) {
				return false
			}
		}
	}

	return true
}

func (that *Board) planRescue(color Color, target Coordinate) rescuePlan {
	var plan rescuePlan

	for _, checker := range that.Checkers(color) {
		var jumped Coordinate

		if checker.kind == Cannon {
			screen, ok := checker.JumpedSquare(target, that)
			if ok {
				jumped = screen
				if that.At(screen).color == color {
					plan.ownScreens = append(plan.ownScreens, screen)
				} else {
					plan.enemyScreens = append(plan.enemyScreens, screen)
				}
			}
		}

		for _, sq := range checker.BlockingSquares(target, jumped) {
			plan.addSquare(sq)
		}
		plan.addSquare(checker.pos)
	}

	return plan
}

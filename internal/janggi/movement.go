package janggi

// capability is the per-kind movement behaviour. The table below is indexed by
// Kind and must have an entry for every kind.
type capability struct {
	hasPathTo       func(p *Piece, dst Coordinate, b *Board) bool
	blockingSquares func(p *Piece, dst, jumped Coordinate) []Coordinate
}

var capabilities = [numKinds]capability{
	General:  {hasPathTo: palaceStepPath, blockingSquares: noBlockingSquares},
	Guard:    {hasPathTo: palaceStepPath, blockingSquares: noBlockingSquares},
	Horse:    {hasPathTo: leaperPath(horseLeaps), blockingSquares: leaperBlockingSquares(horseLeaps)},
	Elephant: {hasPathTo: leaperPath(elephantLeaps), blockingSquares: leaperBlockingSquares(elephantLeaps)},
	Chariot:  {hasPathTo: chariotPath, blockingSquares: lineBlockingSquares},
	Cannon:   {hasPathTo: cannonPath, blockingSquares: cannonBlockingSquares},
	Soldier:  {hasPathTo: soldierPath, blockingSquares: noBlockingSquares},
}

// leap is a fixed offset together with the squares, relative to the origin,
// that must be empty for the leap to be possible.
type leap struct {
	dr, dc int
	legs   [][2]int
}

var horseLeaps = []leap{
	{dr: -2, dc: -1, legs: [][2]int{{-1, 0}}},
	{dr: -2, dc: 1, legs: [][2]int{{-1, 0}}},
	{dr: 2, dc: -1, legs: [][2]int{{1, 0}}},
	{dr: 2, dc: 1, legs: [][2]int{{1, 0}}},
	{dr: -1, dc: 2, legs: [][2]int{{0, 1}}},
	{dr: 1, dc: 2, legs: [][2]int{{0, 1}}},
	{dr: -1, dc: -2, legs: [][2]int{{0, -1}}},
	{dr: 1, dc: -2, legs: [][2]int{{0, -1}}},
}

var elephantLeaps = []leap{
	{dr: -3, dc: -2, legs: [][2]int{{-1, 0}, {-2, -1}}},
	{dr: -3, dc: 2, legs: [][2]int{{-1, 0}, {-2, 1}}},
	{dr: 3, dc: -2, legs: [][2]int{{1, 0}, {2, -1}}},
	{dr: 3, dc: 2, legs: [][2]int{{1, 0}, {2, 1}}},
	{dr: -2, dc: 3, legs: [][2]int{{0, 1}, {-1, 2}}},
	{dr: 2, dc: 3, legs: [][2]int{{0, 1}, {1, 2}}},
	{dr: -2, dc: -3, legs: [][2]int{{0, -1}, {-1, -2}}},
	{dr: 2, dc: -3, legs: [][2]int{{0, -1}, {1, -2}}},
}

func findLeap(leaps []leap, from, to Coordinate) (leap, bool) {
	dr, dc := to.Row-from.Row, to.Col-from.Col
	for _, l := range leaps {
		if l.dr == dr && l.dc == dc {
			return l, true
		}
	}
	return leap{}, false
}

func leaperPath(leaps []leap) func(p *Piece, dst Coordinate, b *Board) bool {
	return func(p *Piece, dst Coordinate, b *Board) bool {
		l, ok := findLeap(leaps, p.pos, dst)
		if !ok {
			return false
		}

		for _, leg := range l.legs {
			if b.At(p.pos.Offset(leg[0], leg[1])) != nil {
				return false
			}
		}

		return true
	}
}

func leaperBlockingSquares(leaps []leap) func(p *Piece, dst, _ Coordinate) []Coordinate {
	return func(p *Piece, dst, _ Coordinate) []Coordinate {
		l, ok := findLeap(leaps, p.pos, dst)
		if !ok {
			return nil
		}

		squares := make([]Coordinate, 0, len(l.legs))
		for _, leg := range l.legs {
			squares = append(squares, p.pos.Offset(leg[0], leg[1]))
		}

		return squares
	}
}

// palaceStepPath moves the general and guards one step along the lines of
// their own palace.
func palaceStepPath(p *Piece, dst Coordinate, _ *Board) bool {
	if !InPalace(p.color, dst) {
		return false
	}

	dr, dc := abs(dst.Row-p.pos.Row), abs(dst.Col-p.pos.Col)
	if dr+dc == 1 {
		return true
	}

	return dr == 1 && dc == 1 && diagonalLink(p.pos, dst)
}

func forward(color Color) int {
	if color == Blue {
		return -1
	}
	return 1
}

func soldierPath(p *Piece, dst Coordinate, _ *Board) bool {
	dr, dc := dst.Row-p.pos.Row, dst.Col-p.pos.Col

	switch {
	case dr == 0 && abs(dc) == 1:
		return true
	case dc == 0 && dr == forward(p.color):
		return true
	case abs(dc) == 1 && dr == forward(p.color):
		return diagonalLink(p.pos, dst)
	default:
		return false
	}
}

func chariotPath(p *Piece, dst Coordinate, b *Board) bool {
	squares, ok := between(p.pos, dst)
	if !ok {
		return false
	}

	for _, sq := range squares {
		if b.At(sq) != nil {
			return false
		}
	}

	return true
}

// cannonPath requires exactly one screen between origin and dst; neither the
// screen nor the captured piece may be a cannon.
func cannonPath(p *Piece, dst Coordinate, b *Board) bool {
	if target := b.At(dst); target != nil && target.kind == Cannon {
		return false
	}

	squares, ok := between(p.pos, dst)
	if !ok {
		return false
	}

	screens := 0
	for _, sq := range squares {
		occupant := b.At(sq)
		if occupant == nil {
			continue
		}
		if occupant.kind == Cannon {
			return false
		}
		screens++
	}

	return screens == 1
}

func noBlockingSquares(_ *Piece, _, _ Coordinate) []Coordinate {
	return nil
}

func lineBlockingSquares(p *Piece, dst, _ Coordinate) []Coordinate {
	squares, _ := between(p.pos, dst)
	return squares
}

func cannonBlockingSquares(p *Piece, dst, jumped Coordinate) []Coordinate {
	squares, _ := between(p.pos, dst)

	blocking := make([]Coordinate, 0, len(squares))
	for _, sq := range squares {
		if sq != jumped {
			blocking = append(blocking, sq)
		}
	}

	return blocking
}

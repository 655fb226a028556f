package janggi

type placement struct {
	kind Kind
	row  int
	col  int
}

// redOpening lists red's starting squares; blue mirrors them vertically.
// The general comes first only for readability.
var redOpening = []placement{
	{General, 2, 5},
	{Chariot, 1, 1},
	{Elephant, 1, 2},
	{Horse, 1, 3},
	{Guard, 1, 4},
	{Guard, 1, 6},
	{Elephant, 1, 7},
	{Horse, 1, 8},
	{Chariot, 1, 9},
	{Cannon, 3, 2},
	{Cannon, 3, 8},
	{Soldier, 4, 1},
	{Soldier, 4, 3},
	{Soldier, 4, 5},
	{Soldier, 4, 7},
	{Soldier, 4, 9},
}

// NewOpeningBoard returns a board with both sides in the standard starting layout.
func NewOpeningBoard() *Board {
	board := NewBoard()

	for _, p := range redOpening {
		mustPlace(board, p.kind, Red, Coordinate{Row: p.row, Col: p.col})
	}

	for _, p := range redOpening {
		mustPlace(board, p.kind, Blue, Coordinate{Row: Rows + 1 - p.row, Col: p.col})
	}

	return board
}

func mustPlace(board *Board, kind Kind, color Color, at Coordinate) {
	if _, err := board.Place(kind, color, at); err != nil {
		panic(err)
	}
}

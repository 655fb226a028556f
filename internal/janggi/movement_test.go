package janggi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_CoverEveryKind(t *testing.T) {
	for kind := Kind(0); kind < numKinds; kind++ {
		assert.NotNil(t, capabilities[kind].hasPathTo, kind.String())
		assert.NotNil(t, capabilities[kind].blockingSquares, kind.String())
	}
}

func TestKind_Text(t *testing.T) {
	for kind := Kind(0); kind < numKinds; kind++ {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var parsed Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, kind, parsed)
	}

	var parsed Kind
	require.ErrorIs(t, parsed.UnmarshalText([]byte("queen")), ErrUnknownKind)

	_, err := Kind(9).MarshalText()
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestBetween(t *testing.T) {
	squares, ok := between(sq(5, 1), sq(5, 4))
	require.True(t, ok)
	assert.Equal(t, []Coordinate{sq(5, 2), sq(5, 3)}, squares)

	squares, ok = between(sq(10, 6), sq(8, 4))
	require.True(t, ok)
	assert.Equal(t, []Coordinate{sq(9, 5)}, squares)

	squares, ok = between(sq(2, 5), sq(1, 5))
	require.True(t, ok)
	assert.Empty(t, squares)

	_, ok = between(sq(8, 5), sq(9, 6))
	assert.False(t, ok, "side midpoints are not joined diagonally")

	_, ok = between(sq(5, 5), sq(6, 6))
	assert.False(t, ok, "diagonals only exist inside a palace")

	_, ok = between(sq(3, 3), sq(3, 3))
	assert.False(t, ok)
}

func TestPiece_HasPathTo(t *testing.T) {
	t.Run("Own square and off-board destinations", func(t *testing.T) {
		board := newTestBoard(t, spot{Chariot, Blue, 5, 1})
		chariot := board.At(sq(5, 1))

		assert.True(t, chariot.HasPathTo(sq(5, 1), board))
		assert.False(t, chariot.HasPathTo(sq(5, 0), board))
		assert.False(t, chariot.HasPathTo(sq(0, 1), board))
	})

	t.Run("Horse is blocked by the square next to it", func(t *testing.T) {
		// Given: a horse in the middle of the board
		board := newTestBoard(t, spot{Horse, Blue, 5, 5})
		horse := board.At(sq(5, 5))

		// Then: it reaches all eight leap targets
		for _, dst := range []Coordinate{sq(3, 4), sq(3, 6), sq(7, 4), sq(7, 6), sq(4, 7), sq(6, 7), sq(4, 3), sq(6, 3)} {
			assert.True(t, horse.HasPathTo(dst, board), dst)
		}
		assert.False(t, horse.HasPathTo(sq(4, 4), board))
		assert.False(t, horse.HasPathTo(sq(5, 7), board))

		// When: a piece stands orthogonally above it
		_, err := board.Place(Soldier, Red, sq(4, 5))
		require.NoError(t, err)

		// Then: only the two leaps through that square are cut
		assert.False(t, horse.HasPathTo(sq(3, 4), board))
		assert.False(t, horse.HasPathTo(sq(3, 6), board))
		assert.True(t, horse.HasPathTo(sq(4, 7), board))
		assert.True(t, horse.HasPathTo(sq(7, 4), board))
	})

	t.Run("Elephant needs both intermediate squares empty", func(t *testing.T) {
		board := newTestBoard(t, spot{Elephant, Red, 5, 5})
		elephant := board.At(sq(5, 5))

		assert.True(t, elephant.HasPathTo(sq(2, 3), board))
		assert.True(t, elephant.HasPathTo(sq(7, 8), board))
		assert.False(t, elephant.HasPathTo(sq(3, 4), board))

		_, err := board.Place(Soldier, Blue, sq(3, 4))
		require.NoError(t, err)
		assert.False(t, elephant.HasPathTo(sq(2, 3), board))
		assert.True(t, elephant.HasPathTo(sq(2, 7), board))

		_, err = board.Place(Soldier, Blue, sq(4, 5))
		require.NoError(t, err)
		assert.False(t, elephant.HasPathTo(sq(2, 7), board))
	})

	t.Run("Chariot slides along ranks, files and palace diagonals", func(t *testing.T) {
		board := newTestBoard(t,
			spot{Chariot, Blue, 5, 1},
			spot{Soldier, Red, 5, 4},
			spot{Chariot, Red, 8, 4},
		)
		chariot := board.At(sq(5, 1))

		assert.True(t, chariot.HasPathTo(sq(5, 3), board))
		assert.True(t, chariot.HasPathTo(sq(5, 4), board))
		assert.False(t, chariot.HasPathTo(sq(5, 9), board))
		assert.True(t, chariot.HasPathTo(sq(1, 1), board))
		assert.True(t, chariot.HasPathTo(sq(10, 1), board))
		assert.False(t, chariot.HasPathTo(sq(6, 2), board))

		palaceChariot := board.At(sq(8, 4))
		assert.True(t, palaceChariot.HasPathTo(sq(9, 5), board))
		assert.True(t, palaceChariot.HasPathTo(sq(10, 6), board))

		_, err := board.Place(Guard, Blue, sq(9, 5))
		require.NoError(t, err)
		assert.False(t, palaceChariot.HasPathTo(sq(10, 6), board))
		assert.True(t, palaceChariot.HasPathTo(sq(9, 5), board))
	})

	t.Run("Cannon needs exactly one non-cannon screen", func(t *testing.T) {
		board := newTestBoard(t,
			spot{Cannon, Blue, 5, 1},
			spot{Soldier, Red, 5, 5},
		)
		cannon := board.At(sq(5, 1))

		// no screen
		assert.False(t, cannon.HasPathTo(sq(5, 2), board))
		assert.False(t, cannon.HasPathTo(sq(5, 5), board))

		// one screen
		_, err := board.Place(Horse, Blue, sq(5, 3))
		require.NoError(t, err)
		assert.False(t, cannon.HasPathTo(sq(5, 2), board))
		assert.False(t, cannon.HasPathTo(sq(5, 3), board))
		assert.True(t, cannon.HasPathTo(sq(5, 4), board))
		assert.True(t, cannon.HasPathTo(sq(5, 5), board))
		assert.False(t, cannon.HasPathTo(sq(5, 6), board))

		// two screens
		_, err = board.Place(Horse, Red, sq(5, 2))
		require.NoError(t, err)
		assert.False(t, cannon.HasPathTo(sq(5, 5), board))
	})

	t.Run("Cannon cannot jump or capture a cannon", func(t *testing.T) {
		board := newTestBoard(t,
			spot{Cannon, Blue, 5, 1},
			spot{Cannon, Red, 5, 3},
			spot{Soldier, Red, 5, 5},
			spot{Cannon, Blue, 1, 1},
			spot{Soldier, Blue, 3, 1},
			spot{Cannon, Red, 5, 9},
		)

		assert.False(t, board.At(sq(5, 1)).HasPathTo(sq(5, 5), board))
		assert.False(t, board.At(sq(5, 1)).HasPathTo(sq(5, 4), board))
		assert.True(t, board.At(sq(1, 1)).HasPathTo(sq(4, 1), board))
		assert.False(t, board.At(sq(1, 1)).HasPathTo(sq(5, 1), board), "target is a cannon")
	})

	t.Run("Cannon jumps along palace diagonals", func(t *testing.T) {
		board := newTestBoard(t, spot{Cannon, Red, 8, 4})
		cannon := board.At(sq(8, 4))

		assert.False(t, cannon.HasPathTo(sq(10, 6), board))

		screen, err := board.Place(Guard, Blue, sq(9, 5))
		require.NoError(t, err)
		assert.True(t, cannon.HasPathTo(sq(10, 6), board))

		board.move(screen.Position(), sq(10, 5))
		_, err = board.Place(Cannon, Blue, sq(9, 5))
		require.NoError(t, err)
		assert.False(t, cannon.HasPathTo(sq(10, 6), board))
	})

	t.Run("Soldier moves forward or sideways", func(t *testing.T) {
		board := newTestBoard(t,
			spot{Soldier, Blue, 7, 1},
			spot{Soldier, Red, 4, 9},
		)
		blue := board.At(sq(7, 1))
		red := board.At(sq(4, 9))

		assert.True(t, blue.HasPathTo(sq(6, 1), board))
		assert.True(t, blue.HasPathTo(sq(7, 2), board))
		assert.False(t, blue.HasPathTo(sq(8, 1), board))
		assert.False(t, blue.HasPathTo(sq(6, 2), board))
		assert.False(t, blue.HasPathTo(sq(5, 1), board))

		assert.True(t, red.HasPathTo(sq(5, 9), board))
		assert.True(t, red.HasPathTo(sq(4, 8), board))
		assert.False(t, red.HasPathTo(sq(3, 9), board))
	})

	t.Run("Soldier follows palace diagonals forward only", func(t *testing.T) {
		board := newTestBoard(t,
			spot{Soldier, Blue, 3, 4},
			spot{Soldier, Blue, 2, 5},
			spot{Soldier, Blue, 3, 5},
		)

		assert.True(t, board.At(sq(3, 4)).HasPathTo(sq(2, 5), board))
		assert.True(t, board.At(sq(2, 5)).HasPathTo(sq(1, 4), board))
		assert.True(t, board.At(sq(2, 5)).HasPathTo(sq(1, 6), board))
		assert.False(t, board.At(sq(2, 5)).HasPathTo(sq(3, 6), board))
		assert.False(t, board.At(sq(3, 5)).HasPathTo(sq(2, 4), board))
	})

	t.Run("General and guard stay in the palace", func(t *testing.T) {
		board := newTestBoard(t,
			spot{General, Blue, 9, 5},
			spot{Guard, Blue, 8, 5},
			spot{Guard, Red, 1, 4},
		)
		general := board.At(sq(9, 5))
		blueGuard := board.At(sq(8, 5))
		redGuard := board.At(sq(1, 4))

		for _, dst := range []Coordinate{sq(8, 4), sq(8, 6), sq(10, 4), sq(10, 5), sq(10, 6), sq(9, 4), sq(9, 6)} {
			assert.True(t, general.HasPathTo(dst, board), dst)
		}
		assert.False(t, general.HasPathTo(sq(7, 5), board))
		assert.False(t, general.HasPathTo(sq(10, 7), board))

		assert.False(t, blueGuard.HasPathTo(sq(7, 5), board))
		assert.False(t, blueGuard.HasPathTo(sq(9, 4), board), "side midpoints have no diagonal")
		assert.True(t, blueGuard.HasPathTo(sq(8, 4), board))

		assert.True(t, redGuard.HasPathTo(sq(2, 5), board))
		assert.False(t, redGuard.HasPathTo(sq(3, 6), board))
		assert.False(t, redGuard.HasPathTo(sq(1, 3), board))
	})
}

func TestPiece_BlockingSquares(t *testing.T) {
	tests := []struct {
		name     string
		piece    *Piece
		dst      Coordinate
		jumped   Coordinate
		expected []Coordinate
	}{
		{
			name:     "horse leg",
			piece:    NewPiece(Horse, Blue, sq(5, 5)),
			dst:      sq(3, 4),
			expected: []Coordinate{sq(4, 5)},
		},
		{
			name:     "elephant legs",
			piece:    NewPiece(Elephant, Blue, sq(5, 5)),
			dst:      sq(2, 3),
			expected: []Coordinate{sq(4, 5), sq(3, 4)},
		},
		{
			name:     "chariot line",
			piece:    NewPiece(Chariot, Red, sq(5, 1)),
			dst:      sq(5, 5),
			expected: []Coordinate{sq(5, 2), sq(5, 3), sq(5, 4)},
		},
		{
			name:     "chariot palace diagonal",
			piece:    NewPiece(Chariot, Red, sq(8, 4)),
			dst:      sq(10, 6),
			expected: []Coordinate{sq(9, 5)},
		},
		{
			name:     "cannon line without its screen",
			piece:    NewPiece(Cannon, Red, sq(5, 1)),
			dst:      sq(5, 5),
			jumped:   sq(5, 3),
			expected: []Coordinate{sq(5, 2), sq(5, 4)},
		},
		{
			name:  "general",
			piece: NewPiece(General, Red, sq(2, 5)),
			dst:   sq(3, 5),
		},
		{
			name:  "soldier",
			piece: NewPiece(Soldier, Red, sq(4, 5)),
			dst:   sq(5, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, tt.piece.BlockingSquares(tt.dst, tt.jumped))
		})
	}
}

func TestPiece_JumpedSquare(t *testing.T) {
	board := newTestBoard(t,
		spot{Cannon, Blue, 5, 1},
		spot{Soldier, Red, 5, 3},
		spot{Chariot, Blue, 1, 1},
	)

	screen, ok := board.At(sq(5, 1)).JumpedSquare(sq(5, 5), board)
	require.True(t, ok)
	assert.Equal(t, sq(5, 3), screen)

	_, ok = board.At(sq(5, 1)).JumpedSquare(sq(6, 2), board)
	assert.False(t, ok)

	_, ok = board.At(sq(1, 1)).JumpedSquare(sq(5, 1), board)
	assert.False(t, ok, "only cannons jump")
}

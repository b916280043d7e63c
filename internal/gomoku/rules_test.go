package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// boardWith places stones without going through the turn controller.
func boardWith(t *testing.T, size int, stones map[entity.Coordinate]entity.StoneType) entity.Board {
	t.Helper()

	board := entity.NewBoard(size)
	for coord, stone := range stones {
		next, err := board.PlaceStone(coord, stone)
		require.NoError(t, err)
		board = next
	}

	return board
}

// drawPattern fills a 5x5 board so that no row, column or diagonal holds five of a kind.
func drawPattern(x, y int) entity.StoneType {
	if (x+2*y)%4 < 2 {
		return entity.StoneBlack
	}
	return entity.StoneWhite
}

func fullDrawBoard(t *testing.T, skip *entity.Coordinate) entity.Board {
	t.Helper()

	stones := make(map[entity.Coordinate]entity.StoneType)
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			coord := entity.Coordinate{X: x, Y: y}
			if skip != nil && coord == *skip {
				continue
			}
			stones[coord] = drawPattern(x, y)
		}
	}

	return boardWith(t, 5, stones)
}

func TestCanPlaceStone(t *testing.T) {
	// Given: a 7x7 board with a few stones
	occupied := map[entity.Coordinate]entity.StoneType{
		{X: 0, Y: 0}: entity.StoneBlack,
		{X: 3, Y: 3}: entity.StoneWhite,
		{X: 6, Y: 6}: entity.StoneBlack,
	}
	board := boardWith(t, 7, occupied)

	t.Run("False for every occupied cell", func(t *testing.T) {
		for coord := range occupied {
			assert.False(t, CanPlaceStone(board, entity.StoneBlack, coord), coord.String())
			assert.False(t, CanPlaceStone(board, entity.StoneWhite, coord), coord.String())
		}
	})

	t.Run("True for every empty cell in bounds", func(t *testing.T) {
		for x := 0; x < 7; x++ {
			for y := 0; y < 7; y++ {
				coord := entity.Coordinate{X: x, Y: y}
				if _, ok := occupied[coord]; ok {
					continue
				}
				assert.True(t, CanPlaceStone(board, entity.StoneBlack, coord), coord.String())
			}
		}
	})

	t.Run("False out of bounds", func(t *testing.T) {
		for _, coord := range []entity.Coordinate{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 7, Y: 0}, {X: 0, Y: 7}, {X: -3, Y: 9}} {
			assert.False(t, CanPlaceStone(board, entity.StoneWhite, coord), coord.String())
		}
	})

	t.Run("False for the empty stone", func(t *testing.T) {
		assert.False(t, CanPlaceStone(board, entity.StoneEmpty, entity.Coordinate{X: 1, Y: 1}))
	})
}

func TestEvaluate(t *testing.T) {
	lines := map[string][]entity.Coordinate{
		"horizontal":    {{X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 3}, {X: 5, Y: 3}},
		"vertical":      {{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: 4}},
		"diagonal":      {{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}, {X: 4, Y: 4}},
		"anti-diagonal": {{X: 6, Y: 0}, {X: 5, Y: 1}, {X: 4, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 4}},
	}

	for name, line := range lines {
		t.Run("Win on "+name+" line through any of its cells", func(t *testing.T) {
			// Given: five white stones in a line
			stones := make(map[entity.Coordinate]entity.StoneType)
			for _, coord := range line {
				stones[coord] = entity.StoneWhite
			}
			board := boardWith(t, 7, stones)

			for _, last := range line {
				// When: the board is evaluated from any stone of the line
				outcome := Evaluate(board, last)

				// Then: white wins
				assert.Equal(t, Outcome{Kind: OutcomeWin, Stone: entity.StoneWhite}, outcome, last.String())
			}
		})
	}

	t.Run("Four in a row is not a win", func(t *testing.T) {
		board := boardWith(t, 7, map[entity.Coordinate]entity.StoneType{
			{X: 0, Y: 0}: entity.StoneBlack,
			{X: 1, Y: 0}: entity.StoneBlack,
			{X: 2, Y: 0}: entity.StoneBlack,
			{X: 3, Y: 0}: entity.StoneBlack,
		})

		outcome := Evaluate(board, entity.Coordinate{X: 3, Y: 0})

		assert.Equal(t, OutcomeNone, outcome.Kind)
		assert.False(t, outcome.IsTerminal())
	})

	t.Run("Broken line is not a win", func(t *testing.T) {
		// Given: black stones with an opponent stone in the middle of the run
		board := boardWith(t, 7, map[entity.Coordinate]entity.StoneType{
			{X: 0, Y: 0}: entity.StoneBlack,
			{X: 1, Y: 0}: entity.StoneBlack,
			{X: 2, Y: 0}: entity.StoneWhite,
			{X: 3, Y: 0}: entity.StoneBlack,
			{X: 4, Y: 0}: entity.StoneBlack,
			{X: 5, Y: 0}: entity.StoneBlack,
		})

		outcome := Evaluate(board, entity.Coordinate{X: 1, Y: 0})

		assert.Equal(t, OutcomeNone, outcome.Kind)
	})

	t.Run("Six in a row is a win", func(t *testing.T) {
		stones := make(map[entity.Coordinate]entity.StoneType)
		for x := 0; x < 6; x++ {
			stones[entity.Coordinate{X: x, Y: 5}] = entity.StoneBlack
		}
		board := boardWith(t, 7, stones)

		outcome := Evaluate(board, entity.Coordinate{X: 5, Y: 5})

		assert.Equal(t, Outcome{Kind: OutcomeWin, Stone: entity.StoneBlack}, outcome)
	})

	t.Run("Lines elsewhere on the board are ignored", func(t *testing.T) {
		// Given: a complete black line and a lone white stone
		stones := map[entity.Coordinate]entity.StoneType{{X: 6, Y: 6}: entity.StoneWhite}
		for x := 0; x < 5; x++ {
			stones[entity.Coordinate{X: x, Y: 0}] = entity.StoneBlack
		}
		board := boardWith(t, 7, stones)

		// When: evaluating from the white stone
		outcome := Evaluate(board, entity.Coordinate{X: 6, Y: 6})

		// Then: only lines through the last move count
		assert.Equal(t, OutcomeNone, outcome.Kind)
	})

	t.Run("Tie on a full board without five in a row", func(t *testing.T) {
		board := fullDrawBoard(t, nil)
		require.True(t, board.IsFull())

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				outcome := Evaluate(board, entity.Coordinate{X: x, Y: y})
				assert.Equal(t, OutcomeTie, outcome.Kind)
				assert.True(t, outcome.IsTerminal())
			}
		}
	})

	t.Run("Win takes precedence over a full board", func(t *testing.T) {
		// Given: a full 5x5 board whose first column is all black
		stones := make(map[entity.Coordinate]entity.StoneType)
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				stones[entity.Coordinate{X: x, Y: y}] = drawPattern(x, y)
			}
		}
		for y := 0; y < 5; y++ {
			stones[entity.Coordinate{X: 0, Y: y}] = entity.StoneBlack
		}
		board := boardWith(t, 5, stones)

		outcome := Evaluate(board, entity.Coordinate{X: 0, Y: 2})

		assert.Equal(t, Outcome{Kind: OutcomeWin, Stone: entity.StoneBlack}, outcome)
	})

	t.Run("Empty last move on an open board", func(t *testing.T) {
		outcome := Evaluate(entity.NewBoard(7), entity.Coordinate{X: 3, Y: 3})

		assert.Equal(t, OutcomeNone, outcome.Kind)
	})
}

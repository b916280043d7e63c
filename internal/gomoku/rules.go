package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// WinLength is the run length that ends the game.
const WinLength = 5

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWin
	OutcomeTie
)

// Outcome - result of evaluating the board after a placement. Stone is set only for OutcomeWin.
type Outcome struct {
	Kind  OutcomeKind
	Stone entity.StoneType
}

func (that Outcome) IsTerminal() bool {
	return that.Kind != OutcomeNone
}

// horizontal, vertical, diagonal, anti-diagonal.
var axes = [4]entity.Coordinate{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
}

// CanPlaceStone - reports whether stone may be placed at coord. It does not look at whose turn it is.
func CanPlaceStone(board entity.Board, stone entity.StoneType, coord entity.Coordinate) bool {
	return stone.IsPlayable() && board.InBounds(coord) && board.At(coord) == entity.StoneEmpty
}

// Evaluate - checks the four lines through lastMove for a winning run, then the board for a tie.
func Evaluate(board entity.Board, lastMove entity.Coordinate) Outcome {
	stone := board.At(lastMove)

	if stone != entity.StoneEmpty {
		for _, axis := range axes {
			run := 1 + countRun(board, lastMove, axis, stone) + countRun(board, lastMove, entity.Coordinate{X: -axis.X, Y: -axis.Y}, stone)
			if run >= WinLength {
				return Outcome{Kind: OutcomeWin, Stone: stone}
			}
		}
	}

	if board.IsFull() {
		return Outcome{Kind: OutcomeTie}
	}

	return Outcome{Kind: OutcomeNone}
}

// countRun counts same-stone cells from origin (exclusive) along step.
func countRun(board entity.Board, origin, step entity.Coordinate, stone entity.StoneType) int {
	count := 0
	cell := entity.Coordinate{X: origin.X + step.X, Y: origin.Y + step.Y}

	for board.InBounds(cell) && board.At(cell) == stone {
		count++
		cell.X += step.X
		cell.Y += step.Y
	}

	return count
}

// rejectPlacement explains why CanPlaceStone refused a move.
func rejectPlacement(board entity.Board, stone entity.StoneType, coord entity.Coordinate) error {
	switch {
	case !stone.IsPlayable():
		return fmt.Errorf("%w: %s", apperror.ErrInvalidStone, stone)
	case !board.InBounds(coord):
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, coord)
	default:
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, coord)
	}
}

package entity

import (
	"fmt"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
)

const (
	MinBoardSize     = 5
	MaxBoardSize     = 25
	DefaultBoardSize = 7
)

// StoneType is the occupant of a single intersection.
type StoneType int

const (
	StoneEmpty StoneType = iota
	StoneBlack
	StoneWhite
)

// The human always plays black and moves first.
const (
	HumanStone = StoneBlack
	AgentStone = StoneWhite
)

func (that StoneType) String() string {
	switch that {
	case StoneEmpty:
		return "empty"
	case StoneBlack:
		return "black"
	case StoneWhite:
		return "white"
	default:
		return fmt.Sprintf("stone(%d)", int(that))
	}
}

// IsPlayable reports whether the stone belongs to one of the two players.
func (that StoneType) IsPlayable() bool {
	return that == StoneBlack || that == StoneWhite
}

// Opponent - returns the stone of the other player.
func (that StoneType) Opponent() StoneType {
	if that == StoneBlack {
		return StoneWhite
	}
	return StoneBlack
}

type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (that Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", that.X, that.Y)
}

// Board is a square grid indexed as Cells[x][y]. Values are treated as
// snapshots: PlaceStone never touches the receiver's cells.
type Board struct {
	Size  int           `json:"size"`
	Cells [][]StoneType `json:"cells"`
}

// NewBoard - creates a board where every cell is empty.
func NewBoard(size int) Board {
	cells := make([][]StoneType, size)
	for x := range cells {
		cells[x] = make([]StoneType, size)
	}

	return Board{Size: size, Cells: cells}
}

// ValidateBoardSize - checks that a board of the given size can be played.
func ValidateBoardSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize {
		return fmt.Errorf("%w: %d, expected %d..%d", apperror.ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return nil
}

func (that Board) InBounds(coord Coordinate) bool {
	return coord.X >= 0 && coord.Y >= 0 && coord.X < that.Size && coord.Y < that.Size
}

// At returns StoneEmpty for coordinates outside the board.
func (that Board) At(coord Coordinate) StoneType {
	if !that.InBounds(coord) {
		return StoneEmpty
	}
	return that.Cells[coord.X][coord.Y]
}

// PlaceStone - returns a copy of the board with the stone placed at coord.
func (that Board) PlaceStone(coord Coordinate, stone StoneType) (Board, error) {
	if !stone.IsPlayable() {
		return that, fmt.Errorf("%w: %s", apperror.ErrInvalidStone, stone)
	}

	if !that.InBounds(coord) {
		return that, fmt.Errorf("%w: %s on %dx%d", apperror.ErrOutOfBounds, coord, that.Size, that.Size)
	}

	if that.Cells[coord.X][coord.Y] != StoneEmpty {
		return that, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, coord)
	}

	next := that.clone()
	next.Cells[coord.X][coord.Y] = stone

	return next, nil
}

func (that Board) IsFull() bool {
	for _, column := range that.Cells {
		for _, cell := range column {
			if cell == StoneEmpty {
				return false
			}
		}
	}
	return true
}

// Stones - returns every occupied cell with its stone.
func (that Board) Stones() map[Coordinate]StoneType {
	stones := make(map[Coordinate]StoneType)
	for x, column := range that.Cells {
		for y, cell := range column {
			if cell != StoneEmpty {
				stones[Coordinate{X: x, Y: y}] = cell
			}
		}
	}
	return stones
}

func (that Board) clone() Board {
	cells := make([][]StoneType, len(that.Cells))
	for x, column := range that.Cells {
		cells[x] = make([]StoneType, len(column))
		copy(cells[x], column)
	}

	return Board{Size: that.Size, Cells: cells}
}

package gomoku

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// boardStarPoints holds the visual dots per board size, counted from 1.
var boardStarPoints = map[int][][2]int{
	9:  {{3, 3}, {3, 7}, {5, 5}, {7, 7}, {7, 3}},
	13: {{4, 4}, {4, 7}, {4, 10}, {7, 4}, {7, 7}, {7, 10}, {10, 4}, {10, 7}, {10, 10}},
	19: {{4, 4}, {4, 10}, {4, 16}, {10, 4}, {10, 10}, {10, 16}, {16, 4}, {16, 10}, {16, 16}},
}

// LookupStarPoints - returns the zero-based star points of a board size.
func LookupStarPoints(boardSize int) ([]entity.Coordinate, error) {
	stars, ok := boardStarPoints[boardSize]
	if !ok {
		return nil, fmt.Errorf("%w: star points for %dx%d", apperror.ErrUndefinedBoardConfiguration, boardSize, boardSize)
	}

	points := make([]entity.Coordinate, 0, len(stars))
	for _, star := range stars {
		points = append(points, entity.Coordinate{X: star[0] - 1, Y: star[1] - 1})
	}

	return points, nil
}

// StarPoints answers star point lookups for rendering. Missing data is not an
// error for the caller: it is logged and treated as "no star point".
type StarPoints struct {
	logger *slog.Logger
}

func NewStarPoints(logger *slog.Logger) *StarPoints {
	return &StarPoints{
		logger: logger.With("component", "starPoints"),
	}
}

func (that *StarPoints) IsStarPoint(boardSize, x, y int) bool {
	for _, point := range that.ForBoard(boardSize) {
		if point.X == x && point.Y == y {
			return true
		}
	}
	return false
}

// ForBoard - returns the star points of a board size, empty when none are configured.
func (that *StarPoints) ForBoard(boardSize int) []entity.Coordinate {
	points, err := LookupStarPoints(boardSize)
	if errors.Is(err, apperror.ErrUndefinedBoardConfiguration) {
		that.logger.Warn("star points are not defined", "boardSize", boardSize)
		return []entity.Coordinate{}
	}

	return points
}

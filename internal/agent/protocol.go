package agent

import (
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// NoMove is the move index an agent sends when it has nothing to play.
const NoMove = -1

// Stone codes on the wire.
const (
	codeHuman = 1
	codeAgent = 2
)

// Request is the body posted to the agent. Keys are flattened cell indexes.
type Request struct {
	States map[string]int `json:"states"`
}

// Response fields are all optional, so absence is kept apart from zero values.
type Response struct {
	AgentMove *int  `json:"Agent-Move,omitempty"`
	HasEnd    *bool `json:"Has-End,omitempty"`
	Winner    *int  `json:"Winner,omitempty"`
}

// IndexOf - flattens a board coordinate, counting rows from the top of the board.
func IndexOf(boardSize int, coord entity.Coordinate) int {
	return (boardSize-coord.Y-1)*boardSize + coord.X
}

// CoordinateOf - inverse of IndexOf.
func CoordinateOf(boardSize, index int) entity.Coordinate {
	return entity.Coordinate{
		X: index % boardSize,
		Y: boardSize - 1 - index/boardSize,
	}
}

// EncodeBoard - builds the agent request from the occupied cells of the board.
func EncodeBoard(board entity.Board) Request {
	states := make(map[string]int)

	for coord, stone := range board.Stones() {
		states[strconv.Itoa(IndexOf(board.Size, coord))] = stoneCode(stone)
	}

	return Request{States: states}
}

func stoneCode(stone entity.StoneType) int {
	if stone == entity.AgentStone {
		return codeAgent
	}
	return codeHuman
}

func winnerFromCode(code *int) entity.Winner {
	if code == nil {
		return entity.WinnerTie
	}

	switch *code {
	case codeHuman:
		return entity.WinnerHuman
	case codeAgent:
		return entity.WinnerAgent
	default:
		return entity.WinnerTie
	}
}

// Decode - turns an agent reply into a move result for a board of the given size.
// The end flag or the NoMove sentinel end the game; a reply with neither a move
// nor an end is a no-op. An end reply is not validated further: a final move
// outside the board is dropped and the game still ends.
func Decode(boardSize int, resp Response) (entity.MoveResult, error) {
	hasEnd := resp.HasEnd != nil && *resp.HasEnd
	resigned := resp.AgentMove != nil && *resp.AgentMove == NoMove

	var move *entity.Coordinate

	if resp.AgentMove != nil && !resigned {
		index := *resp.AgentMove
		switch {
		case index >= 0 && index < boardSize*boardSize:
			coord := CoordinateOf(boardSize, index)
			move = &coord
		case !hasEnd:
			return entity.NoOpResult(), fmt.Errorf("%w: move index %d on %dx%d", apperror.ErrAgentMalformedResponse, index, boardSize, boardSize)
		}
	}

	switch {
	case hasEnd || resigned:
		return entity.GameEndedResult(winnerFromCode(resp.Winner), move), nil
	case move != nil:
		return entity.AgentMoveResult(*move), nil
	default:
		return entity.NoOpResult(), nil
	}
}

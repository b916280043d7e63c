package apperror

import "errors"

var (
	ErrOutOfBounds      = errors.New("coordinate is out of bounds")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidStone     = errors.New("invalid stone type")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrActionNotAllowed = errors.New("action is not allowed in the current phase")
)

// agent protocol.
var (
	ErrAgentUnreachable       = errors.New("agent is unreachable")
	ErrAgentMalformedResponse = errors.New("agent returned a malformed response")
	ErrAgentUnavailable       = errors.New("agent did not answer in time")
	ErrAgentReplyDiscarded    = errors.New("agent reply no longer matches the game")
)

var ErrUndefinedBoardConfiguration = errors.New("board configuration is not defined")

var expected = []error{
	ErrOutOfBounds, ErrCellOccupied, ErrInvalidStone, ErrNotYourTurn, ErrInvalidBoardSize,
	ErrGameNotFound, ErrGameFinished, ErrGameIsNotStarted, ErrActionNotAllowed,
	ErrAgentUnreachable, ErrAgentMalformedResponse, ErrAgentUnavailable, ErrAgentReplyDiscarded,
	ErrUndefinedBoardConfiguration,
}

// IsExpected - reports whether err comes from game rules or the agent rather than from infrastructure.
func IsExpected(err error) bool {
	for _, target := range expected {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

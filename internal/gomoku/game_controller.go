package gomoku

import (
	"fmt"

	"github.com/rocketscienceinc/wuziqi-backend/internal/apperror"
	"github.com/rocketscienceinc/wuziqi-backend/internal/entity"
)

// StartGame - moves a session from the board choice into play on an empty board.
func StartGame(game *entity.Game) error {
	if !game.IsChoosingBoard() {
		return fmt.Errorf("%w: start in phase %s", apperror.ErrActionNotAllowed, game.Phase)
	}

	resetBoard(game)
	game.Phase = entity.PhasePlaying

	return nil
}

// RestartGame - returns a finished session to the board choice, discarding the board, winner and turn.
func RestartGame(game *entity.Game) error {
	if !game.IsOver() {
		return fmt.Errorf("%w: restart in phase %s", apperror.ErrActionNotAllowed, game.Phase)
	}

	resetBoard(game)
	game.Phase = entity.PhaseChooseBoard

	return nil
}

// MakeTurn - places stone for the player whose turn it is, hands the turn over and checks for the end of the game.
// A rejected move leaves the game untouched.
func MakeTurn(game *entity.Game, stone entity.StoneType, coord entity.Coordinate) (Outcome, error) {
	if err := confirmPlaying(game); err != nil {
		return Outcome{}, err
	}

	if game.Turn != stone {
		return Outcome{}, apperror.ErrNotYourTurn
	}

	if !CanPlaceStone(game.Board, stone, coord) {
		return Outcome{}, fmt.Errorf("invalid turn: %w", rejectPlacement(game.Board, stone, coord))
	}

	board, err := game.Board.PlaceStone(coord, stone)
	if err != nil {
		return Outcome{}, fmt.Errorf("invalid turn: %w", err)
	}

	game.Board = board
	game.MoveCount++
	game.LastMove = &coord
	game.Turn = stone.Opponent()

	outcome := Evaluate(board, coord)
	updateGameStatus(game, outcome)

	return outcome, nil
}

// EndGame - finishes a game in play with the given winner.
func EndGame(game *entity.Game, winner entity.Winner) error {
	if !game.IsPlaying() {
		return fmt.Errorf("%w: end in phase %s", apperror.ErrActionNotAllowed, game.Phase)
	}

	finish(game, winner)

	return nil
}

// ApplyAgentResult - feeds a decoded agent reply through the same path as a human move.
// An end-of-game reply is authoritative: its final move is applied when legal and the
// declared winner replaces whatever the local evaluation found.
func ApplyAgentResult(game *entity.Game, result entity.MoveResult) error {
	switch result.Kind {
	case entity.MoveResultAgentMove:
		if result.Move == nil {
			return fmt.Errorf("%w: move result without a move", apperror.ErrAgentMalformedResponse)
		}

		if _, err := MakeTurn(game, entity.AgentStone, *result.Move); err != nil {
			return fmt.Errorf("failed to apply agent move: %w", err)
		}

		return nil

	case entity.MoveResultGameEnded:
		if !game.IsPlaying() {
			return fmt.Errorf("%w: end in phase %s", apperror.ErrActionNotAllowed, game.Phase)
		}

		if FinalMoveFits(game, result) {
			if _, err := MakeTurn(game, entity.AgentStone, *result.Move); err != nil {
				return fmt.Errorf("failed to apply final agent move: %w", err)
			}
			// a local finish is superseded by the declared result
			game.Phase = entity.PhasePlaying
		}

		return EndGame(game, result.Winner)

	default:
		return fmt.Errorf("%w: no move and no end of game", apperror.ErrAgentMalformedResponse)
	}
}

// FinalMoveFits - reports whether an end-of-game result carries a final move that can be placed.
func FinalMoveFits(game *entity.Game, result entity.MoveResult) bool {
	return result.Move != nil && CanPlaceStone(game.Board, entity.AgentStone, *result.Move)
}

func confirmPlaying(game *entity.Game) error {
	switch game.Phase {
	case entity.PhasePlaying:
		return nil
	case entity.PhaseGameOver:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrGameIsNotStarted
	}
}

// updateGameStatus - ends the game on a win or a tie.
func updateGameStatus(game *entity.Game, outcome Outcome) {
	switch outcome.Kind {
	case OutcomeWin:
		finish(game, entity.WinnerFromStone(outcome.Stone))
	case OutcomeTie:
		finish(game, entity.WinnerTie)
	case OutcomeNone:
	}
}

func finish(game *entity.Game, winner entity.Winner) {
	if winner == entity.WinnerNone {
		winner = entity.WinnerTie
	}

	game.Phase = entity.PhaseGameOver
	game.Winner = winner
	game.Turn = entity.StoneEmpty
}

func resetBoard(game *entity.Game) {
	game.Board = entity.NewBoard(game.BoardSize)
	game.Turn = entity.HumanStone
	game.Winner = entity.WinnerNone
	game.MoveCount = 0
	game.LastMove = nil
}

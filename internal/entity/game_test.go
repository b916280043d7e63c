package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123", 7)

	// Then: it waits for the board choice with the human to move first
	require.NotNil(t, game)
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, 7, game.BoardSize)
	assert.Equal(t, NewBoard(7), game.Board)
	assert.Equal(t, PhaseChooseBoard, game.Phase)
	assert.Equal(t, HumanStone, game.Turn)
	assert.Equal(t, WinnerNone, game.Winner)
	assert.Zero(t, game.MoveCount)
	assert.Nil(t, game.LastMove)

	require.Len(t, game.Players, 2)
	assert.Equal(t, HumanPlayerName, game.PlayerByStone(HumanStone).Name)
	assert.Equal(t, AgentPlayerName, game.PlayerByStone(AgentStone).Name)
	assert.True(t, game.PlayerByStone(AgentStone).IsAgent())
	assert.Nil(t, game.PlayerByStone(StoneEmpty))
}

func TestGamePhaseMethods(t *testing.T) {
	t.Run("IsPlaying with human turn", func(t *testing.T) {
		// Given: a game in progress on the human's turn
		game := &Game{Phase: PhasePlaying, Turn: HumanStone}

		// Then: only the human may move
		assert.True(t, game.IsPlaying())
		assert.True(t, game.IsHumanTurn())
		assert.False(t, game.IsAgentTurn())
	})

	t.Run("IsAgentTurn", func(t *testing.T) {
		game := &Game{Phase: PhasePlaying, Turn: AgentStone}

		assert.True(t, game.IsAgentTurn())
		assert.False(t, game.IsHumanTurn())
	})

	t.Run("No turn outside of play", func(t *testing.T) {
		// Given: a finished game whose turn flag was left on the human
		game := &Game{Phase: PhaseGameOver, Turn: HumanStone}

		// Then: nobody may move
		assert.True(t, game.IsOver())
		assert.False(t, game.IsHumanTurn())
		assert.False(t, game.IsAgentTurn())
	})

	t.Run("IsChoosingBoard", func(t *testing.T) {
		game := &Game{Phase: PhaseChooseBoard}

		assert.True(t, game.IsChoosingBoard())
		assert.False(t, game.IsPlaying())
	})
}

func TestWinnerFromStone(t *testing.T) {
	assert.Equal(t, WinnerHuman, WinnerFromStone(HumanStone))
	assert.Equal(t, WinnerAgent, WinnerFromStone(AgentStone))
	assert.Equal(t, WinnerTie, WinnerFromStone(StoneEmpty))
}

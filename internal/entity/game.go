package entity

// Phase is the stage of a game session.
type Phase string

const (
	PhaseChooseBoard Phase = "choose_board"
	// PhaseChooseOptions is reserved; no transition enters it yet.
	PhaseChooseOptions Phase = "choose_options"
	PhasePlaying       Phase = "playing"
	PhaseGameOver      Phase = "game_over"
)

type Winner string

const (
	WinnerNone  Winner = ""
	WinnerHuman Winner = "player"
	WinnerAgent Winner = "ai-agent"
	WinnerTie   Winner = "tie"
)

// WinnerFromStone - maps the stone of a completed line to the winner record.
func WinnerFromStone(stone StoneType) Winner {
	switch stone {
	case HumanStone:
		return WinnerHuman
	case AgentStone:
		return WinnerAgent
	default:
		return WinnerTie
	}
}

// Game is the state owned by a single session.
type Game struct {
	ID        string      `json:"id"`
	BoardSize int         `json:"board_size"`
	Board     Board       `json:"board"`
	Phase     Phase       `json:"phase"`
	Turn      StoneType   `json:"turn"`
	Winner    Winner      `json:"winner"`
	Players   []*Player   `json:"players"`
	MoveCount int         `json:"move_count"`
	LastMove  *Coordinate `json:"last_move,omitempty"`
}

func NewGame(id string, boardSize int) *Game {
	return &Game{
		ID:        id,
		BoardSize: boardSize,
		Board:     NewBoard(boardSize),
		Phase:     PhaseChooseBoard,
		Turn:      HumanStone,
		Winner:    WinnerNone,
		Players:   []*Player{NewHumanPlayer(), NewAgentPlayer()},
	}
}

func (that *Game) IsChoosingBoard() bool {
	return that.Phase == PhaseChooseBoard
}

func (that *Game) IsPlaying() bool {
	return that.Phase == PhasePlaying
}

func (that *Game) IsOver() bool {
	return that.Phase == PhaseGameOver
}

func (that *Game) IsHumanTurn() bool {
	return that.IsPlaying() && that.Turn == HumanStone
}

func (that *Game) IsAgentTurn() bool {
	return that.IsPlaying() && that.Turn == AgentStone
}

// PlayerByStone - returns the player bound to the stone, nil if none.
func (that *Game) PlayerByStone(stone StoneType) *Player {
	for _, player := range that.Players {
		if player.Stone == stone {
			return player
		}
	}
	return nil
}

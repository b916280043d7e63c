package entity

const (
	HumanPlayerName = "You"
	AgentPlayerName = "AI Agent"
)

type Player struct {
	Name  string    `json:"name"`
	Stone StoneType `json:"stone"`
}

func NewHumanPlayer() *Player {
	return &Player{Name: HumanPlayerName, Stone: HumanStone}
}

func NewAgentPlayer() *Player {
	return &Player{Name: AgentPlayerName, Stone: AgentStone}
}

func (that *Player) IsAgent() bool {
	return that.Stone == AgentStone
}

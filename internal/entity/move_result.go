package entity

type MoveResultKind int

const (
	MoveResultNoOp MoveResultKind = iota
	MoveResultAgentMove
	MoveResultGameEnded
)

// MoveResult is the decoded outcome of one agent round-trip. A GameEnded
// result may still carry the agent's final move.
type MoveResult struct {
	Kind   MoveResultKind
	Move   *Coordinate
	Winner Winner
}

func AgentMoveResult(move Coordinate) MoveResult {
	return MoveResult{Kind: MoveResultAgentMove, Move: &move}
}

func GameEndedResult(winner Winner, move *Coordinate) MoveResult {
	return MoveResult{Kind: MoveResultGameEnded, Move: move, Winner: winner}
}

func NoOpResult() MoveResult {
	return MoveResult{Kind: MoveResultNoOp}
}

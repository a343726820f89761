package engine

// State enumerates the escalation state machine. Each tier runs at most
// once; Done is the only terminal state.
type State int

const (
	StateInit State = iota
	StateTier1Running
	StateTier1Evaluated
	StateTier2Running
	StateTier2Evaluated
	StateTier3Running
	StateTier3Evaluated
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateTier1Running:
		return "tier1-running"
	case StateTier1Evaluated:
		return "tier1-evaluated"
	case StateTier2Running:
		return "tier2-running"
	case StateTier2Evaluated:
		return "tier2-evaluated"
	case StateTier3Running:
		return "tier3-running"
	case StateTier3Evaluated:
		return "tier3-evaluated"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

package lobby

// Phase is the round lifecycle state.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseStarting       Phase = "starting"
	PhasePlaying        Phase = "playing"
	PhaseRoundFailed    Phase = "round_failed"
	PhaseRoundSucceeded Phase = "round_succeeded"
	PhaseGameComplete   Phase = "game_complete"
)

// transitions lists every legal phase change. Idle is reachable from
// everywhere because a join resets the round sub-state.
var transitions = map[Phase][]Phase{
	PhaseIdle:           {PhaseStarting},
	PhaseStarting:       {PhasePlaying, PhaseIdle},
	PhasePlaying:        {PhaseRoundFailed, PhaseRoundSucceeded, PhaseIdle},
	PhaseRoundFailed:    {PhaseStarting, PhaseIdle},
	PhaseRoundSucceeded: {PhaseStarting, PhaseGameComplete, PhaseIdle},
	PhaseGameComplete:   {PhaseStarting, PhaseIdle},
}

func (p Phase) canAdvanceTo(next Phase) bool {
	for _, q := range transitions[p] {
		if q == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the phase ends a round or the whole game.
func (p Phase) Terminal() bool {
	return p == PhaseRoundFailed || p == PhaseRoundSucceeded || p == PhaseGameComplete
}

package lobby

import "testing"

func TestPhaseTransitions(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{PhaseIdle, PhaseStarting},
		{PhaseStarting, PhasePlaying},
		{PhasePlaying, PhaseRoundFailed},
		{PhasePlaying, PhaseRoundSucceeded},
		{PhaseRoundFailed, PhaseStarting},
		{PhaseRoundSucceeded, PhaseStarting},
		{PhaseRoundSucceeded, PhaseGameComplete},
		{PhaseGameComplete, PhaseStarting},
		{PhasePlaying, PhaseIdle},
	}
	for _, c := range allowed {
		if !c.from.canAdvanceTo(c.to) {
			t.Errorf("Transition %s -> %s should be allowed", c.from, c.to)
		}
	}

	blocked := []struct{ from, to Phase }{
		{PhaseIdle, PhasePlaying},
		{PhaseRoundFailed, PhaseGameComplete},
		{PhaseStarting, PhaseRoundFailed},
	}
	for _, c := range blocked {
		if c.from.canAdvanceTo(c.to) {
			t.Errorf("Transition %s -> %s should be blocked", c.from, c.to)
		}
	}
}

func TestPhaseTerminal(t *testing.T) {
	for _, p := range []Phase{PhaseRoundFailed, PhaseRoundSucceeded, PhaseGameComplete} {
		if !p.Terminal() {
			t.Errorf("%s should be terminal", p)
		}
	}
	for _, p := range []Phase{PhaseIdle, PhaseStarting, PhasePlaying} {
		if p.Terminal() {
			t.Errorf("%s should not be terminal", p)
		}
	}
}

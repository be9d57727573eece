package drash

import "log/slog"

// Phase is the progress of a single item through a command.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseTransferring
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseTransferring:
		return "transferring"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type tracker struct {
	op    string
	item  string
	phase Phase
}

func newTracker(op, item string) *tracker {
	return &tracker{op: op, item: item, phase: PhaseIdle}
}

func (t *tracker) to(p Phase) {
	slog.Debug("phase changed", "op", t.op, "item", t.item, "from", t.phase, "to", p)
	t.phase = p
}

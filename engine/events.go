package engine

import "github.com/lixenwraith/trough/reveal"

type EventKind int

const (
	EventRevealStart EventKind = iota
	EventRevealComplete
)

func (k EventKind) String() string {
	switch k {
	case EventRevealStart:
		return "reveal_start"
	case EventRevealComplete:
		return "reveal_complete"
	default:
		return "unknown"
	}
}

// Event reports a cell lifecycle transition to subscribers
type Event struct {
	Kind       EventKind
	Cell       int
	Custom     bool
	Word       string
	KeyID      string
	Recognized bool
	Points     int
}

func (in *Installation) event(kind EventKind, c *reveal.Cell) Event {
	ev := Event{
		Kind:   kind,
		Cell:   c.Index,
		Custom: c.Custom(),
		Points: c.TotalCount(),
	}
	if sk := in.state.sketches[c.Index]; sk != nil {
		ev.Word = sk.Word
		ev.KeyID = sk.KeyID
		ev.Recognized = sk.Recognized
	}
	return ev
}

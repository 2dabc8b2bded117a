package pomomo

import "time"

type SessionKind uint8

const (
	_ SessionKind = iota
	WorkSession
	BreakSession
)

func (k SessionKind) String() string {
	switch k {
	case WorkSession:
		return "Work"
	case BreakSession:
		return "Break"
	default:
		return "Unknown"
	}
}

// Next returns the kind that follows k.
func (k SessionKind) Next() SessionKind {
	if k == WorkSession {
		return BreakSession
	}
	return WorkSession
}

const (
	DefaultWorkSeconds  = 25 * 60
	DefaultBreakSeconds = 5 * 60
)

// Durations holds the nominal length of each session kind in whole seconds.
type Durations struct {
	Work  int
	Break int
}

func DefaultDurations() Durations {
	return Durations{
		Work:  DefaultWorkSeconds,
		Break: DefaultBreakSeconds,
	}
}

func (d Durations) Nominal(k SessionKind) int {
	if k == BreakSession {
		return d.Break
	}
	return d.Work
}

func (d Durations) NominalDuration(k SessionKind) time.Duration {
	return time.Duration(d.Nominal(k)) * time.Second
}

type (
	ChannelID string
	TodoID    int64
	NoteID    int64
)

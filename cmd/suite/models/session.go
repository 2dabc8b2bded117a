// Package models holds the timer state and its pure transitions
package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/benjamonnguyen/pomomo-suite"
)

const (
	timerBarLength     = 20
	timerBarFilledChar = "⣶"
	timerBarEmptyChar  = "⡀"
)

type Event uint8

const (
	_ Event = iota
	EventStart
	EventPause
	EventReset
	EventSkip
	EventTick
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventPause:
		return "pause"
	case EventReset:
		return "reset"
	case EventSkip:
		return "skip"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

type Session struct {
	Remaining             int // seconds
	Kind                  pomomo.SessionKind
	Running               bool
	CompletedWorkSessions int
}

func NewSession(d pomomo.Durations) Session {
	return Session{
		Remaining: d.Nominal(pomomo.WorkSession),
		Kind:      pomomo.WorkSession,
	}
}

// Outcome reports what a transition did besides changing state.
type Outcome struct {
	// Ended is set when a session ran out naturally.
	Ended pomomo.SessionKind
}

func (o Outcome) Completed() bool {
	return o.Ended != 0
}

// Apply returns the session after e. s is never mutated.
func Apply(s Session, e Event, d pomomo.Durations) (Session, Outcome) {
	switch e {
	case EventStart:
		if !s.Running {
			s.Running = true
		}
	case EventPause:
		if s.Running {
			s.Running = false
		}
	case EventReset:
		s.Running = false
		s.Remaining = d.Nominal(s.Kind)
	case EventSkip:
		s.Running = false
		s.Kind = s.Kind.Next()
		s.Remaining = d.Nominal(s.Kind)
	case EventTick:
		if !s.Running || s.Remaining <= 0 {
			return s, Outcome{}
		}
		s.Remaining--
		if s.Remaining > 0 {
			return s, Outcome{}
		}
		ended := s.Kind
		s = complete(s, d)
		return s, Outcome{Ended: ended}
	}
	return s, Outcome{}
}

func complete(s Session, d pomomo.Durations) Session {
	if s.Kind == pomomo.WorkSession {
		s.CompletedWorkSessions++
	}
	s.Running = false
	s.Kind = s.Kind.Next()
	s.Remaining = d.Nominal(s.Kind)
	return s
}

// State names the session the way users see it, e.g. "Running-Work".
func (s Session) State() string {
	if s.Running {
		return "Running-" + s.Kind.String()
	}
	return "Idle-" + s.Kind.String()
}

// Clock renders remaining time as M:SS.
func (s Session) Clock() string {
	remaining := max(s.Remaining, 0)
	return fmt.Sprintf("%d:%02d", remaining/60, remaining%60)
}

func (s Session) TimerBar(d pomomo.Durations) string {
	nominal := d.Nominal(s.Kind)
	if s.Remaining <= 0 || nominal <= 0 {
		return strings.Repeat(timerBarEmptyChar, timerBarLength)
	}
	percentage := float64(s.Remaining) / float64(nominal)
	filled := min(int(math.Round(percentage*timerBarLength)), timerBarLength)
	return strings.Repeat(timerBarFilledChar, filled) + strings.Repeat(timerBarEmptyChar, timerBarLength-filled)
}

// CompletionMessage describes a session that just ended.
func CompletionMessage(ended pomomo.SessionKind, d pomomo.Durations) (title, body string) {
	next := ended.Next()
	nextUp := Session{Kind: next, Remaining: d.Nominal(next)}
	if ended == pomomo.WorkSession {
		return "Work session complete", fmt.Sprintf("Take a break. Next up: %s %s.", next, nextUp.Clock())
	}
	return "Break is over", fmt.Sprintf("Next up: %s %s.", next, nextUp.Clock())
}

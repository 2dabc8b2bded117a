package main

import (
	"context"
	"sync"
	"time"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/cmd/suite/models"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	tickRate      = time.Second
	notifyTimeout = 10 * time.Second
)

// Ticker delivers tick times until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type TickerFunc func(time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time {
	return t.t.C
}

func (t *timeTicker) Stop() {
	t.t.Stop()
}

// tickHandle is one scheduled tick source. Ticks from a handle that is no
// longer current are dropped.
type tickHandle struct {
	id     string
	cancel context.CancelFunc
}

// SessionTimer is a work/break countdown driven by a one second tick source.
type SessionTimer struct {
	mu        sync.Mutex
	session   models.Session
	durations pomomo.Durations
	handle    *tickHandle
	closed    bool

	notifier  pomomo.Notifier
	newTicker TickerFunc
	permOnce  sync.Once
	wg        sync.WaitGroup
	l         *log.Logger
}

type TimerOption func(*SessionTimer)

func WithTicker(fn TickerFunc) TimerOption {
	return func(t *SessionTimer) {
		t.newTicker = fn
	}
}

func WithLogger(l *log.Logger) TimerOption {
	return func(t *SessionTimer) {
		t.l = l
	}
}

// NewSessionTimer creates an Idle-Work timer. notifier may be nil.
func NewSessionTimer(d pomomo.Durations, notifier pomomo.Notifier, opts ...TimerOption) *SessionTimer {
	t := &SessionTimer{
		session:   models.NewSession(d),
		durations: d,
		notifier:  notifier,
		newTicker: NewTimeTicker,
		l:         log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *SessionTimer) Durations() pomomo.Durations {
	return t.durations
}

func (t *SessionTimer) Snapshot() models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

func (t *SessionTimer) Start() models.Session {
	t.mu.Lock()
	wasRunning := t.session.Running
	s := t.applyLocked(models.EventStart)
	if !wasRunning && s.Running {
		t.scheduleLocked()
	}
	t.mu.Unlock()

	t.requestPermission()
	return s
}

func (t *SessionTimer) Pause() models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applyLocked(models.EventPause)
}

func (t *SessionTimer) Reset() models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applyLocked(models.EventReset)
}

func (t *SessionTimer) Skip() models.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applyLocked(models.EventSkip)
}

// Tick applies one tick. It is a no-op unless the timer is running.
func (t *SessionTimer) Tick() models.Session {
	s, _ := t.tick(nil)
	return s
}

// Close cancels the tick source and waits for it to exit. The timer is inert afterwards.
func (t *SessionTimer) Close() {
	t.mu.Lock()
	t.closed = true
	t.cancelLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *SessionTimer) applyLocked(e models.Event) models.Session {
	if t.closed {
		return t.session
	}
	t.session, _ = models.Apply(t.session, e, t.durations)
	if !t.session.Running {
		t.cancelLocked()
	}
	return t.session
}

func (t *SessionTimer) scheduleLocked() {
	t.cancelLocked()

	ctx, cancel := context.WithCancel(context.Background())
	h := &tickHandle{
		id:     uuid.NewString(),
		cancel: cancel,
	}
	t.handle = h
	ticker := t.newTicker(tickRate)
	t.l.Debug("scheduled tick source", "handle", h.id, "remaining", t.session.Remaining, "kind", t.session.Kind)

	t.wg.Go(func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				if _, current := t.tick(h); !current {
					return
				}
			}
		}
	})
}

func (t *SessionTimer) cancelLocked() {
	if t.handle == nil {
		return
	}
	t.l.Debug("cancelled tick source", "handle", t.handle.id)
	t.handle.cancel()
	t.handle = nil
}

// tick applies a tick from h, or from the caller when h is nil. current
// reports whether h is still the active handle afterwards.
func (t *SessionTimer) tick(h *tickHandle) (s models.Session, current bool) {
	t.mu.Lock()
	if t.closed || (h != nil && t.handle != h) {
		s = t.session
		t.mu.Unlock()
		return s, false
	}

	var outcome models.Outcome
	t.session, outcome = models.Apply(t.session, models.EventTick, t.durations)
	if !t.session.Running {
		t.cancelLocked()
	}
	s = t.session
	current = h != nil && t.handle == h
	t.mu.Unlock()

	if outcome.Completed() {
		t.l.Info("session complete", "ended", outcome.Ended, "completedWorkSessions", s.CompletedWorkSessions)
		t.notify(outcome.Ended)
	}
	return s, current
}

func (t *SessionTimer) requestPermission() {
	if t.notifier == nil {
		return
	}
	t.permOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if p := t.notifier.Permission(ctx); p != pomomo.PermissionDefault {
			return
		}
		p := t.notifier.RequestPermission(ctx)
		t.l.Debug("requested notification permission", "result", p)
	})
}

func (t *SessionTimer) notify(ended pomomo.SessionKind) {
	if t.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	title, body := models.CompletionMessage(ended, t.durations)
	if err := t.notifier.Notify(ctx, title, body); err != nil {
		t.l.Debug("dropped notification", "err", err)
	}
}

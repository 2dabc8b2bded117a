package main

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/benjamonnguyen/pomomo-suite/cmd/suite/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (m *manualTicker) C() <-chan time.Time {
	return m.ch
}

func (m *manualTicker) Stop() {
	m.stopped.Store(true)
}

type manualTickers struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (m *manualTickers) New(time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time, 16)}
	m.tickers = append(m.tickers, t)
	return t
}

func (m *manualTickers) Get(i int) *manualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickers[i]
}

func (m *manualTickers) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

// mockNotifier is a mock implementation of pomomo.Notifier
type mockNotifier struct {
	mu          sync.Mutex
	permission  pomomo.Permission
	requests    int
	notified    []string
	notifyError error
}

func (m *mockNotifier) Permission(context.Context) pomomo.Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permission
}

func (m *mockNotifier) RequestPermission(context.Context) pomomo.Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.permission = pomomo.PermissionGranted
	return m.permission
}

func (m *mockNotifier) Notify(_ context.Context, title, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = append(m.notified, title)
	return m.notifyError
}

func (m *mockNotifier) Notified() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.notified...)
}

func (m *mockNotifier) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

func newTestTimer(t *testing.T, notifier pomomo.Notifier) (*SessionTimer, *manualTickers) {
	t.Helper()
	tickers := &manualTickers{}
	timer := NewSessionTimer(pomomo.DefaultDurations(), notifier, WithTicker(tickers.New))
	t.Cleanup(timer.Close)
	return timer, tickers
}

func currentHandle(timer *SessionTimer) *tickHandle {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.handle
}

func TestSessionTimer_StartThenPause(t *testing.T) {
	t.Parallel()
	timer, tickers := newTestTimer(t, nil)

	timer.Start()
	s := timer.Pause()

	assert.Equal(t, models.NewSession(pomomo.DefaultDurations()), s)
	require.Equal(t, 1, tickers.Len())
	assert.Eventually(t, tickers.Get(0).stopped.Load, time.Second, time.Millisecond)
	assert.Nil(t, currentHandle(timer))
}

func TestSessionTimer_TicksFromSource(t *testing.T) {
	t.Parallel()
	timer, tickers := newTestTimer(t, nil)

	timer.Start()
	for range 3 {
		tickers.Get(0).ch <- time.Now()
	}

	assert.Eventually(t, func() bool {
		return timer.Snapshot().Remaining == 1497
	}, time.Second, time.Millisecond)
	assert.True(t, timer.Snapshot().Running)
}

func TestSessionTimer_FullWorkSession(t *testing.T) {
	t.Parallel()
	notifier := &mockNotifier{permission: pomomo.PermissionGranted}
	timer, _ := newTestTimer(t, notifier)

	timer.Start()
	var s models.Session
	for range 1500 {
		s = timer.Tick()
	}

	assert.Equal(t, "Idle-Break", s.State())
	assert.Equal(t, 300, s.Remaining)
	assert.Equal(t, 1, s.CompletedWorkSessions)
	assert.False(t, s.Running)
	assert.Equal(t, []string{"Work session complete"}, notifier.Notified())
	assert.Nil(t, currentHandle(timer))

	// idempotent once stopped
	assert.Equal(t, s, timer.Tick())
	assert.Len(t, notifier.Notified(), 1)
}

func TestSessionTimer_StaleTicksAreDropped(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		cancel func(*SessionTimer)
	}{
		{"pause", func(timer *SessionTimer) { timer.Pause() }},
		{"reset", func(timer *SessionTimer) { timer.Reset() }},
		{"skip", func(timer *SessionTimer) { timer.Skip() }},
		{"restart", func(timer *SessionTimer) { timer.Pause(); timer.Start() }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			timer, _ := newTestTimer(t, nil)

			timer.Start()
			stale := currentHandle(timer)
			require.NotNil(t, stale)

			tc.cancel(timer)
			before := timer.Snapshot()

			after, current := timer.tick(stale)
			assert.False(t, current)
			assert.Equal(t, before, after)
			assert.Equal(t, before, timer.Snapshot())
		})
	}
}

func TestSessionTimer_RestartCancelsPreviousSource(t *testing.T) {
	t.Parallel()
	timer, tickers := newTestTimer(t, nil)

	timer.Start()
	timer.Pause()
	timer.Start()
	require.Equal(t, 2, tickers.Len())
	require.Eventually(t, tickers.Get(0).stopped.Load, time.Second, time.Millisecond)

	tickers.Get(0).ch <- time.Now()
	tickers.Get(1).ch <- time.Now()

	assert.Eventually(t, func() bool {
		return timer.Snapshot().Remaining == 1499
	}, time.Second, time.Millisecond)
	assert.False(t, tickers.Get(1).stopped.Load())
}

func TestSessionTimer_SkipDoesNotCountOrNotify(t *testing.T) {
	t.Parallel()
	notifier := &mockNotifier{permission: pomomo.PermissionGranted}
	timer, _ := newTestTimer(t, notifier)

	timer.Start()
	timer.Tick()
	s := timer.Skip()

	assert.Equal(t, pomomo.BreakSession, s.Kind)
	assert.Equal(t, 300, s.Remaining)
	assert.Equal(t, 0, s.CompletedWorkSessions)
	assert.False(t, s.Running)
	assert.Empty(t, notifier.Notified())
}

func TestSessionTimer_PermissionRequestedOnce(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name             string
		permission       pomomo.Permission
		expectedRequests int
	}{
		{"default", pomomo.PermissionDefault, 1},
		{"granted", pomomo.PermissionGranted, 0},
		{"denied", pomomo.PermissionDenied, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			notifier := &mockNotifier{permission: tc.permission}
			timer, _ := newTestTimer(t, notifier)

			timer.Start()
			timer.Pause()
			timer.Start()
			timer.Reset()
			timer.Start()

			assert.Equal(t, tc.expectedRequests, notifier.Requests())
		})
	}
}

func TestSessionTimer_NotificationFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	notifier := &mockNotifier{permission: pomomo.PermissionGranted, notifyError: errors.New("missing access")}
	timer, _ := newTestTimer(t, notifier)

	timer.Skip()
	timer.Start()
	var s models.Session
	for range 300 {
		s = timer.Tick()
	}

	assert.Equal(t, "Idle-Work", s.State())
	assert.Equal(t, 1500, s.Remaining)
	assert.Equal(t, 0, s.CompletedWorkSessions)
	assert.Equal(t, []string{"Break is over"}, notifier.Notified())
}

func TestSessionTimer_NilNotifier(t *testing.T) {
	t.Parallel()
	timer, _ := newTestTimer(t, nil)

	timer.Start()
	for range 1500 {
		timer.Tick()
	}

	assert.Equal(t, 1, timer.Snapshot().CompletedWorkSessions)
}

func TestSessionTimer_CloseIsFinal(t *testing.T) {
	t.Parallel()
	timer, tickers := newTestTimer(t, nil)

	timer.Start()
	timer.Close()
	before := timer.Snapshot()

	assert.True(t, tickers.Get(0).stopped.Load())
	assert.Equal(t, before, timer.Start())
	assert.Equal(t, before, timer.Tick())
	assert.Equal(t, before, timer.Skip())
	assert.Equal(t, 1, tickers.Len())
}

package main

import (
	"sync"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

type NotifierFactory func(pomomo.ChannelID) pomomo.Notifier

type TimerManager interface {
	Get(pomomo.ChannelID) *SessionTimer
	Lookup(pomomo.ChannelID) (*SessionTimer, bool)
	Has(pomomo.ChannelID) bool
	Remove(pomomo.ChannelID)
	Shutdown()
}

type timerManager struct {
	cache       *channelCache[*SessionTimer]
	durations   pomomo.Durations
	newNotifier NotifierFactory
	opts        []TimerOption
}

func NewTimerManager(d pomomo.Durations, newNotifier NotifierFactory, opts ...TimerOption) TimerManager {
	return &timerManager{
		cache:       newChannelCache[*SessionTimer](),
		durations:   d,
		newNotifier: newNotifier,
		opts:        opts,
	}
}

// Get returns the channel's timer, creating an Idle-Work one on first use.
func (m *timerManager) Get(channelID pomomo.ChannelID) *SessionTimer {
	return m.cache.GetOrCreate(channelID, func() *SessionTimer {
		var notifier pomomo.Notifier
		if m.newNotifier != nil {
			notifier = m.newNotifier(channelID)
		}
		log.Debug("created timer", "channelID", channelID)
		return NewSessionTimer(m.durations, notifier, m.opts...)
	})
}

// Lookup returns the channel's timer without creating one.
func (m *timerManager) Lookup(channelID pomomo.ChannelID) (*SessionTimer, bool) {
	return m.cache.Lookup(channelID)
}

func (m *timerManager) Has(channelID pomomo.ChannelID) bool {
	return m.cache.Has(channelID)
}

func (m *timerManager) Remove(channelID pomomo.ChannelID) {
	if t := m.cache.Remove(channelID); t != nil {
		t.Close()
	}
}

func (m *timerManager) Shutdown() {
	timers := m.cache.Drain()
	var wg sync.WaitGroup
	for _, t := range timers {
		wg.Go(t.Close)
	}
	wg.Wait()
	log.Info("closed timers", "count", len(timers))
}

// Cache

type channelCache[T any] struct {
	mu    sync.RWMutex
	items map[pomomo.ChannelID]T
}

func newChannelCache[T any]() *channelCache[T] {
	return &channelCache[T]{
		items: make(map[pomomo.ChannelID]T),
	}
}

func (c *channelCache[T]) GetOrCreate(key pomomo.ChannelID, create func() T) T {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()
	if exists {
		return item
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// checks again in case another caller created it between locks
	if item, exists := c.items[key]; exists {
		return item
	}
	item = create()
	c.items[key] = item
	return item
}

func (c *channelCache[T]) Has(key pomomo.ChannelID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.items[key]
	return exists
}

func (c *channelCache[T]) Lookup(key pomomo.ChannelID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	return item, exists
}

func (c *channelCache[T]) Remove(key pomomo.ChannelID) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		log.Debug("channel not found", "channelID", key)
		return item
	}
	delete(c.items, key)
	return item
}

// Drain empties the cache and returns what it held.
func (c *channelCache[T]) Drain() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, 0, len(c.items))
	for key, item := range c.items {
		items = append(items, item)
		delete(c.items, key)
	}
	return items
}

package main

import (
	"context"
	"sync"
	"time"

	"github.com/benjamonnguyen/pomomo-suite"
	"github.com/charmbracelet/log"
)

var displayRefreshRate = 20 * time.Second

// TimerDisplays remembers the latest timer message per channel and keeps it
// in step with the timer while it runs.
type TimerDisplays struct {
	mu       sync.Mutex
	messages map[pomomo.ChannelID]string
	timers   TimerManager
	dm       DiscordMessenger
	wg       sync.WaitGroup
}

func NewTimerDisplays(timers TimerManager, dm DiscordMessenger) *TimerDisplays {
	return &TimerDisplays{
		messages: make(map[pomomo.ChannelID]string),
		timers:   timers,
		dm:       dm,
	}
}

func (d *TimerDisplays) Track(channelID pomomo.ChannelID, messageID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages[channelID] = messageID
}

func (d *TimerDisplays) MessageID(channelID pomomo.ChannelID) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.messages[channelID]
}

func (d *TimerDisplays) Forget(channelID pomomo.ChannelID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.messages, channelID)
}

// Refresh edits every tracked message whose timer is running, plus any whose
// timer stopped since the last refresh.
func (d *TimerDisplays) Refresh(last map[pomomo.ChannelID]bool) map[pomomo.ChannelID]bool {
	d.mu.Lock()
	tracked := make(map[pomomo.ChannelID]string, len(d.messages))
	for k, v := range d.messages {
		tracked[k] = v
	}
	d.mu.Unlock()

	running := make(map[pomomo.ChannelID]bool, len(tracked))
	for channelID, messageID := range tracked {
		timer, ok := d.timers.Lookup(channelID)
		if !ok {
			continue
		}
		s := timer.Snapshot()
		running[channelID] = s.Running
		if !s.Running && !last[channelID] {
			continue
		}
		if _, err := d.dm.EditChannelMessage(channelID, messageID, TimerMessage(channelID, s, timer.Durations())); err != nil {
			log.Error("failed to edit timer message", "channelID", channelID, "messageID", messageID, "err", err)
		}
	}
	return running
}

// Start refreshes on every displayRefreshRate until ctx is done.
func (d *TimerDisplays) Start(ctx context.Context) {
	d.wg.Go(func() {
		ticker := time.NewTicker(displayRefreshRate)
		defer ticker.Stop()
		var last map[pomomo.ChannelID]bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				last = d.Refresh(last)
			}
		}
	})
}

func (d *TimerDisplays) Wait() {
	d.wg.Wait()
}

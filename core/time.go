package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) Time {
	var interval time.Duration
	if cfg.FramesPerSecond == 0 {
		interval = time.Nanosecond
	} else {
		interval = time.Second / (time.Duration)(cfg.FramesPerSecond)
	}

	statsInterval := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if statsInterval <= 0 {
		statsInterval = time.Second
	}

	return Time{
		fps:            cfg.FramesPerSecond,
		fpsTicker:      time.NewTicker(interval),
		eventPollDelay: statsInterval,
		eventTicker:    time.NewTicker(statsInterval),
	}
}

// Time contains all the time services and tickers
type Time struct {
	fps       int
	fpsTicker *time.Ticker

	eventPollDelay time.Duration
	eventTicker    *time.Ticker
}

// Fps gets the set frames per second
func (t *Time) Fps() int {
	return t.fps
}

// FpsTicker gets the initialized fps ticker
func (t *Time) FpsTicker() *time.Ticker {
	return t.fpsTicker
}

// EventTicker gets the ticker for periodic frame statistics
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// EventPollDelay returns the interval of EventTicker
func (t *Time) EventPollDelay() time.Duration {
	return t.eventPollDelay
}

// Stop stops all the tickers
func (t *Time) Stop() {
	t.fpsTicker.Stop()
	t.eventTicker.Stop()
}

package playback

import (
	"sync"
	"time"
)

// Scheduler runs fn every period until the returned cancel func is called.
// Cancel must be safe to call more than once.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// TickerScheduler drives ticks from a time.Ticker on its own goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Every(period time.Duration, fn func()) func() {
	t := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

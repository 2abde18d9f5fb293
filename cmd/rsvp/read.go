package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kylemclaren/speed-reader/internal/playback"
	"github.com/urfave/cli/v2"
)

const (
	clearLine = "\r\033[K"
	focalOn   = "\033[1;31m"
	dimOn     = "\033[2m"
	reset     = "\033[0m"
)

// screen redraws one line per snapshot. Snapshots arrive from the timer
// goroutine and the caller's goroutine, so writes are serialized.
type screen struct {
	mu      sync.Mutex
	w       io.Writer
	context bool
}

func (s *screen) draw(snap playback.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, clearLine+renderWord(snap))
	if s.context && len(snap.RecentContext) > 0 {
		fmt.Fprint(s.w, dimOn+"  | "+snap.RecentContext[len(snap.RecentContext)-1]+reset)
	}
}

// renderWord highlights the focal letter and appends the position.
func renderWord(snap playback.Snapshot) string {
	f := snap.Focal
	return fmt.Sprintf("%s%s%s%s%s  %s[%d/%d %d wpm]%s",
		f.Before, focalOn, f.Focal, reset, f.After,
		dimOn, snap.Index+1, snap.WordCount, snap.WPM, reset)
}

func readAction(c *cli.Context) error {
	log := newLogger(c)
	doc, err := loadDocument(c, log)
	if err != nil {
		return err
	}
	if doc.WordCount == 0 {
		return fmt.Errorf("no readable text found")
	}

	scr := &screen{w: c.App.Writer, context: c.Bool("context")}
	done := make(chan struct{})
	var once sync.Once

	engine := playback.New(
		playback.WithSpeed(c.Int("wpm")),
		playback.WithLogger(log),
		playback.WithObserver(func(snap playback.Snapshot) {
			scr.draw(snap)
			if snap.EndReached {
				once.Do(func() { close(done) })
			}
		}),
	)
	defer engine.Close()

	engine.Attach(doc)
	engine.GoToIndex(c.Int("from"))
	engine.Play()
	if !engine.Playing() {
		// A single word, or starting on the last one.
		scr.draw(engine.Snapshot())
		fmt.Fprintln(c.App.Writer)
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-done:
	case <-ctx.Done():
		engine.Pause()
		log.Debug("interrupted", "index", engine.Index())
	}
	fmt.Fprintln(c.App.Writer)
	return nil
}

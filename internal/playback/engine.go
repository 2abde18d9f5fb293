// Package playback drives rapid serial visual presentation of a document:
// one word at a time at a fixed rate, with manual stepping, seeking and
// speed changes.
//
// An Engine owns at most one periodic task. Every transition that stops
// playback (pause, attaching a new document, Close) cancels that task, and
// ticks from a cancelled task are discarded, so no word advances after
// playback stops. All methods are safe for concurrent use and never block
// on the timer.
package playback

import (
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/focal"
	"github.com/kylemclaren/speed-reader/internal/segment"
)

const (
	MinWPM        = 100
	MaxWPM        = 1000
	DefaultWPM    = 300
	SpeedStep     = 50
	DefaultSkip   = 10
	ContextWindow = segment.DefaultContextWindow
)

// State is the coarse playback state.
type State string

const (
	Idle    State = "idle"    // no document attached
	Paused  State = "paused"  // document attached, timer stopped
	Playing State = "playing" // document attached, timer running
)

// Interval is the time each word stays on screen at wpm, rounded to the
// millisecond. wpm is clamped to [MinWPM, MaxWPM].
func Interval(wpm int) time.Duration {
	wpm = clampSpeed(wpm)
	return time.Duration(math.Round(60000/float64(wpm))) * time.Millisecond
}

func clampSpeed(wpm int) int {
	return min(max(wpm, MinWPM), MaxWPM)
}

// Snapshot is a consistent read of everything a presentation layer renders.
type Snapshot struct {
	State          State       `json:"state"`
	Title          string      `json:"title"`
	Index          int         `json:"index"`
	WordCount      int         `json:"wordCount"`
	WPM            int         `json:"wpm"`
	IntervalMs     int64       `json:"intervalMs"`
	Playing        bool        `json:"playing"`
	EndReached     bool        `json:"endReached"`
	CurrentWord    string      `json:"currentWord"`
	Focal          focal.Split `json:"focal"`
	Progress       float64     `json:"progress"`
	WordsRemaining int         `json:"wordsRemaining"`
	TimeRemaining  float64     `json:"timeRemainingSeconds"`
	RecentContext  []string    `json:"recentContext"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler replaces the ticker-based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithObserver registers fn to receive a snapshot after every change,
// including timer ticks. fn runs outside the engine lock and may be called
// from the timer goroutine concurrently with a caller's goroutine.
func WithObserver(fn func(Snapshot)) Option {
	return func(e *Engine) { e.observer = fn }
}

// WithSpeed sets the initial speed, clamped to [MinWPM, MaxWPM].
func WithSpeed(wpm int) Option {
	return func(e *Engine) { e.wpm = clampSpeed(wpm) }
}

// Engine is the playback state machine.
type Engine struct {
	mu       sync.Mutex
	sched    Scheduler
	log      *slog.Logger
	observer func(Snapshot)

	doc        *document.Document
	index      int
	wpm        int
	playing    bool
	endReached bool
	closed     bool

	cancel func()
	gen    uint64 // bumped on every timer start and stop
}

func New(opts ...Option) *Engine {
	e := &Engine{
		sched: TickerScheduler{},
		log:   slog.New(slog.DiscardHandler),
		wpm:   DefaultWPM,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// update runs fn under the lock and notifies the observer if fn reports a
// change.
func (e *Engine) update(fn func() bool) {
	e.mu.Lock()
	changed := fn()
	var snap Snapshot
	notify := changed && e.observer != nil
	if notify {
		snap = e.snapshotLocked()
	}
	e.mu.Unlock()
	if notify {
		e.observer(snap)
	}
}

func (e *Engine) startTimerLocked() {
	e.stopTimerLocked()
	gen := e.gen
	e.cancel = e.sched.Every(Interval(e.wpm), func() { e.tick(gen) })
}

func (e *Engine) stopTimerLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
}

func (e *Engine) tick(gen uint64) {
	e.update(func() bool {
		if gen != e.gen || !e.playing {
			return false
		}
		if e.index < e.doc.Len()-1 {
			e.index++
			return true
		}
		// The last word has had a full interval on screen.
		e.stopTimerLocked()
		e.playing = false
		e.endReached = true
		e.log.Debug("end of document reached", "words", e.doc.Len())
		return true
	})
}

// Attach replaces the document, stops playback and rewinds to the first
// word. A nil document detaches, leaving the engine idle.
func (e *Engine) Attach(doc *document.Document) {
	e.update(func() bool {
		if e.closed {
			return false
		}
		e.stopTimerLocked()
		e.doc = doc
		e.index = 0
		e.playing = false
		e.endReached = false
		e.log.Debug("document attached", "words", doc.Len())
		return true
	})
}

// Play starts the timer unless playback is already running, no document
// is attached or the last word is showing.
func (e *Engine) Play() {
	e.update(e.playLocked)
}

func (e *Engine) playLocked() bool {
	if e.closed || e.doc == nil || e.playing || e.index >= e.doc.Len()-1 {
		return false
	}
	e.playing = true
	e.endReached = false
	e.startTimerLocked()
	e.log.Debug("playing", "index", e.index, "wpm", e.wpm)
	return true
}

// Pause stops the timer. Pausing a paused or idle engine does nothing.
func (e *Engine) Pause() {
	e.update(e.pauseLocked)
}

func (e *Engine) pauseLocked() bool {
	if !e.playing {
		return false
	}
	e.stopTimerLocked()
	e.playing = false
	e.log.Debug("paused", "index", e.index)
	return true
}

func (e *Engine) TogglePlayPause() {
	e.update(func() bool {
		if e.playing {
			return e.pauseLocked()
		}
		return e.playLocked()
	})
}

// seek moves to index i clamped to the document. The timer is left alone.
func (e *Engine) seek(i func(cur int) int) {
	e.update(func() bool {
		if e.closed || e.doc == nil {
			return false
		}
		next := min(max(i(e.index), 0), max(e.doc.Len()-1, 0))
		if next == e.index {
			return false
		}
		e.index = next
		e.endReached = false
		return true
	})
}

func (e *Engine) Next()     { e.seek(func(cur int) int { return cur + 1 }) }
func (e *Engine) Previous() { e.seek(func(cur int) int { return cur - 1 }) }

// SkipForward moves n words ahead; n <= 0 means DefaultSkip.
func (e *Engine) SkipForward(n int) {
	if n <= 0 {
		n = DefaultSkip
	}
	e.seek(func(cur int) int { return cur + n })
}

// SkipBackward moves n words back; n <= 0 means DefaultSkip.
func (e *Engine) SkipBackward(n int) {
	if n <= 0 {
		n = DefaultSkip
	}
	e.seek(func(cur int) int { return cur - n })
}

// GoToIndex jumps to word i, clamped to the document.
func (e *Engine) GoToIndex(i int) {
	e.seek(func(int) int { return i })
}

// SetSpeed clamps wpm to [MinWPM, MaxWPM]. While playing, a change of speed
// restarts the timer so the next word appears after the new interval; an
// unchanged speed leaves the timer alone.
func (e *Engine) SetSpeed(wpm int) {
	e.update(func() bool {
		if e.closed {
			return false
		}
		wpm = clampSpeed(wpm)
		if wpm == e.wpm {
			return false
		}
		e.wpm = wpm
		if e.playing {
			e.startTimerLocked()
		}
		e.log.Debug("speed changed", "wpm", wpm)
		return true
	})
}

// SpeedUp raises the speed by SpeedStep.
func (e *Engine) SpeedUp() {
	e.SetSpeed(e.WPM() + SpeedStep)
}

// SlowDown lowers the speed by SpeedStep.
func (e *Engine) SlowDown() {
	e.SetSpeed(e.WPM() - SpeedStep)
}

// Reset pauses and rewinds to the first word, keeping the document.
func (e *Engine) Reset() {
	e.update(func() bool {
		if e.closed {
			return false
		}
		changed := e.pauseLocked()
		if e.index != 0 || e.endReached {
			e.index = 0
			e.endReached = false
			changed = true
		}
		return changed
	})
}

// Close stops the timer for good. Later transitions are ignored; getters
// keep reporting the final position.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.stopTimerLocked()
	e.playing = false
	e.closed = true
}

func (e *Engine) Document() *document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

func (e *Engine) WPM() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wpm
}

func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// EndReached reports whether autoplay stopped on the last word.
func (e *Engine) EndReached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.endReached
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	switch {
	case e.doc == nil:
		return Idle
	case e.playing:
		return Playing
	}
	return Paused
}

// CurrentWord is the word on screen, or "" without a document.
func (e *Engine) CurrentWord() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentWordLocked()
}

func (e *Engine) currentWordLocked() string {
	if e.index < e.doc.Len() {
		return e.doc.Words[e.index]
	}
	return ""
}

// Progress is the percentage of words before the current one. It never
// reaches 100.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progressLocked()
}

func (e *Engine) progressLocked() float64 {
	n := e.doc.Len()
	if n == 0 {
		return 0
	}
	return float64(e.index) / float64(n) * 100
}

// WordsRemaining counts the words after the current one.
func (e *Engine) WordsRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wordsRemainingLocked()
}

func (e *Engine) wordsRemainingLocked() int {
	return max(e.doc.Len()-e.index-1, 0)
}

// TimeRemaining estimates the seconds left at the current speed.
func (e *Engine) TimeRemaining() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeRemainingLocked()
}

func (e *Engine) timeRemainingLocked() float64 {
	return float64(e.wordsRemainingLocked()) * (60 / float64(e.wpm))
}

// RecentContext returns the current sentence and up to ContextWindow
// sentences before it.
func (e *Engine) RecentContext() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recentContextLocked()
}

func (e *Engine) recentContextLocked() []string {
	if e.doc == nil {
		return nil
	}
	return slices.Clone(segment.RecentContext(e.index, e.doc.Words, e.doc.Sentences, ContextWindow))
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	word := e.currentWordLocked()
	snap := Snapshot{
		State:          e.stateLocked(),
		Index:          e.index,
		WordCount:      e.doc.Len(),
		WPM:            e.wpm,
		IntervalMs:     Interval(e.wpm).Milliseconds(),
		Playing:        e.playing,
		EndReached:     e.endReached,
		CurrentWord:    word,
		Focal:          focal.SplitWord(word),
		Progress:       e.progressLocked(),
		WordsRemaining: e.wordsRemainingLocked(),
		TimeRemaining:  e.timeRemainingLocked(),
		RecentContext:  e.recentContextLocked(),
	}
	if e.doc != nil {
		snap.Title = e.doc.Title
	}
	if snap.RecentContext == nil {
		snap.RecentContext = []string{}
	}
	return snap
}

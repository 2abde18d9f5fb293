package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/playback"
)

var ErrNoDocument = errors.New("session requires a document")

const defaultCleanupInterval = time.Minute

// Options configures a Manager.
type Options struct {
	TTL             time.Duration
	MaxSessions     int
	CleanupInterval time.Duration
	Log             *slog.Logger
	// EngineOptions are applied to every engine the manager creates.
	EngineOptions []playback.Option
}

// Manager creates sessions and evicts idle ones in the background.
type Manager struct {
	store *Store
	log   *slog.Logger
	opts  Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(opts Options) *Manager {
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		store: NewStore(opts.TTL, opts.MaxSessions),
		log:   opts.Log,
		opts:  opts,
	}
}

// Start launches the eviction loop. It stops when ctx is cancelled or Stop
// is called.
func (m *Manager) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.opts.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.store.Cleanup(); n > 0 {
					m.log.Info("evicted idle sessions", "count", n, "active", m.store.Len())
				}
			}
		}
	}()
}

// Stop ends the eviction loop and closes every session.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.store.CloseAll()
}

// Create starts a paused session on doc. wpm <= 0 uses the engine default.
func (m *Manager) Create(doc *document.Document, wpm int) (*Session, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	opts := append([]playback.Option{playback.WithLogger(m.log)}, m.opts.EngineOptions...)
	if wpm > 0 {
		opts = append(opts, playback.WithSpeed(wpm))
	}
	sess := &Session{
		ID:        newID(),
		CreatedAt: time.Now(),
		Engine:    playback.New(opts...),
	}
	sess.Engine.Attach(doc)

	if err := m.store.Put(sess); err != nil {
		sess.Engine.Close()
		return nil, err
	}
	m.log.Info("session created", "session_id", sess.ID, "words", doc.WordCount, "wpm", sess.Engine.WPM())
	return sess, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	return m.store.Get(id)
}

// Delete closes the session's engine and forgets it.
func (m *Manager) Delete(id string) error {
	if err := m.store.Delete(id); err != nil {
		return err
	}
	m.log.Info("session deleted", "session_id", id)
	return nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	return m.store.Len()
}

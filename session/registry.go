package session

import (
	"context"
	"sync"
	"time"

	"nutrirec-web/apiclient"

	"go.uber.org/zap"
)

// DefaultIdleTTL is how long an unused session stays in memory. Its token
// outlives it; the next request rebuilds the controller from the token.
const DefaultIdleTTL = 30 * time.Minute

// TokenSource returns the token store of a session
type TokenSource func(sessionID string) apiclient.TokenStore

// RegistryConfig configures a Registry
type RegistryConfig struct {
	Table   Table
	IdleTTL time.Duration
	Logger  *zap.Logger
}

// Entry is the live state of one browser session
type Entry struct {
	ID         string
	Controller *Controller
	Outbox     *Outbox

	mu       sync.Mutex
	lastSeen time.Time
}

func (e *Entry) touch(now time.Time) {
	e.mu.Lock()
	e.lastSeen = now
	e.mu.Unlock()
}

func (e *Entry) idleSince(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastSeen)
}

// Registry holds one controller per session id
type Registry struct {
	api     *apiclient.Client
	tokens  TokenSource
	table   Table
	idleTTL time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*Entry
}

// NewRegistry builds a registry. Each session gets api bound to its own tokens.
func NewRegistry(api *apiclient.Client, tokens TokenSource, cfg RegistryConfig) *Registry {
	r := &Registry{
		api:     api,
		tokens:  tokens,
		table:   cfg.Table,
		idleTTL: cfg.IdleTTL,
		logger:  cfg.Logger,
		now:     time.Now,
		entries: make(map[string]*Entry),
	}
	if r.table.Protected == nil && r.table.Admin == nil {
		r.table = DefaultTable()
	}
	if r.idleTTL <= 0 {
		r.idleTTL = DefaultIdleTTL
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Get returns the entry of sessionID, creating it on first use
func (r *Registry) Get(sessionID string) *Entry {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sessionID]; ok {
		e.touch(now)
		return e
	}

	e := r.newEntry(sessionID)
	e.touch(now)
	r.entries[sessionID] = e
	r.logger.Debug("Session created", zap.String("session_id", sessionID))
	return e
}

func (r *Registry) newEntry(sessionID string) *Entry {
	outbox := &Outbox{}
	var ctl *Controller
	bound := r.api.Bind(r.tokens(sessionID), func(ctx context.Context) {
		ctl.HandleUnauthorized(ctx)
	})
	ctl = New(bound,
		WithTable(r.table),
		WithNotifier(outbox),
		WithNavigator(outbox),
		WithLogger(r.logger.With(zap.String("session_id", sessionID))),
	)
	return &Entry{ID: sessionID, Controller: ctl, Outbox: outbox}
}

// Forget drops a session from memory
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts sessions idle for longer than the idle TTL
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.entries {
		if e.idleSince(now) > r.idleTTL {
			delete(r.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Debug("Evicted idle sessions", zap.Int("count", evicted), zap.Int("live", len(r.entries)))
	}
	return evicted
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

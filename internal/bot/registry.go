package bot

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/matchid"
)

// Registry is the explicit bot store. Entries are created and removed by
// the matchmaking collaborator; a periodic sweep by creation timestamp
// reclaims bots whose matches never cleaned up.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
	clock   quartz.Clock
	ttl     time.Duration
	logger  *log.Logger
}

type registryEntry struct {
	bot     *Bot
	created time.Time
}

// NewRegistry creates a registry whose sweep removes bots older than ttl.
func NewRegistry(clock quartz.Clock, ttl time.Duration, logger *log.Logger) *Registry {
	return &Registry{
		entries: make(map[string]registryEntry),
		clock:   clock,
		ttl:     ttl,
		logger:  logger.WithPrefix("bot-registry"),
	}
}

// Create builds a bot, stores it, and returns it. The generated ID doubles
// as the participant ID of the seat the bot will control.
func (r *Registry) Create(name string, c duel.Character, d duel.Difficulty, seed int64) *Bot {
	id := "bot-" + matchid.New()
	b := New(id, name, c, d, seed, r.logger)

	r.mu.Lock()
	r.entries[id] = registryEntry{bot: b, created: r.clock.Now()}
	r.mu.Unlock()

	r.logger.Info("bot created", "bot", id, "name", name, "character", c, "difficulty", d)
	return b
}

// Get returns the bot with the given ID.
func (r *Registry) Get(id string) (*Bot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.bot, true
}

// Remove deletes a bot from the store.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// Len returns the number of stored bots.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes bots created more than ttl ago and returns how many were
// reclaimed.
func (r *Registry) Sweep() int {
	cutoff := r.clock.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.created.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("swept stale bots", "removed", removed, "remaining", len(r.entries))
	}
	return removed
}

// RunSweeper sweeps on the given interval until ctx is cancelled.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) error {
	return r.clock.TickerFunc(ctx, interval, func() error {
		r.Sweep()
		return nil
	}, "bot-sweep").Wait()
}

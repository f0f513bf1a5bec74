package repository

import (
	"strings"
	"sync"
	"wordrush/internal/domain"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// PlayerRepository owns every Player record, keyed by normalized address.
// Players are created lazily on first interaction and live for the process
// lifetime. All mutation of player state happens through the services; the
// repository only guards the collection itself.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
	order   []string
	logger  zerolog.Logger
}

func NewPlayerRepository(logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]*domain.Player),
		logger:  logger,
	}
}

// GetOrCreate returns the player for address, creating the record on first
// sight. created tells the caller whether a leaderboard rebuild is due.
func (r *PlayerRepository) GetOrCreate(address string) (player *domain.Player, created bool) {
	key := Normalize(address)

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.players[key]; ok {
		return p, false
	}

	p := &domain.Player{Address: key}
	r.players[key] = p
	r.order = append(r.order, key)
	r.logger.Debug().Str("addr", key).Msg("player created")
	return p, true
}

// Get returns the player for address or domain.ErrPlayerNotFound.
func (r *PlayerRepository) Get(address string) (*domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[Normalize(address)]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return p, nil
}

// All returns every player in insertion order. Map iteration order is
// randomized in Go, and leaderboard ties break by first-seen order, so the
// order slice is authoritative.
func (r *PlayerRepository) All() []*domain.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Player, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.players[key])
	}
	return out
}

func (r *PlayerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Normalize maps an address to its canonical lowercase form.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

var Module = fx.Provide(NewPlayerRepository)

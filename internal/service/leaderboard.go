package service

import (
	"sort"
	"sync"
	"wordrush/internal/domain"
	"wordrush/internal/repository"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// LeaderboardService maintains the two ranked views, one per play mode.
// Views are derived data: every recompute is a full rebuild from the
// authoritative player stats, which keeps ordering logic in one place and is
// cheap at the player counts this engine sees.
type LeaderboardService struct {
	mu     sync.RWMutex
	repo   *repository.PlayerRepository
	logger zerolog.Logger
	views  map[domain.Mode][]domain.LeaderboardEntry
}

func NewLeaderboardService(repo *repository.PlayerRepository, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		repo:   repo,
		logger: logger,
		views: map[domain.Mode][]domain.LeaderboardEntry{
			domain.ModeNormal: {},
			domain.ModeStaked: {},
		},
	}
}

// Recompute rebuilds both views from the player set. Called after every
// score-affecting event: game end, first player creation, stake mode change.
func (s *LeaderboardService) Recompute() {
	players := s.repo.All()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, mode := range []domain.Mode{domain.ModeNormal, domain.ModeStaked} {
		s.views[mode] = buildView(players, mode)
	}

	s.logger.Debug().
		Int("normal_entries", len(s.views[domain.ModeNormal])).
		Int("staked_entries", len(s.views[domain.ModeStaked])).
		Msg("leaderboards recomputed")
}

// buildView filters players by their current mode flag and projects that
// mode's stats. The sort is stable, so equal point totals keep first-seen
// player order.
func buildView(players []*domain.Player, mode domain.Mode) []domain.LeaderboardEntry {
	eligible := lo.Filter(players, func(p *domain.Player, _ int) bool {
		return p.Mode() == mode
	})
	entries := lo.Map(eligible, func(p *domain.Player, _ int) domain.LeaderboardEntry {
		stats := p.StatsFor(mode)
		return domain.LeaderboardEntry{
			Address:        p.Address,
			GamesPlayed:    stats.GamesPlayed,
			TotalPoints:    stats.TotalPoints,
			LastGamePoints: stats.LastGamePoints,
		}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}

// Leaderboard returns a copy of the ranked view for a mode.
func (s *LeaderboardService) Leaderboard(mode domain.Mode) []domain.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := s.views[mode]
	out := make([]domain.LeaderboardEntry, len(view))
	copy(out, view)
	return out
}

// Rank returns the 1-based position of address in its current mode's view.
func (s *LeaderboardService) Rank(address string) (int, error) {
	player, err := s.repo.Get(address)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, entry := range s.views[player.Mode()] {
		if entry.Address == player.Address {
			return i + 1, nil
		}
	}
	return 0, domain.ErrPlayerNotFound
}

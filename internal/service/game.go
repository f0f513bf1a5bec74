package service

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"wordrush/internal/config"
	"wordrush/internal/constants"
	"wordrush/internal/dictionary"
	"wordrush/internal/domain"
	"wordrush/internal/repository"
	"wordrush/internal/scoring"

	"github.com/rs/zerolog"
)

// GameService runs the per-player session lifecycle:
//
//	NoSession -> Active -> Ended
//
// Event application is strictly sequential: start, end, stake changes and
// timer expiry all serialize on one mutex, and each event fully applies its
// state mutation and leaderboard rebuild before the next is considered.
type GameService struct {
	mu     sync.Mutex
	repo   *repository.PlayerRepository
	dict   *dictionary.Dictionary
	lb     *LeaderboardService
	rng    *rand.Rand
	cfg    *config.Config
	logger zerolog.Logger

	// now is swapped out in tests; timers hold the pending reset per player.
	now    func() time.Time
	timers map[string]*time.Timer
}

func NewGameService(
	repo *repository.PlayerRepository,
	dict *dictionary.Dictionary,
	lb *LeaderboardService,
	rng *rand.Rand,
	cfg *config.Config,
	logger zerolog.Logger,
) *GameService {
	return &GameService{
		repo:   repo,
		dict:   dict,
		lb:     lb,
		rng:    rng,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// StartGame creates a new puzzle for address. The game id is assigned by the
// caller, which keeps ids monotonic across all players. Returns the public
// session view; hidden words never leave the engine before scoring.
func (s *GameService) StartGame(address string, gameID int64, duration int) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, created := s.repo.GetOrCreate(address)
	if created {
		s.lb.Recompute()
	}

	if player.Current != nil {
		return domain.SessionView{}, domain.ErrActiveSessionExists
	}

	wordCount, ok := constants.WordCountByDuration[duration]
	if !ok {
		return domain.SessionView{}, domain.ErrInvalidDuration
	}

	hidden := s.drawWords(wordCount)
	session := &domain.GameSession{
		GameID:           gameID,
		ScrambledLetters: s.scramble(hidden),
		HiddenWords:      hidden,
		StartedAt:        s.now().Unix(),
		Duration:         duration,
		IsStaked:         player.IsStaked,
	}
	player.Current = session

	s.armResetTimer(player.Address, gameID)

	s.logger.Info().
		Str("addr", player.Address).
		Int64("game_id", gameID).
		Int("duration", duration).
		Bool("staked", session.IsStaked).
		Int("letters", len(session.ScrambledLetters)).
		Msg("game started")

	return session.View(), nil
}

// EndGame scores the single submission for address's active session, updates
// the stats record selected by the session's snapshotted mode, appends the
// session to history and rebuilds the leaderboards.
func (s *GameService) EndGame(address string, submitted []string) (*domain.GameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.repo.Get(address)
	if err != nil {
		return nil, domain.ErrNoActiveSession
	}
	session := player.Current
	if session == nil {
		return nil, domain.ErrNoActiveSession
	}

	s.disarmResetTimer(player.Address)

	scored := scoring.Score(submitted, session.ScrambledLetters, session.HiddenWords, s.dict, session.IsStaked)
	total := scored.TotalPoints()

	session.IsEnded = true
	session.WordsWon = scored.Words
	session.BonusWordsWon = scored.BonusWords
	session.PointsEarned = scored.NormalPoints
	session.BonusPointsEarned = scored.BonusPoints

	mode := domain.ModeNormal
	if session.IsStaked {
		mode = domain.ModeStaked
	}
	stats := player.StatsFor(mode)
	stats.TotalPoints += total
	stats.GamesPlayed++
	stats.TotalWordsWon += len(scored.Words)
	stats.TotalBonusWordsWon += len(scored.BonusWords)
	stats.LastGamePoints = total

	player.History = append(player.History, session)
	player.Current = nil

	s.lb.Recompute()

	sample, additional := scoring.SamplePossibleWords(
		session.ScrambledLetters, s.dict, constants.SamplePossibleWords, s.rng)

	s.logger.Info().
		Str("addr", player.Address).
		Int64("game_id", session.GameID).
		Str("mode", string(mode)).
		Int("words_won", len(scored.Words)).
		Int("bonus_words_won", len(scored.BonusWords)).
		Int("points", total).
		Msg("game ended")

	return &domain.GameResult{
		GameID:                  session.GameID,
		ScrambledLetters:        session.ScrambledLetters,
		StartedAt:               session.StartedAt,
		Duration:                session.Duration,
		IsEnded:                 session.IsEnded,
		IsStaked:                session.IsStaked,
		WordsWon:                session.WordsWon,
		BonusWordsWon:           session.BonusWordsWon,
		PointsEarned:            session.PointsEarned,
		BonusPointsEarned:       session.BonusPointsEarned,
		TotalPoints:             total,
		WordsSubmitted:          scored.Submitted,
		HiddenWords:             session.HiddenWords,
		SamplePossibleWords:     sample,
		AdditionalPossibleWords: additional,
	}, nil
}

// SetStakeMode flips the player's mode flag. An active session keeps the
// mode it snapshotted at start. The flag moves the player between views, so
// the leaderboards rebuild.
func (s *GameService) SetStakeMode(address string, staked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, _ := s.repo.GetOrCreate(address)
	player.IsStaked = staked
	s.lb.Recompute()

	s.logger.Info().Str("addr", player.Address).Bool("staked", staked).Msg("stake mode updated")
}

// CurrentSession returns the public view of address's active session, or nil
// when none is active. Unknown addresses are an error.
func (s *GameService) CurrentSession(address string) (*domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.repo.Get(address)
	if err != nil {
		return nil, err
	}
	if player.Current == nil {
		return nil, nil
	}
	view := player.Current.View()
	return &view, nil
}

// History returns address's ended sessions in play order.
func (s *GameService) History(address string) ([]*domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.repo.Get(address)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.GameSession, len(player.History))
	copy(out, player.History)
	return out, nil
}

// armResetTimer schedules the abandonment reset. A player who walks away
// from a session would otherwise block new games forever.
func (s *GameService) armResetTimer(address string, gameID int64) {
	if t, ok := s.timers[address]; ok {
		t.Stop()
	}
	s.timers[address] = time.AfterFunc(s.cfg.SessionGrace, func() {
		s.expireSession(address, gameID)
	})
}

func (s *GameService) disarmResetTimer(address string) {
	if t, ok := s.timers[address]; ok {
		t.Stop()
		delete(s.timers, address)
	}
}

// expireSession clears an abandoned session: no score, no history entry.
// The game id guard makes a late-firing timer a no-op against any session
// other than the one it was armed for.
func (s *GameService) expireSession(address string, gameID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.repo.Get(address)
	if err != nil {
		return
	}
	session := player.Current
	if session == nil || session.GameID != gameID || session.IsEnded {
		return
	}

	player.Current = nil
	delete(s.timers, address)

	s.logger.Info().
		Str("addr", player.Address).
		Int64("game_id", gameID).
		Msg("game reset after grace window")
}

// drawWords picks the hidden words for a puzzle from the configured length
// window. Capped at the pool size for degenerate word lists.
func (s *GameService) drawWords(count int) []string {
	pool := s.dict.WordsWithLengthBetween(s.cfg.MinWordLength, s.cfg.MaxWordLength)
	if count > len(pool) {
		s.logger.Warn().Int("pool", len(pool)).Int("want", count).Msg("word pool smaller than requested draw")
		count = len(pool)
	}
	words := make([]string, 0, count)
	for _, i := range s.rng.Perm(len(pool))[:count] {
		words = append(words, pool[i])
	}
	return words
}

// scramble shuffles the concatenated letters of the hidden words.
func (s *GameService) scramble(words []string) string {
	letters := []rune(strings.Join(words, ""))
	s.rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters)
}

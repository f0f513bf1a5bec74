package dispatch

import (
	"encoding/json"
	"fmt"
	"sync"
	"wordrush/internal/domain"
	"wordrush/internal/service"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// Dispatcher is the event-processing boundary over the engine. It decodes
// operation payloads, applies them through the services, and packages the
// results as notices. It also owns the monotonic game id counter, since the
// engine expects ids to be assigned by its caller.
type Dispatcher struct {
	game   *service.GameService
	lb     *service.LeaderboardService
	logger zerolog.Logger

	mu         sync.Mutex
	nextGameID int64
}

func NewDispatcher(game *service.GameService, lb *service.LeaderboardService, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		game:       game,
		lb:         lb,
		logger:     logger,
		nextGameID: 1,
	}
}

// Advance applies one event and returns the notices it produced. A returned
// error is a rejection of this event only; engine state is unchanged and
// later events proceed normally.
func (d *Dispatcher) Advance(ev AdvanceEvent) ([]Notice, error) {
	logger := d.logger.With().
		Str("event_id", uuid.New().String()).
		Str("sender", ev.Sender).
		Logger()

	var payload advancePayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		logger.Warn().Err(err).Msg("malformed event payload")
		return nil, fmt.Errorf("malformed event payload: %w", err)
	}

	logger = logger.With().Str("operation", string(payload.Operation)).Logger()

	switch payload.Operation {
	case OpStartGame:
		return d.handleStartGame(ev.Sender, payload.Duration, logger)
	case OpEndGame:
		return d.handleEndGame(ev.Sender, payload.Words, logger)
	case OpSetStake:
		return d.handleSetStake(ev.Sender, payload.Staked, logger)
	default:
		logger.Warn().Msg("unknown operation")
		return nil, fmt.Errorf("unknown operation %q", payload.Operation)
	}
}

func (d *Dispatcher) handleStartGame(sender string, duration int, logger zerolog.Logger) ([]Notice, error) {
	gameID := d.claimGameID()

	view, err := d.game.StartGame(sender, gameID, duration)
	if err != nil {
		logger.Warn().Err(err).Int("duration", duration).Msg("start rejected")
		return nil, err
	}

	notice, err := newNotice(NoticeGameStarted, view)
	if err != nil {
		return nil, err
	}
	return []Notice{notice}, nil
}

func (d *Dispatcher) handleEndGame(sender string, words []string, logger zerolog.Logger) ([]Notice, error) {
	result, err := d.game.EndGame(sender, words)
	if err != nil {
		logger.Warn().Err(err).Msg("end rejected")
		return nil, err
	}

	history, err := d.game.History(sender)
	if err != nil {
		return nil, err
	}

	notices := make([]Notice, 0, 4)
	for _, item := range []struct {
		kind    string
		payload any
	}{
		{NoticeGameResult, result},
		{NoticeNormalLeaderboard, d.lb.Leaderboard(domain.ModeNormal)},
		{NoticeStakedLeaderboard, d.lb.Leaderboard(domain.ModeStaked)},
		{NoticeGameHistory, history},
	} {
		notice, err := newNotice(item.kind, item.payload)
		if err != nil {
			return nil, err
		}
		notices = append(notices, notice)
	}
	return notices, nil
}

func (d *Dispatcher) handleSetStake(sender string, staked bool, logger zerolog.Logger) ([]Notice, error) {
	d.game.SetStakeMode(sender, staked)

	notice, err := newNotice(NoticeStakeUpdated, map[string]any{
		"address": sender,
		"staked":  staked,
	})
	if err != nil {
		return nil, err
	}
	return []Notice{notice}, nil
}

func (d *Dispatcher) claimGameID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextGameID
	d.nextGameID++
	return id
}

// CurrentSession is the inspect-path query for address's active session.
func (d *Dispatcher) CurrentSession(address string) (*domain.SessionView, error) {
	return d.game.CurrentSession(address)
}

// History is the inspect-path query for address's full game history.
func (d *Dispatcher) History(address string) ([]*domain.GameSession, error) {
	return d.game.History(address)
}

// Leaderboard is the inspect-path query for one mode's ranked view.
func (d *Dispatcher) Leaderboard(mode domain.Mode) []domain.LeaderboardEntry {
	return d.lb.Leaderboard(mode)
}

// Rank is the inspect-path query for address's 1-based rank in its mode.
func (d *Dispatcher) Rank(address string) (int, error) {
	return d.lb.Rank(address)
}

func newNotice(kind string, payload any) (Notice, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Notice{}, fmt.Errorf("failed to encode %s notice: %w", kind, err)
	}
	id, err := gonanoid.New()
	if err != nil {
		return Notice{}, fmt.Errorf("failed to generate notice id: %w", err)
	}
	return Notice{ID: id, Type: kind, Payload: raw}, nil
}

package service

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sort"
	"testing"
	"time"
	"wordrush/internal/config"
	"wordrush/internal/dictionary"
	"wordrush/internal/domain"
	"wordrush/internal/repository"

	"github.com/rs/zerolog"
)

func newTestEngine(t *testing.T) (*GameService, *LeaderboardService, *repository.PlayerRepository) {
	t.Helper()
	dict := dictionary.New([]string{"cat", "dog", "cot", "coat", "tag", "act", "goad", "toad", "horse", "mouse"})
	repo := repository.NewPlayerRepository(zerolog.Nop())
	lb := NewLeaderboardService(repo, zerolog.Nop())
	cfg := &config.Config{
		MinWordLength: 3,
		MaxWordLength: 8,
		SessionGrace:  time.Minute,
	}
	rng := rand.New(rand.NewPCG(7, 11))
	return NewGameService(repo, dict, lb, rng, cfg, zerolog.Nop()), lb, repo
}

func sortedLetters(s string) string {
	runes := []rune(s)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func TestStartGameInvalidDuration(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	for _, d := range []int{0, -1, 20, 30, 50, 100} {
		_, err := svc.StartGame("0xp1", 1, d)
		if !errors.Is(err, domain.ErrInvalidDuration) {
			t.Errorf("StartGame(duration=%d) err = %v, want ErrInvalidDuration", d, err)
		}
	}

	view, err := svc.CurrentSession("0xp1")
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if view != nil {
		t.Error("no session may be created by a rejected start")
	}
}

func TestStartGameWhileActive(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	if _, err := svc.StartGame("0xp1", 1, 80); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	// Rejected regardless of the new duration, valid or not.
	for _, d := range []int{40, 99} {
		_, err := svc.StartGame("0xp1", 2, d)
		if !errors.Is(err, domain.ErrActiveSessionExists) {
			t.Errorf("StartGame(duration=%d) err = %v, want ErrActiveSessionExists", d, err)
		}
	}
}

func TestStartGameBuildsPuzzle(t *testing.T) {
	svc, _, repo := newTestEngine(t)

	view, err := svc.StartGame("0xP1", 5, 60)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if view.GameID != 5 || view.Duration != 60 || view.IsEnded {
		t.Errorf("unexpected view %+v", view)
	}

	player, err := repo.Get("0xp1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	session := player.Current
	if session == nil {
		t.Fatal("expected an active session")
	}
	if len(session.HiddenWords) != 3 {
		t.Errorf("hidden words = %v, want 3 for duration 60", session.HiddenWords)
	}

	var joined string
	for _, w := range session.HiddenWords {
		joined += w
	}
	if sortedLetters(view.ScrambledLetters) != sortedLetters(joined) {
		t.Errorf("scrambled letters %q are not a shuffle of the hidden words %v",
			view.ScrambledLetters, session.HiddenWords)
	}
}

func TestEndGameNoSession(t *testing.T) {
	svc, _, repo := newTestEngine(t)

	if _, err := svc.EndGame("0xnobody", []string{"cat"}); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}

	// Known player without an active session is rejected the same way, with
	// stats untouched.
	repo.GetOrCreate("0xp1")
	if _, err := svc.EndGame("0xp1", []string{"cat"}); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Errorf("err = %v, want ErrNoActiveSession", err)
	}
	player, _ := repo.Get("0xp1")
	if player.NormalStats.GamesPlayed != 0 {
		t.Error("rejected end must not touch stats")
	}
}

func TestEndGameScoresAndAggregates(t *testing.T) {
	svc, lb, repo := newTestEngine(t)

	if _, err := svc.StartGame("0xp1", 1, 80); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	player, _ := repo.Get("0xp1")
	hidden := slices.Clone(player.Current.HiddenWords)

	result, err := svc.EndGame("0xp1", hidden)
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}

	if len(result.BonusWordsWon) != len(hidden) {
		t.Errorf("bonus words = %v, want all hidden words %v", result.BonusWordsWon, hidden)
	}
	wantTotal := len(hidden) * 6
	if result.TotalPoints != wantTotal {
		t.Errorf("TotalPoints = %d, want %d", result.TotalPoints, wantTotal)
	}
	if result.PointsEarned != 0 {
		t.Errorf("PointsEarned = %d, want 0 when only hidden words are submitted", result.PointsEarned)
	}
	if !result.IsEnded {
		t.Error("result session must be marked ended")
	}
	if !slices.Equal(result.HiddenWords, hidden) {
		t.Errorf("hidden words must be revealed in the result, got %v", result.HiddenWords)
	}
	if len(result.SamplePossibleWords) > 5 {
		t.Errorf("sample = %v, want at most 5", result.SamplePossibleWords)
	}

	if player.Current != nil {
		t.Error("session must be cleared after end")
	}
	if len(player.History) != 1 || !player.History[0].IsEnded {
		t.Errorf("history = %v, want one ended session", player.History)
	}

	stats := player.NormalStats
	if stats.GamesPlayed != 1 || stats.TotalPoints != wantTotal || stats.LastGamePoints != wantTotal {
		t.Errorf("stats = %+v, want one game at %d points", stats, wantTotal)
	}
	if stats.TotalBonusWordsWon != len(hidden) {
		t.Errorf("TotalBonusWordsWon = %d, want %d", stats.TotalBonusWordsWon, len(hidden))
	}

	rank, err := lb.Rank("0xp1")
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank = %d, want 1", rank)
	}
}

func TestEndGameUsesSnapshottedStakeMode(t *testing.T) {
	svc, _, repo := newTestEngine(t)

	svc.SetStakeMode("0xp1", true)
	if _, err := svc.StartGame("0xp1", 1, 80); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	// Mode flips mid-session; scoring must follow the snapshot.
	svc.SetStakeMode("0xp1", false)

	player, _ := repo.Get("0xp1")
	hidden := slices.Clone(player.Current.HiddenWords)

	result, err := svc.EndGame("0xp1", hidden)
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}

	wantTotal := len(hidden) * 6 * 2
	if result.TotalPoints != wantTotal {
		t.Errorf("TotalPoints = %d, want staked-doubled %d", result.TotalPoints, wantTotal)
	}
	if player.StakedStats.TotalPoints != wantTotal {
		t.Errorf("StakedStats.TotalPoints = %d, want %d", player.StakedStats.TotalPoints, wantTotal)
	}
	if player.NormalStats.GamesPlayed != 0 {
		t.Error("normal stats must be untouched by a staked session")
	}
}

func TestExpireSession(t *testing.T) {
	svc, _, repo := newTestEngine(t)

	if _, err := svc.StartGame("0xp1", 1, 40); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	// A stale timer for some other game id is a no-op.
	svc.expireSession("0xp1", 99)
	player, _ := repo.Get("0xp1")
	if player.Current == nil {
		t.Fatal("stale timer must not clear the session")
	}

	svc.expireSession("0xp1", 1)
	if player.Current != nil {
		t.Error("expiry must clear the abandoned session")
	}
	if len(player.History) != 0 {
		t.Error("expiry must not record history")
	}
	if player.NormalStats.GamesPlayed != 0 {
		t.Error("expiry must not update stats")
	}

	// Expiry is idempotent and a fresh start is permitted afterwards.
	svc.expireSession("0xp1", 1)
	if _, err := svc.StartGame("0xp1", 2, 40); err != nil {
		t.Errorf("StartGame after expiry: %v", err)
	}
}

func TestExpireAfterEndIsNoOp(t *testing.T) {
	svc, _, repo := newTestEngine(t)

	if _, err := svc.StartGame("0xp1", 1, 80); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if _, err := svc.EndGame("0xp1", nil); err != nil {
		t.Fatalf("EndGame: %v", err)
	}

	svc.expireSession("0xp1", 1)

	player, _ := repo.Get("0xp1")
	if len(player.History) != 1 {
		t.Error("late timer must not disturb an ended session")
	}
}

func TestQueries(t *testing.T) {
	svc, _, _ := newTestEngine(t)

	if _, err := svc.History("0xnobody"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("History err = %v, want ErrPlayerNotFound", err)
	}
	if _, err := svc.CurrentSession("0xnobody"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Errorf("CurrentSession err = %v, want ErrPlayerNotFound", err)
	}

	if _, err := svc.StartGame("0xp1", 1, 80); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	view, err := svc.CurrentSession("0xp1")
	if err != nil || view == nil {
		t.Fatalf("CurrentSession = %v, %v; want active view", view, err)
	}
	if view.GameID != 1 {
		t.Errorf("view.GameID = %d, want 1", view.GameID)
	}

	history, err := svc.History("0xp1")
	if err != nil || len(history) != 0 {
		t.Errorf("History = %v, %v; want empty before any end", history, err)
	}
}

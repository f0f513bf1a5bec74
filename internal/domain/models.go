package domain

// Mode distinguishes the two play modes. A player's stats and leaderboard
// placement are tracked separately per mode.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeStaked Mode = "staked"
)

// GameSession is one play attempt, from puzzle generation to scoring or
// timeout. HiddenWords stays server-side until the session is scored.
type GameSession struct {
	GameID            int64    `json:"game_id"`
	ScrambledLetters  string   `json:"scrambled_letters"`
	HiddenWords       []string `json:"-"`
	StartedAt         int64    `json:"timestamp"`
	Duration          int      `json:"duration"`
	IsEnded           bool     `json:"is_ended"`
	IsStaked          bool     `json:"is_staked"`
	WordsWon          []string `json:"words_won"`
	BonusWordsWon     []string `json:"bonus_words_won"`
	PointsEarned      int      `json:"points_earned"`
	BonusPointsEarned int      `json:"bonus_points_earned"`
}

// SessionView is the public projection of an unscored session. It carries no
// hidden words and no result fields.
type SessionView struct {
	GameID           int64  `json:"game_id"`
	ScrambledLetters string `json:"scrambled_letters"`
	StartedAt        int64  `json:"timestamp"`
	Duration         int    `json:"duration"`
	IsEnded          bool   `json:"is_ended"`
	IsStaked         bool   `json:"is_staked"`
}

func (s *GameSession) View() SessionView {
	return SessionView{
		GameID:           s.GameID,
		ScrambledLetters: s.ScrambledLetters,
		StartedAt:        s.StartedAt,
		Duration:         s.Duration,
		IsEnded:          s.IsEnded,
		IsStaked:         s.IsStaked,
	}
}

// GameResult is the full scored outcome returned when a session ends. Hidden
// words are revealed here, together with a sample of other words the player
// could have formed.
type GameResult struct {
	GameID                  int64    `json:"game_id"`
	ScrambledLetters        string   `json:"scrambled_letters"`
	StartedAt               int64    `json:"timestamp"`
	Duration                int      `json:"duration"`
	IsEnded                 bool     `json:"is_ended"`
	IsStaked                bool     `json:"is_staked"`
	WordsWon                []string `json:"words_won"`
	BonusWordsWon           []string `json:"bonus_words_won"`
	PointsEarned            int      `json:"points_earned"`
	BonusPointsEarned       int      `json:"bonus_points_earned"`
	TotalPoints             int      `json:"total_points"`
	WordsSubmitted          []string `json:"words_submitted"`
	HiddenWords             []string `json:"original_words"`
	SamplePossibleWords     []string `json:"sample_possible_words"`
	AdditionalPossibleWords int      `json:"additional_possible_words_count"`
}

type PlayerStats struct {
	TotalPoints        int `json:"total_points"`
	GamesPlayed        int `json:"games_played"`
	TotalWordsWon      int `json:"total_words_won"`
	TotalBonusWordsWon int `json:"total_bonus_words_won"`
	LastGamePoints     int `json:"last_game_points"`
}

// Player holds everything the engine knows about one address. Created lazily
// on first interaction, never deleted. History is append-only; Current is nil
// unless a session is active.
type Player struct {
	Address     string
	IsStaked    bool
	NormalStats PlayerStats
	StakedStats PlayerStats
	History     []*GameSession
	Current     *GameSession
}

// Mode reports the player's current play mode.
func (p *Player) Mode() Mode {
	if p.IsStaked {
		return ModeStaked
	}
	return ModeNormal
}

// StatsFor selects the stats record for a mode. Scoring uses the mode
// snapshotted on the session, not the player's current flag.
func (p *Player) StatsFor(mode Mode) *PlayerStats {
	if mode == ModeStaked {
		return &p.StakedStats
	}
	return &p.NormalStats
}

// LeaderboardEntry is a derived projection of a player's stats. It is never
// stored independently; the aggregator rebuilds entries from Player records.
type LeaderboardEntry struct {
	Address        string `json:"address"`
	GamesPlayed    int    `json:"games_played"`
	TotalPoints    int    `json:"total_points"`
	LastGamePoints int    `json:"last_game_points"`
}

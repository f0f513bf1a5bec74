package dispatch

import "encoding/json"

type Operation string

const (
	OpStartGame Operation = "start_game"
	OpEndGame   Operation = "end_game"
	OpSetStake  Operation = "set_stake"
)

// AdvanceEvent is one state-changing input: the sender identity plus an
// operation payload, already stripped of any transport encoding.
type AdvanceEvent struct {
	Sender  string          `json:"sender"`
	Payload json.RawMessage `json:"payload"`
}

// advancePayload is the decoded operation body. Field names follow the
// original wire format.
type advancePayload struct {
	Operation Operation `json:"operation"`
	Duration  int       `json:"duration"`
	Words     []string  `json:"wordsSubmitted"`
	Staked    bool      `json:"staked"`
}

// Notice is one output emitted while handling an event. The payload is
// ready-to-publish JSON; the id exists for downstream correlation.
type Notice struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

const (
	NoticeGameStarted       = "game_started"
	NoticeGameResult        = "game_result"
	NoticeNormalLeaderboard = "normal_leaderboard"
	NoticeStakedLeaderboard = "staked_leaderboard"
	NoticeGameHistory       = "game_history"
	NoticeStakeUpdated      = "stake_updated"
)

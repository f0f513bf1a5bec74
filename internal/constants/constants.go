package constants

import "time"

const (
	NormalWordPoints = 3
	BonusWordPoints  = 6
	StakedMultiplier = 2
)

const (
	DefaultMinWordLength = 4
	DefaultMaxWordLength = 8
	MinDictionaryLength  = 3
	SamplePossibleWords  = 5
)

const (
	DefaultSessionGrace = 5 * time.Minute
	ShutdownTimeout     = 5 * time.Second
)

// WordCountByDuration maps a game duration in seconds to the number of
// hidden words seeding the puzzle. Durations outside this table are rejected.
var WordCountByDuration = map[int]int{
	40: 4,
	60: 3,
	80: 2,
}

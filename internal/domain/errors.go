package domain

import "errors"

// All engine errors are rejections of a single event. State is left
// unchanged when one of these is returned.
var (
	ErrInvalidDuration     = errors.New("invalid game duration")
	ErrActiveSessionExists = errors.New("player already has an active game")
	ErrNoActiveSession     = errors.New("no active game for this player")
	ErrPlayerNotFound      = errors.New("player not found")
)

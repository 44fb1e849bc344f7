package game

import "errors"

var (
	ErrInvalidPlayerCount = errors.New("player count must be between 1 and 24")
	ErrInvalidPlayer      = errors.New("no such player")
	ErrInvalidSlot        = errors.New("marker slot must be between 0 and 23")
	ErrNoMarker           = errors.New("there is no player marker at the from position")
	ErrMarkerPresent      = errors.New("there is already a player marker at the to position")
	ErrMoveTooFar         = errors.New("there is more than one empty marker slot between the from and to position")
	ErrSetupClosed        = errors.New("markers can only be placed before the first round")
	ErrIncompleteTurn     = errors.New("a turn needs two actions")
	ErrInvalidDeck        = errors.New("deck must be between 0 and 2")
	ErrDeckEmpty          = errors.New("deck is empty")
)

package services

import "errors"

// Sentinel errors for the ledger operations. Handlers map these onto HTTP
// statuses; batch jobs log and continue past the per-row ones.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidChallenge   = errors.New("challenge not registered")
	ErrInvalidAction      = errors.New("action not recognized for challenge")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardUnavailable  = errors.New("reward not available")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrProgressNotFound   = errors.New("challenge progress not found")
)

package services

import "errors"

// Sentinel errors surfaced by the services. Handlers map these to the
// response envelope with errors.Is.
var (
	ErrMissionNotFound      = errors.New("mission not found")
	ErrInsufficientRank     = errors.New("insufficient rank for mission")
	ErrMissionAlreadyStart  = errors.New("mission already started")
	ErrMissionNotInProgress = errors.New("mission not in progress")
	ErrUserNotFound         = errors.New("user not found")
	ErrRankNotFound         = errors.New("rank not found")
	ErrArtifactNotFound     = errors.New("artifact not found")
	ErrThemeNotFound        = errors.New("theme not found")
	ErrCannotDeleteDefault  = errors.New("cannot delete default theme")
	ErrStoreItemNotFound    = errors.New("store item not found")
	ErrInsufficientMana     = errors.New("insufficient mana")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already taken")
)

package types

import "errors"

// Vote ledger errors.
var (
	ErrSelfVote          = errors.New("users cannot vote on their own posts")
	ErrInsufficientPower = errors.New("insufficient power tier to dislike")
	ErrInvalidComment    = errors.New("comment must be at least 3 characters")
	ErrNoVote            = errors.New("no live vote exists for this post")
	ErrDuplicateVote     = errors.New("a concurrent vote for this post already exists")
	ErrInvalidPolarity   = errors.New("vote polarity must be +1 or -1")
	ErrAccountNotFound   = errors.New("reputation account not found")
)

// Restriction errors.
var (
	ErrSelfRestriction        = errors.New("users cannot restrict themselves")
	ErrInvalidReason          = errors.New("reason length is out of bounds")
	ErrInvalidDuration        = errors.New("restriction duration must be between 1 and 365 days")
	ErrInvalidRestrictionType = errors.New("invalid restriction type")
	ErrAlreadyDeactivated     = errors.New("restriction is already deactivated")
	ErrRestrictionNotFound    = errors.New("restriction not found")
)

// Admin override errors.
var (
	ErrInvalidPoints = errors.New("admin award points must be non-zero and within bounds")
)

// Report errors.
var (
	ErrSelfReport         = errors.New("users cannot report themselves")
	ErrInvalidDescription = errors.New("description length is out of bounds")
	ErrInvalidStatus      = errors.New("invalid report status transition")
	ErrAlreadyResolved    = errors.New("report has already been resolved")
	ErrReportNotFound     = errors.New("report not found")
)

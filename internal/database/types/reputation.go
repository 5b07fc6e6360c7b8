package types

import (
	"time"

	"github.com/google/uuid"
)

// ReputationEntry is one vote or admin award in the reputation ledger.
// Entries are never updated in place: a changed vote is a delete plus a new
// row, so the ledger stays append/delete only.
type ReputationEntry struct {
	ID           uuid.UUID  `bun:",pk,type:uuid"          json:"id"`
	GiverID      uint64     `bun:",notnull"               json:"giverId"`
	ReceiverID   uint64     `bun:",notnull"               json:"receiverId"`
	PostID       *uuid.UUID `bun:",nullzero,type:uuid"    json:"postId"`     // Null for admin awards
	Points       int        `bun:",notnull"               json:"points"`     // Signed; negative for dislikes
	Comment      string     `bun:",nullzero,type:text"    json:"comment"`    // Optional, >=3 chars trimmed when present
	GiverPower   int        `bun:"giver_power,notnull"    json:"giverPower"` // Tier snapshot at vote time
	IsAdminAward bool       `bun:",notnull,default:false" json:"isAdminAward"`
	CreatedAt    time.Time  `bun:",notnull"               json:"createdAt"`
}

// IsLike reports whether the entry is a positive vote.
func (e *ReputationEntry) IsLike() bool {
	return e.Points > 0
}

// ReputationAccount is the per-user running total of reputation points with
// the cached power tier derived from it. Mutated only in the same
// transaction as a ledger insert or delete.
type ReputationAccount struct {
	UserID      uint64    `bun:",pk"      json:"userId"`
	TotalPoints int       `bun:",notnull" json:"totalPoints"`
	PowerTier   int       `bun:",notnull" json:"powerTier"`
	UpdatedAt   time.Time `bun:",notnull" json:"updatedAt"`
}

// PostReputation summarizes the live votes on a single post.
type PostReputation struct {
	PostID       uuid.UUID        `json:"postId"`
	LikeCount    int              `json:"likeCount"`
	DislikeCount int              `json:"dislikeCount"`
	TotalPoints  int              `json:"totalPoints"`
	CallerVote   *ReputationEntry `json:"callerVote,omitempty"` // Viewer's live entry, if any
}

// ReputationStats aggregates a user's ledger activity for profile display.
type ReputationStats struct {
	TotalPoints   int    `json:"totalPoints"`
	PowerTier     int    `json:"powerTier"`
	TotalReceived int    `json:"totalReceived"`
	TotalGiven    int    `json:"totalGiven"`
	PositiveCount int    `json:"positiveCount"`
	NegativeCount int    `json:"negativeCount"`
	RecentTrend   string `json:"recentTrend"` // "increasing", "decreasing" or "stable"
}

// Trend bucket bounds for RecentTrend over the last 30 days of entries.
const (
	TrendWindowDays    = 30
	TrendIncreaseFloor = 10
	TrendDecreaseCeil  = -10
)

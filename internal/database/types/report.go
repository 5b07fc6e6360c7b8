package types

import (
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/google/uuid"
)

// Description length bounds for reports.
const (
	DescriptionMinLen = 3
	DescriptionMaxLen = 1000
)

// UserReport is a member-filed complaint about another user or one of their
// posts, queued for moderator review.
type UserReport struct {
	ID             uuid.UUID         `bun:",pk,type:uuid"       json:"id"`
	ReportedUserID uint64            `bun:",notnull"            json:"reportedUserId"`
	ReportedBy     uint64            `bun:",notnull"            json:"reportedBy"`
	PostID         *uuid.UUID        `bun:",nullzero,type:uuid" json:"postId"`
	ReportType     enum.ReportType   `bun:",notnull"            json:"reportType"`
	Description    string            `bun:",notnull,type:text"  json:"description"`
	Status         enum.ReportStatus `bun:",notnull,default:0"  json:"status"`
	ResolvedBy     *uint64           `bun:",nullzero"           json:"resolvedBy"`
	ResolvedAt     *time.Time        `bun:",nullzero"           json:"resolvedAt"`
	CreatedAt      time.Time         `bun:",notnull"            json:"createdAt"`
}

// IsPending reports whether the report still awaits moderator action.
func (r *UserReport) IsPending() bool {
	return r.Status == enum.ReportStatusPending
}

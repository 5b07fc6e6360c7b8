package types

import (
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/google/uuid"
)

// Reason and deactivation reason length bounds.
const (
	ReasonMinLen             = 3
	ReasonMaxLen             = 1000
	DeactivationReasonMaxLen = 500
)

// Restriction duration bounds in days for non-permanent sanctions.
const (
	MinDurationDays = 1
	MaxDurationDays = 365
)

// UserRestriction is one applied sanction. A row's is_active flag only ever
// transitions true to false; a renewed sanction is a new row. Expiry is
// observed at read time via IsExpired and never written back, which keeps
// "expired naturally" distinguishable from "revoked by a moderator".
type UserRestriction struct {
	ID                 uuid.UUID            `bun:",pk,type:uuid"         json:"id"`
	UserID             uint64               `bun:",notnull"              json:"userId"`
	RestrictionType    enum.RestrictionType `bun:",notnull"              json:"restrictionType"`
	Reason             string               `bun:",notnull,type:text"    json:"reason"`
	IssuedBy           uint64               `bun:",notnull"              json:"issuedBy"`
	StartsAt           time.Time            `bun:",notnull"              json:"startsAt"`
	ExpiresAt          *time.Time           `bun:",nullzero"             json:"expiresAt"` // Null for permanent
	IsActive           bool                 `bun:",notnull,default:true" json:"isActive"`
	DeactivatedAt      *time.Time           `bun:",nullzero"             json:"deactivatedAt"`
	DeactivatedBy      *uint64              `bun:",nullzero"             json:"deactivatedBy"`
	DeactivationReason string               `bun:",nullzero,type:text"   json:"deactivationReason"`
	CreatedAt          time.Time            `bun:",notnull"              json:"createdAt"`
}

// IsExpired reports whether the restriction's expiry has passed at the given
// instant. Deactivated rows are not expired, they are revoked.
func (r *UserRestriction) IsExpired(now time.Time) bool {
	return r.IsActive && r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// IsPermanent reports whether the restriction never expires on its own.
func (r *UserRestriction) IsPermanent() bool {
	return r.ExpiresAt == nil
}

// IsEffective reports whether the restriction currently binds: active, not
// yet expired.
func (r *UserRestriction) IsEffective(now time.Time) bool {
	return r.IsActive && !r.IsExpired(now)
}

// WasDeactivated reports whether a moderator explicitly revoked the
// restriction, as opposed to it lapsing on its own.
func (r *UserRestriction) WasDeactivated() bool {
	return !r.IsActive && r.DeactivatedAt != nil
}

// MostSevere returns the currently effective restriction with the highest
// severity, or nil if none binds. Precedence: permanent_ban > temp_ban >
// view_ban > shadow_ban > mute.
func MostSevere(restrictions []*UserRestriction, now time.Time) *UserRestriction {
	var winner *UserRestriction

	for _, r := range restrictions {
		if !r.IsEffective(now) {
			continue
		}

		if winner == nil || r.RestrictionType.Severity() > winner.RestrictionType.Severity() {
			winner = r
		}
	}

	return winner
}

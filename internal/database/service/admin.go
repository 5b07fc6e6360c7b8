package service

import (
	"context"

	"github.com/anglerhub/pondkeeper/internal/database/models"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/anglerhub/pondkeeper/internal/reputation"
	"go.uber.org/zap"
)

// AwardMaxPoints bounds the absolute value of a single admin award.
const AwardMaxPoints = 1000

// AdminService is the privileged path around the vote ledger and the
// restriction machine. Awards bypass the uniqueness, self-vote, and power
// gating rules of normal votes; forced restrictions still honor the
// structural constraints (no self-target, reason bounds). Callers are
// already authenticated as admins by the identity layer.
type AdminService struct {
	votes      *models.VoteModel
	moderation *ModerationService
	logger     *zap.Logger
}

// NewAdmin creates a new admin service.
func NewAdmin(votes *models.VoteModel, moderation *ModerationService, logger *zap.Logger) *AdminService {
	return &AdminService{
		votes:      votes,
		moderation: moderation,
		logger:     logger.Named("admin_service"),
	}
}

// Award grants a receiver an arbitrary bounded point delta, recorded as an
// admin ledger entry with no post attached. Multiple awards per receiver
// accumulate; awards are never retracted, only offset by further awards.
func (s *AdminService) Award(
	ctx context.Context, receiverID uint64, points int, comment string, issuedBy uint64,
) (*types.ReputationEntry, error) {
	if points == 0 || points < -AwardMaxPoints || points > AwardMaxPoints {
		return nil, types.ErrInvalidPoints
	}

	trimmed, _, err := normalizeComment(comment)
	if err != nil {
		return nil, err
	}

	entry := &types.ReputationEntry{
		GiverID:    issuedBy,
		ReceiverID: receiverID,
		Points:     points,
		Comment:    trimmed,
		GiverPower: reputation.MaxTier,
	}

	awarded, err := s.votes.InsertAward(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin award recorded",
		zap.Uint64("receiverID", receiverID),
		zap.Int("points", points),
		zap.Uint64("issuedBy", issuedBy))

	return awarded, nil
}

// ForceRestriction applies a restriction on behalf of an admin. Nothing
// structural is bypassed: self-target and reason validation still apply.
func (s *AdminService) ForceRestriction(
	ctx context.Context,
	targetUserID uint64,
	restrictionType enum.RestrictionType,
	reason string,
	issuedBy uint64,
	durationDays int,
) (*types.UserRestriction, error) {
	return s.moderation.Apply(ctx, targetUserID, restrictionType, reason, issuedBy, durationDays)
}

// PurgeReputation deletes a receiver's entire ledger history and zeroes
// their account, returning the number of deleted entries.
func (s *AdminService) PurgeReputation(ctx context.Context, receiverID uint64) (int64, error) {
	return s.votes.PurgeReceiver(ctx, receiverID)
}

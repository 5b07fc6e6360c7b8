package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/models"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// Effective-restriction cache settings. The TTL is short because access
// gates hit this on every page render but must not hold a stale permission
// for long; every restriction write also invalidates the key.
const (
	effectiveCacheTTL    = 30 * time.Second
	effectiveCachePrefix = "restriction:effective:"
	effectiveCacheNone   = "none"
)

// ModerationService owns the restriction lifecycle: apply, deactivate,
// history, and the precedence-resolved effective restriction consumed by
// access gates.
type ModerationService struct {
	restrictions *models.RestrictionModel
	cache        rueidis.Client
	logger       *zap.Logger
}

// NewModeration creates a new moderation service.
func NewModeration(
	restrictions *models.RestrictionModel, cache rueidis.Client, logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		restrictions: restrictions,
		cache:        cache,
		logger:       logger.Named("moderation_service"),
	}
}

// validReason checks a trimmed reason against the given bounds.
func validReason(reason string, maxLen int) bool {
	n := len([]rune(strings.TrimSpace(reason)))
	return n >= types.ReasonMinLen && n <= maxLen
}

// Apply validates and inserts a new active restriction. durationDays of
// zero means no expiry; permanent bans never expire regardless of a
// supplied duration. Overlapping restrictions across types are allowed;
// precedence is resolved at read time by Effective.
func (s *ModerationService) Apply(
	ctx context.Context,
	targetUserID uint64,
	restrictionType enum.RestrictionType,
	reason string,
	issuedBy uint64,
	durationDays int,
) (*types.UserRestriction, error) {
	if !restrictionType.IsValid() {
		return nil, types.ErrInvalidRestrictionType
	}

	if issuedBy == targetUserID {
		return nil, types.ErrSelfRestriction
	}

	if !validReason(reason, types.ReasonMaxLen) {
		return nil, types.ErrInvalidReason
	}

	now := time.Now()

	restriction := &types.UserRestriction{
		UserID:          targetUserID,
		RestrictionType: restrictionType,
		Reason:          strings.TrimSpace(reason),
		IssuedBy:        issuedBy,
		StartsAt:        now,
	}

	if restrictionType != enum.RestrictionTypePermanentBan && durationDays != 0 {
		if durationDays < types.MinDurationDays || durationDays > types.MaxDurationDays {
			return nil, types.ErrInvalidDuration
		}

		expiry := now.AddDate(0, 0, durationDays)
		restriction.ExpiresAt = &expiry
	}

	if err := s.restrictions.Create(ctx, restriction); err != nil {
		return nil, err
	}

	s.invalidateEffective(ctx, targetUserID)

	s.logger.Info("Restriction applied",
		zap.Uint64("userID", targetUserID),
		zap.Stringer("type", restrictionType),
		zap.Uint64("issuedBy", issuedBy))

	return restriction, nil
}

// Deactivate revokes an active restriction, recording who did it and why.
// This is the only path that writes the deactivation audit fields; rows
// whose expiry merely passed keep is_active until someone revokes them
// explicitly.
func (s *ModerationService) Deactivate(
	ctx context.Context, restrictionID uuid.UUID, deactivatedBy uint64, reason string,
) (*types.UserRestriction, error) {
	if !validReason(reason, types.DeactivationReasonMaxLen) {
		return nil, types.ErrInvalidReason
	}

	restriction, err := s.restrictions.Deactivate(ctx, restrictionID, deactivatedBy, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}

	s.invalidateEffective(ctx, restriction.UserID)

	s.logger.Info("Restriction deactivated",
		zap.String("restrictionID", restrictionID.String()),
		zap.Uint64("deactivatedBy", deactivatedBy))

	return restriction, nil
}

// History lists every restriction ever applied to a user, newest first.
// Expired rows are reported as stored; callers derive expiry via
// UserRestriction.IsExpired.
func (s *ModerationService) History(ctx context.Context, userID uint64) ([]*types.UserRestriction, error) {
	return s.restrictions.History(ctx, userID)
}

// Effective returns the most severe currently binding restriction for a
// user, or nil when none. Results are cached briefly in Redis and the cache
// is dropped on every restriction write for the user.
func (s *ModerationService) Effective(ctx context.Context, userID uint64) (*types.UserRestriction, error) {
	key := fmt.Sprintf("%s%d", effectiveCachePrefix, userID)

	cached, err := s.cache.Do(ctx, s.cache.B().Get().Key(key).Build()).AsBytes()
	if err == nil {
		if string(cached) == effectiveCacheNone {
			return nil, nil
		}

		var restriction types.UserRestriction
		if err := sonic.Unmarshal(cached, &restriction); err == nil {
			// A cached row may have lapsed inside the TTL window.
			if restriction.IsEffective(time.Now()) {
				return &restriction, nil
			}
		}
	} else if !rueidis.IsRedisNil(err) {
		s.logger.Warn("Effective restriction cache read failed", zap.Error(err))
	}

	active, err := s.restrictions.ActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	effective := types.MostSevere(active, time.Now())
	s.storeEffective(ctx, key, effective)

	return effective, nil
}

// storeEffective writes the resolved restriction (or the none marker) back
// to the cache. Failures are logged and ignored; the database remains the
// source of truth.
func (s *ModerationService) storeEffective(ctx context.Context, key string, restriction *types.UserRestriction) {
	value := effectiveCacheNone

	if restriction != nil {
		encoded, err := sonic.Marshal(restriction)
		if err != nil {
			s.logger.Warn("Failed to encode restriction for cache", zap.Error(err))
			return
		}

		value = string(encoded)
	}

	err := s.cache.Do(ctx,
		s.cache.B().Set().Key(key).Value(value).Ex(effectiveCacheTTL).Build(),
	).Error()
	if err != nil {
		s.logger.Warn("Effective restriction cache write failed", zap.Error(err))
	}
}

// invalidateEffective drops the cached effective restriction for a user.
func (s *ModerationService) invalidateEffective(ctx context.Context, userID uint64) {
	key := fmt.Sprintf("%s%d", effectiveCachePrefix, userID)

	err := s.cache.Do(ctx, s.cache.B().Del().Key(key).Build()).Error()
	if err != nil {
		s.logger.Warn("Effective restriction cache invalidation failed", zap.Error(err))
	}
}

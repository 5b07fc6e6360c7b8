package service

import (
	"context"
	"strings"

	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/reputation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentMinLen is the minimum trimmed length of a vote comment.
const CommentMinLen = 3

// VoteLedger is the storage surface the vote service drives, implemented by
// models.VoteModel.
type VoteLedger interface {
	Cast(ctx context.Context, entry *types.ReputationEntry) (*types.ReputationEntry, error)
	Retract(ctx context.Context, giverID uint64, postID uuid.UUID) error
	PostSummary(ctx context.Context, postID uuid.UUID, viewerID uint64) (*types.PostReputation, error)
	ReceiverEntries(ctx context.Context, receiverID uint64, limit, offset int) ([]*types.ReputationEntry, error)
	ReceiverStats(ctx context.Context, userID uint64) (received, positive, negative, given, recentSum int, err error)
}

// AccountReader supplies the giver's account for power gating, implemented
// by models.AccountModel.
type AccountReader interface {
	GetOrZero(ctx context.Context, userID uint64) (*types.ReputationAccount, error)
}

// VoteService handles vote ledger business logic: validation, power gating,
// and point weighting. All storage effects go through the ledger.
type VoteService struct {
	votes    VoteLedger
	accounts AccountReader
	logger   *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(votes VoteLedger, accounts AccountReader, logger *zap.Logger) *VoteService {
	return &VoteService{
		votes:    votes,
		accounts: accounts,
		logger:   logger.Named("vote_service"),
	}
}

// normalizeComment trims the comment and validates its minimum length.
// Returns the trimmed comment and whether one is present.
func normalizeComment(comment string) (string, bool, error) {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return "", false, nil
	}

	if len([]rune(trimmed)) < CommentMinLen {
		return "", false, types.ErrInvalidComment
	}

	return trimmed, true, nil
}

// Cast validates and records a vote on a post, replacing the giver's
// previous live vote if one exists, and returns the updated post summary.
//
// Fails with ErrSelfVote, ErrInsufficientPower, ErrInvalidComment or
// ErrDuplicateVote; all validation happens before any write.
func (s *VoteService) Cast(
	ctx context.Context, giverID uint64, postID uuid.UUID, receiverID uint64, polarity int, comment string,
) (*types.PostReputation, error) {
	if giverID == receiverID {
		return nil, types.ErrSelfVote
	}

	if polarity != 1 && polarity != -1 {
		return nil, types.ErrInvalidPolarity
	}

	trimmed, hasComment, err := normalizeComment(comment)
	if err != nil {
		return nil, err
	}

	giver, err := s.accounts.GetOrZero(ctx, giverID)
	if err != nil {
		return nil, err
	}

	if polarity < 0 && !reputation.CanDislike(giver.PowerTier) {
		return nil, types.ErrInsufficientPower
	}

	entry := &types.ReputationEntry{
		GiverID:    giverID,
		ReceiverID: receiverID,
		PostID:     &postID,
		Points:     polarity * reputation.AwardMagnitude(giver.PowerTier, hasComment),
		Comment:    trimmed,
		GiverPower: giver.PowerTier,
	}

	if _, err := s.votes.Cast(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Debug("Vote cast",
		zap.Uint64("giverID", giverID),
		zap.Uint64("receiverID", receiverID),
		zap.String("postID", postID.String()),
		zap.Int("points", entry.Points))

	return s.votes.PostSummary(ctx, postID, giverID)
}

// Retract removes the giver's live vote on a post and returns the updated
// summary. Fails with ErrNoVote when no live entry exists.
func (s *VoteService) Retract(
	ctx context.Context, giverID uint64, postID uuid.UUID,
) (*types.PostReputation, error) {
	if err := s.votes.Retract(ctx, giverID, postID); err != nil {
		return nil, err
	}

	s.logger.Debug("Vote retracted",
		zap.Uint64("giverID", giverID),
		zap.String("postID", postID.String()))

	return s.votes.PostSummary(ctx, postID, giverID)
}

// PostReputation returns the live vote summary for a post. viewerID of zero
// means an anonymous read with no caller vote lookup.
func (s *VoteService) PostReputation(
	ctx context.Context, postID uuid.UUID, viewerID uint64,
) (*types.PostReputation, error) {
	return s.votes.PostSummary(ctx, postID, viewerID)
}

// Logs lists a receiver's ledger entries, newest first.
func (s *VoteService) Logs(
	ctx context.Context, receiverID uint64, limit, offset int,
) ([]*types.ReputationEntry, error) {
	return s.votes.ReceiverEntries(ctx, receiverID, limit, offset)
}

// Stats assembles a user's reputation profile numbers from the account row
// and the ledger.
func (s *VoteService) Stats(ctx context.Context, userID uint64) (*types.ReputationStats, error) {
	account, err := s.accounts.GetOrZero(ctx, userID)
	if err != nil {
		return nil, err
	}

	received, positive, negative, given, recentSum, err := s.votes.ReceiverStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	trend := "stable"

	switch {
	case recentSum > types.TrendIncreaseFloor:
		trend = "increasing"
	case recentSum < types.TrendDecreaseCeil:
		trend = "decreasing"
	}

	return &types.ReputationStats{
		TotalPoints:   account.TotalPoints,
		PowerTier:     account.PowerTier,
		TotalReceived: received,
		TotalGiven:    given,
		PositiveCount: positive,
		NegativeCount: negative,
		RecentTrend:   trend,
	}, nil
}

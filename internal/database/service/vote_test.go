package service_test

import (
	"context"
	"testing"

	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAccounts serves canned accounts keyed by user ID. Unknown users get a
// fresh zero account, matching the storage behavior for users who never
// received a vote.
type fakeAccounts map[uint64]*types.ReputationAccount

func (f fakeAccounts) GetOrZero(_ context.Context, userID uint64) (*types.ReputationAccount, error) {
	if account, ok := f[userID]; ok {
		return account, nil
	}

	return &types.ReputationAccount{UserID: userID}, nil
}

// fakeLedger keeps live entries in memory with the one-live-vote-per-
// (giver, post) replace rule, enough to drive the service end to end.
type fakeLedger struct {
	entries []*types.ReputationEntry
}

func (f *fakeLedger) Cast(_ context.Context, entry *types.ReputationEntry) (*types.ReputationEntry, error) {
	f.remove(entry.GiverID, *entry.PostID)
	f.entries = append(f.entries, entry)

	return entry, nil
}

func (f *fakeLedger) Retract(_ context.Context, giverID uint64, postID uuid.UUID) error {
	if !f.remove(giverID, postID) {
		return types.ErrNoVote
	}

	return nil
}

func (f *fakeLedger) remove(giverID uint64, postID uuid.UUID) bool {
	for i, entry := range f.entries {
		if entry.GiverID == giverID && entry.PostID != nil && *entry.PostID == postID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}

	return false
}

func (f *fakeLedger) PostSummary(
	_ context.Context, postID uuid.UUID, viewerID uint64,
) (*types.PostReputation, error) {
	summary := &types.PostReputation{PostID: postID}

	for _, entry := range f.entries {
		if entry.PostID == nil || *entry.PostID != postID {
			continue
		}

		if entry.Points > 0 {
			summary.LikeCount++
		} else {
			summary.DislikeCount++
		}

		summary.TotalPoints += entry.Points

		if viewerID != 0 && entry.GiverID == viewerID {
			summary.CallerVote = entry
		}
	}

	return summary, nil
}

func (f *fakeLedger) ReceiverEntries(
	_ context.Context, receiverID uint64, _, _ int,
) ([]*types.ReputationEntry, error) {
	var entries []*types.ReputationEntry

	for _, entry := range f.entries {
		if entry.ReceiverID == receiverID {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func (f *fakeLedger) ReceiverStats(
	_ context.Context, userID uint64,
) (received, positive, negative, given, recentSum int, err error) {
	for _, entry := range f.entries {
		if entry.ReceiverID == userID {
			received++
			recentSum += entry.Points

			if entry.Points > 0 {
				positive++
			} else {
				negative++
			}
		}

		if entry.GiverID == userID {
			given++
		}
	}

	return received, positive, negative, given, recentSum, nil
}

// Validation failures must be detected before any storage access, so a
// service with no models behind it is enough to exercise them.

func TestCastValidation(t *testing.T) {
	t.Parallel()

	svc := service.NewVote(nil, nil, zap.NewNop())
	postID := uuid.New()

	tests := []struct {
		name       string
		giverID    uint64
		receiverID uint64
		polarity   int
		comment    string
		wantErr    error
	}{
		{
			name:       "self vote",
			giverID:    7,
			receiverID: 7,
			polarity:   1,
			wantErr:    types.ErrSelfVote,
		},
		{
			name:       "zero polarity",
			giverID:    7,
			receiverID: 8,
			polarity:   0,
			wantErr:    types.ErrInvalidPolarity,
		},
		{
			name:       "oversized polarity",
			giverID:    7,
			receiverID: 8,
			polarity:   5,
			wantErr:    types.ErrInvalidPolarity,
		},
		{
			name:       "two char comment",
			giverID:    7,
			receiverID: 8,
			polarity:   1,
			comment:    "ab",
			wantErr:    types.ErrInvalidComment,
		},
		{
			name:       "whitespace padded short comment",
			giverID:    7,
			receiverID: 8,
			polarity:   1,
			comment:    "  ab  ",
			wantErr:    types.ErrInvalidComment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Cast(t.Context(), tt.giverID, postID, tt.receiverID, tt.polarity, tt.comment)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAdminAwardValidation(t *testing.T) {
	t.Parallel()

	svc := service.NewAdmin(nil, nil, zap.NewNop())

	tests := []struct {
		name    string
		points  int
		comment string
		wantErr error
	}{
		{name: "zero points", points: 0, wantErr: types.ErrInvalidPoints},
		{name: "above bound", points: 1001, wantErr: types.ErrInvalidPoints},
		{name: "below bound", points: -1001, wantErr: types.ErrInvalidPoints},
		{name: "short comment", points: 500, comment: "ab", wantErr: types.ErrInvalidComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Award(t.Context(), 42, tt.points, tt.comment, 1)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCastPowerGating(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	accounts := fakeAccounts{
		5: {UserID: 5, TotalPoints: 60, PowerTier: 1},
	}
	svc := service.NewVote(ledger, accounts, zap.NewNop())
	postID := uuid.New()

	// Tier 0 giver: dislikes always rejected, nothing stored.
	_, err := svc.Cast(t.Context(), 3, postID, 8, -1, "")
	require.ErrorIs(t, err, types.ErrInsufficientPower)
	assert.Empty(t, ledger.entries)

	// Tier 1 giver: the same dislike goes through at unit weight.
	summary, err := svc.Cast(t.Context(), 5, postID, 8, -1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DislikeCount)
	assert.Equal(t, -1, summary.TotalPoints)

	require.Len(t, ledger.entries, 1)
	assert.Equal(t, -1, ledger.entries[0].Points)
	assert.Equal(t, 1, ledger.entries[0].GiverPower)
}

func TestVoteLifecycle(t *testing.T) {
	t.Parallel()

	ledger := &fakeLedger{}
	accounts := fakeAccounts{
		1: {UserID: 1, TotalPoints: 600, PowerTier: 3},
	}
	svc := service.NewVote(ledger, accounts, zap.NewNop())
	postID := uuid.New()

	// A bare like from a tier 3 giver carries unit weight.
	summary, err := svc.Cast(t.Context(), 1, postID, 2, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LikeCount)
	assert.Equal(t, 1, summary.TotalPoints)

	// Re-voting with a comment replaces the live entry and amplifies it by
	// the giver's tier multiplier.
	summary, err = svc.Cast(t.Context(), 1, postID, 2, 1, "nice catch")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LikeCount)
	assert.Equal(t, 4, summary.TotalPoints)

	require.NotNil(t, summary.CallerVote)
	assert.Equal(t, 3, summary.CallerVote.GiverPower)

	// Retract empties the summary; a second retract has nothing to remove.
	summary, err = svc.Retract(t.Context(), 1, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.LikeCount)
	assert.Equal(t, 0, summary.TotalPoints)

	_, err = svc.Retract(t.Context(), 1, postID)
	require.ErrorIs(t, err, types.ErrNoVote)

	// A tier 0 bystander still cannot dislike the post.
	_, err = svc.Cast(t.Context(), 9, postID, 2, -1, "")
	require.ErrorIs(t, err, types.ErrInsufficientPower)
}

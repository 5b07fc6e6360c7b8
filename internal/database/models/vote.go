package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anglerhub/pondkeeper/internal/database/dbretry"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VoteModel handles database operations for the reputation ledger.
type VoteModel struct {
	db      *bun.DB
	account *AccountModel
	logger  *zap.Logger
}

// NewVote creates a new VoteModel instance.
func NewVote(db *bun.DB, account *AccountModel, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:      db,
		account: account,
		logger:  logger.Named("db_vote"),
	}
}

// GetLiveVote retrieves the giver's live non-admin entry for a post, if any.
func (m *VoteModel) GetLiveVote(
	ctx context.Context, giverID uint64, postID uuid.UUID,
) (*types.ReputationEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.ReputationEntry, error) {
		entry, err := m.liveVote(ctx, m.db, giverID, postID, false)
		if err != nil {
			return nil, err
		}

		return entry, nil
	})
}

// liveVote looks up the giver's live vote on a post inside the given
// transaction or connection. Returns nil without error when none exists.
// forUpdate locks the row for the replace path.
func (m *VoteModel) liveVote(
	ctx context.Context, idb bun.IDB, giverID uint64, postID uuid.UUID, forUpdate bool,
) (*types.ReputationEntry, error) {
	var entry types.ReputationEntry

	q := idb.NewSelect().
		Model(&entry).
		Where("giver_id = ?", giverID).
		Where("post_id = ?", postID).
		Where("NOT is_admin_award")

	if forUpdate {
		q = q.For("UPDATE")
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to look up live vote: %w", err)
	}

	return &entry, nil
}

// accountAdjustment is a signed point change to one user's account.
type accountAdjustment struct {
	userID uint64
	delta  int
}

// castAdjustments returns the account changes a vote insert requires, given
// the live entry it replaces, if any. A replacement on the same receiver
// collapses to a single delta; a receiver change (the post changed hands or
// the caller re-attributed it) refunds the old receiver in full before
// crediting the new one, so each account keeps matching the sum of its live
// entries.
func castAdjustments(existing, entry *types.ReputationEntry) []accountAdjustment {
	if existing == nil {
		return []accountAdjustment{{entry.ReceiverID, entry.Points}}
	}

	if existing.ReceiverID == entry.ReceiverID {
		return []accountAdjustment{{entry.ReceiverID, entry.Points - existing.Points}}
	}

	return []accountAdjustment{
		{existing.ReceiverID, -existing.Points},
		{entry.ReceiverID, entry.Points},
	}
}

// Cast inserts a vote entry, replacing the giver's previous live vote on the
// same post when one exists. The entry write and every account adjustment it
// implies commit in one transaction; see castAdjustments for the refund
// rules when the replaced entry names a different receiver.
//
// Two concurrent casts by the same giver on the same post race on the
// partial unique index; the loser fails with types.ErrDuplicateVote and the
// caller retries to observe replace semantics.
func (m *VoteModel) Cast(ctx context.Context, entry *types.ReputationEntry) (*types.ReputationEntry, error) {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		var existing *types.ReputationEntry

		if entry.PostID != nil {
			var err error

			existing, err = m.liveVote(ctx, tx, entry.GiverID, *entry.PostID, true)
			if err != nil {
				return err
			}

			if existing != nil {
				_, err = tx.NewDelete().
					Model((*types.ReputationEntry)(nil)).
					Where("id = ?", existing.ID).
					Exec(ctx)
				if err != nil {
					return fmt.Errorf("failed to replace previous vote: %w", err)
				}
			}
		}

		_, err := tx.NewInsert().
			Model(entry).
			Exec(ctx)
		if err != nil {
			if dbretry.IsUniqueViolation(err) {
				return types.ErrDuplicateVote
			}

			return fmt.Errorf("failed to insert vote entry: %w", err)
		}

		for _, adjustment := range castAdjustments(existing, entry) {
			if _, err := m.account.AdjustPoints(ctx, tx, adjustment.userID, adjustment.delta); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Retract deletes the giver's live non-admin entry for a post and decrements
// the receiver's account by the entry's stored points in one transaction.
func (m *VoteModel) Retract(ctx context.Context, giverID uint64, postID uuid.UUID) error {
	return dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		existing, err := m.liveVote(ctx, tx, giverID, postID, true)
		if err != nil {
			return err
		}

		if existing == nil {
			return types.ErrNoVote
		}

		_, err = tx.NewDelete().
			Model((*types.ReputationEntry)(nil)).
			Where("id = ?", existing.ID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete vote entry: %w", err)
		}

		_, err = m.account.AdjustPoints(ctx, tx, existing.ReceiverID, -existing.Points)

		return err
	})
}

// PostSummary computes the live vote summary for a post. When viewerID is
// non-zero the viewer's own live entry is attached.
func (m *VoteModel) PostSummary(
	ctx context.Context, postID uuid.UUID, viewerID uint64,
) (*types.PostReputation, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.PostReputation, error) {
		var row struct {
			LikeCount    int `bun:"like_count"`
			DislikeCount int `bun:"dislike_count"`
			TotalPoints  int `bun:"total_points"`
		}

		err := m.db.NewSelect().
			Model((*types.ReputationEntry)(nil)).
			ColumnExpr("count(*) FILTER (WHERE points > 0) AS like_count").
			ColumnExpr("count(*) FILTER (WHERE points < 0) AS dislike_count").
			ColumnExpr("coalesce(sum(points), 0) AS total_points").
			Where("post_id = ?", postID).
			Scan(ctx, &row)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize post reputation: %w", err)
		}

		summary := &types.PostReputation{
			PostID:       postID,
			LikeCount:    row.LikeCount,
			DislikeCount: row.DislikeCount,
			TotalPoints:  row.TotalPoints,
		}

		if viewerID != 0 {
			callerVote, err := m.liveVote(ctx, m.db, viewerID, postID, false)
			if err != nil {
				return nil, err
			}

			summary.CallerVote = callerVote
		}

		return summary, nil
	})
}

// ReceiverEntries lists a receiver's ledger entries, newest first.
func (m *VoteModel) ReceiverEntries(
	ctx context.Context, receiverID uint64, limit, offset int,
) ([]*types.ReputationEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ReputationEntry, error) {
		var entries []*types.ReputationEntry

		q := m.db.NewSelect().
			Model(&entries).
			Where("receiver_id = ?", receiverID).
			Order("created_at DESC")

		if limit > 0 {
			q = q.Limit(limit).Offset(offset)
		}

		err := q.Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list receiver entries: %w", err)
		}

		return entries, nil
	})
}

// ReceiverStats aggregates ledger counts for a receiver: received entries
// split by sign, entries given, and the signed point sum over the trend
// window.
func (m *VoteModel) ReceiverStats(
	ctx context.Context, userID uint64,
) (received, positive, negative, given, recentSum int, err error) {
	type counts struct {
		Received  int `bun:"received"`
		Positive  int `bun:"positive"`
		Negative  int `bun:"negative"`
		RecentSum int `bun:"recent_sum"`
	}

	windowStart := time.Now().AddDate(0, 0, -types.TrendWindowDays)

	result, err := dbretry.Operation(ctx, func(ctx context.Context) (counts, error) {
		var row counts

		err := m.db.NewSelect().
			Model((*types.ReputationEntry)(nil)).
			ColumnExpr("count(*) AS received").
			ColumnExpr("count(*) FILTER (WHERE points > 0) AS positive").
			ColumnExpr("count(*) FILTER (WHERE points < 0) AS negative").
			ColumnExpr("coalesce(sum(points) FILTER (WHERE created_at >= ?), 0) AS recent_sum", windowStart).
			Where("receiver_id = ?", userID).
			Scan(ctx, &row)
		if err != nil {
			return row, fmt.Errorf("failed to aggregate receiver stats: %w", err)
		}

		return row, nil
	})
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}

	given, err = dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		n, err := m.db.NewSelect().
			Model((*types.ReputationEntry)(nil)).
			Where("giver_id = ?", userID).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count given entries: %w", err)
		}

		return n, nil
	})
	if err != nil {
		return 0, 0, 0, 0, 0, err
	}

	return result.Received, result.Positive, result.Negative, given, result.RecentSum, nil
}

// InsertAward inserts an admin award entry and adjusts the receiver's
// account in one transaction. Awards bypass the per-post uniqueness
// constraint by carrying no post ID.
func (m *VoteModel) InsertAward(ctx context.Context, entry *types.ReputationEntry) (*types.ReputationEntry, error) {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	entry.IsAdminAward = true

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(entry).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert admin award: %w", err)
		}

		_, err = m.account.AdjustPoints(ctx, tx, entry.ReceiverID, entry.Points)

		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// PurgeReceiver deletes every ledger entry for a receiver and zeroes their
// account in one transaction. Returns the number of deleted entries.
func (m *VoteModel) PurgeReceiver(ctx context.Context, receiverID uint64) (int64, error) {
	var deleted int64

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewDelete().
			Model((*types.ReputationEntry)(nil)).
			Where("receiver_id = ?", receiverID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge reputation entries: %w", err)
		}

		deleted, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read purge row count: %w", err)
		}

		return m.account.Reset(ctx, tx, receiverID)
	})
	if err != nil {
		return 0, err
	}

	m.logger.Info("Purged reputation history",
		zap.Uint64("receiverID", receiverID),
		zap.Int64("deleted", deleted))

	return deleted, nil
}

package models

import (
	"testing"

	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestCastAdjustments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing *types.ReputationEntry
		entry    *types.ReputationEntry
		want     []accountAdjustment
	}{
		{
			name:  "fresh vote credits the receiver",
			entry: &types.ReputationEntry{ReceiverID: 7, Points: 4},
			want:  []accountAdjustment{{userID: 7, delta: 4}},
		},
		{
			name:     "same receiver replacement applies the delta",
			existing: &types.ReputationEntry{ReceiverID: 7, Points: 1},
			entry:    &types.ReputationEntry{ReceiverID: 7, Points: -1},
			want:     []accountAdjustment{{userID: 7, delta: -2}},
		},
		{
			name:     "identical replacement nets to zero",
			existing: &types.ReputationEntry{ReceiverID: 7, Points: 1},
			entry:    &types.ReputationEntry{ReceiverID: 7, Points: 1},
			want:     []accountAdjustment{{userID: 7, delta: 0}},
		},
		{
			name:     "receiver change refunds the old receiver in full",
			existing: &types.ReputationEntry{ReceiverID: 7, Points: 1},
			entry:    &types.ReputationEntry{ReceiverID: 9, Points: 1},
			want: []accountAdjustment{
				{userID: 7, delta: -1},
				{userID: 9, delta: 1},
			},
		},
		{
			name:     "receiver change with sign flip",
			existing: &types.ReputationEntry{ReceiverID: 7, Points: 4},
			entry:    &types.ReputationEntry{ReceiverID: 9, Points: -1},
			want: []accountAdjustment{
				{userID: 7, delta: -4},
				{userID: 9, delta: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, castAdjustments(tt.existing, tt.entry))
		})
	}
}

// The sum of all adjustments plus the surviving entries must leave every
// account equal to its live entry total, whatever the replacement shape.
func TestCastAdjustmentsPreserveTotals(t *testing.T) {
	t.Parallel()

	entries := []struct {
		existing *types.ReputationEntry
		entry    *types.ReputationEntry
	}{
		{nil, &types.ReputationEntry{ReceiverID: 1, Points: 8}},
		{&types.ReputationEntry{ReceiverID: 1, Points: 8}, &types.ReputationEntry{ReceiverID: 1, Points: -1}},
		{&types.ReputationEntry{ReceiverID: 1, Points: -1}, &types.ReputationEntry{ReceiverID: 2, Points: 3}},
	}

	totals := map[uint64]int{}
	live := map[uint64]int{}

	for _, step := range entries {
		for _, adjustment := range castAdjustments(step.existing, step.entry) {
			totals[adjustment.userID] += adjustment.delta
		}

		if step.existing != nil {
			live[step.existing.ReceiverID] -= step.existing.Points
		}

		live[step.entry.ReceiverID] += step.entry.Points

		for userID, total := range totals {
			assert.Equal(t, live[userID], total, "account %d diverged from its live entries", userID)
		}
	}
}

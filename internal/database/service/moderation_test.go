package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anglerhub/pondkeeper/internal/database/service"
	"github.com/anglerhub/pondkeeper/internal/database/types"
	"github.com/anglerhub/pondkeeper/internal/database/types/enum"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupModeration(t *testing.T) (*service.ModerationService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return service.NewModeration(nil, client, zap.NewNop()), mr
}

func TestApplyValidation(t *testing.T) {
	t.Parallel()

	svc, _ := setupModeration(t)

	tests := []struct {
		name            string
		targetUserID    uint64
		restrictionType enum.RestrictionType
		reason          string
		issuedBy        uint64
		durationDays    int
		wantErr         error
	}{
		{
			name:            "self restriction",
			targetUserID:    9,
			restrictionType: enum.RestrictionTypeTempBan,
			reason:          "spam",
			issuedBy:        9,
			wantErr:         types.ErrSelfRestriction,
		},
		{
			name:            "short reason",
			targetUserID:    9,
			restrictionType: enum.RestrictionTypeMute,
			reason:          "ok",
			issuedBy:        1,
			wantErr:         types.ErrInvalidReason,
		},
		{
			name:            "reason over 1000 chars",
			targetUserID:    9,
			restrictionType: enum.RestrictionTypeMute,
			reason:          strings.Repeat("x", 1001),
			issuedBy:        1,
			wantErr:         types.ErrInvalidReason,
		},
		{
			name:            "negative duration",
			targetUserID:    9,
			restrictionType: enum.RestrictionTypeTempBan,
			reason:          "spam",
			issuedBy:        1,
			durationDays:    -1,
			wantErr:         types.ErrInvalidDuration,
		},
		{
			name:            "duration over a year",
			targetUserID:    9,
			restrictionType: enum.RestrictionTypeTempBan,
			reason:          "spam",
			issuedBy:        1,
			durationDays:    366,
			wantErr:         types.ErrInvalidDuration,
		},
		{
			name:            "unknown restriction type",
			targetUserID:    9,
			restrictionType: enum.RestrictionType(99),
			reason:          "spam",
			issuedBy:        1,
			wantErr:         types.ErrInvalidRestrictionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Apply(
				t.Context(), tt.targetUserID, tt.restrictionType, tt.reason, tt.issuedBy, tt.durationDays,
			)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeactivateValidation(t *testing.T) {
	t.Parallel()

	svc, _ := setupModeration(t)

	_, err := svc.Deactivate(t.Context(), uuid.New(), 1, "ok")
	require.ErrorIs(t, err, types.ErrInvalidReason)

	_, err = svc.Deactivate(t.Context(), uuid.New(), 1, strings.Repeat("x", 501))
	require.ErrorIs(t, err, types.ErrInvalidReason)
}

func TestEffectiveCacheHit(t *testing.T) {
	t.Parallel()

	svc, mr := setupModeration(t)

	expiry := time.Now().Add(time.Hour)
	cached := &types.UserRestriction{
		ID:              uuid.New(),
		UserID:          42,
		RestrictionType: enum.RestrictionTypeTempBan,
		Reason:          "spam",
		IssuedBy:        1,
		StartsAt:        time.Now().Add(-time.Minute),
		ExpiresAt:       &expiry,
		IsActive:        true,
		CreatedAt:       time.Now().Add(-time.Minute),
	}

	encoded, err := sonic.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, mr.Set(fmt.Sprintf("restriction:effective:%d", cached.UserID), string(encoded)))

	// The model behind the service is nil, so a result proves the cache
	// short-circuited the database.
	effective, err := svc.Effective(t.Context(), cached.UserID)
	require.NoError(t, err)
	require.NotNil(t, effective)
	assert.Equal(t, cached.ID, effective.ID)
	assert.Equal(t, enum.RestrictionTypeTempBan, effective.RestrictionType)
}

func TestEffectiveCacheNoneMarker(t *testing.T) {
	t.Parallel()

	svc, mr := setupModeration(t)

	require.NoError(t, mr.Set("restriction:effective:43", "none"))

	effective, err := svc.Effective(t.Context(), 43)
	require.NoError(t, err)
	assert.Nil(t, effective)
}

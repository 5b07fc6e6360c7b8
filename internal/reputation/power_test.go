package reputation_test

import (
	"testing"

	"github.com/anglerhub/pondkeeper/internal/reputation"
	"github.com/stretchr/testify/assert"
)

func TestTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		points int
		want   int
	}{
		{name: "zero points", points: 0, want: 0},
		{name: "negative points", points: -500, want: 0},
		{name: "just below first threshold", points: 49, want: 0},
		{name: "first threshold", points: 50, want: 1},
		{name: "just below tier 2", points: 199, want: 1},
		{name: "tier 2", points: 200, want: 2},
		{name: "tier 3", points: 500, want: 3},
		{name: "tier 4", points: 1000, want: 4},
		{name: "tier 5", points: 2500, want: 5},
		{name: "tier 6", points: 5000, want: 6},
		{name: "tier 7", points: 10000, want: 7},
		{name: "far past the top", points: 1_000_000, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reputation.Tier(tt.points))
		})
	}
}

func TestTierMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0
	for points := 0; points <= 12000; points++ {
		tier := reputation.Tier(points)
		assert.GreaterOrEqual(t, tier, prev, "tier regressed at %d points", points)
		prev = tier
	}

	assert.Equal(t, reputation.MaxTier, prev)
}

func TestAwardMagnitude(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tier       int
		hasComment bool
		want       int
	}{
		{name: "tier 0 plain", tier: 0, hasComment: false, want: 1},
		{name: "tier 0 with comment", tier: 0, hasComment: true, want: 1},
		{name: "tier 1 plain", tier: 1, hasComment: false, want: 1},
		{name: "tier 1 with comment", tier: 1, hasComment: true, want: 2},
		{name: "tier 3 with comment", tier: 3, hasComment: true, want: 4},
		{name: "tier 7 with comment", tier: 7, hasComment: true, want: 8},
		{name: "tier clamped below", tier: -2, hasComment: true, want: 1},
		{name: "tier clamped above", tier: 99, hasComment: true, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reputation.AwardMagnitude(tt.tier, tt.hasComment))
		})
	}
}

func TestAwardMagnitudeMonotonicInTier(t *testing.T) {
	t.Parallel()

	prev := 0
	for tier := 0; tier <= reputation.MaxTier; tier++ {
		m := reputation.AwardMagnitude(tier, true)
		assert.GreaterOrEqual(t, m, prev)
		assert.Positive(t, m)
		prev = m
	}
}

func TestCanDislike(t *testing.T) {
	t.Parallel()

	assert.False(t, reputation.CanDislike(0))

	for tier := 1; tier <= reputation.MaxTier; tier++ {
		assert.True(t, reputation.CanDislike(tier))
	}
}

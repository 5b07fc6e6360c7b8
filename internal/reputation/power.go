// Package reputation contains the pure point arithmetic shared by the vote
// ledger and its consumers: the mapping from accumulated points to a power
// tier and from a giver's tier to the weight their vote carries.
package reputation

// MaxTier is the highest reachable power tier.
const MaxTier = 7

// MinDislikeTier is the lowest tier allowed to cast a negative vote.
const MinDislikeTier = 1

// tierThresholds holds the minimum total points required for tiers 1..7.
// Totals below the first threshold map to tier 0.
var tierThresholds = [MaxTier]int{50, 200, 500, 1000, 2500, 5000, 10000}

// commentMultipliers scales a vote's base point when the giver attaches a
// qualifying comment, indexed by tier. Tier 0 comments carry no
// amplification so a live entry can never hold zero points.
var commentMultipliers = [MaxTier + 1]int{1, 2, 3, 4, 5, 6, 7, 8}

// Tier maps a user's accumulated reputation points to their power tier.
func Tier(totalPoints int) int {
	tier := 0

	for _, threshold := range tierThresholds {
		if totalPoints < threshold {
			break
		}

		tier++
	}

	return tier
}

// AwardMagnitude returns the unsigned point weight a vote by a giver of the
// given tier carries. The base weight is 1; a qualifying comment multiplies
// it by the tier's comment multiplier. Tiers outside 0..7 are clamped.
func AwardMagnitude(tier int, hasComment bool) int {
	if tier < 0 {
		tier = 0
	}

	if tier > MaxTier {
		tier = MaxTier
	}

	if !hasComment {
		return 1
	}

	return commentMultipliers[tier]
}

// CanDislike reports whether a giver of the given tier may cast a negative
// vote.
func CanDislike(tier int) bool {
	return tier >= MinDislikeTier
}

// Package learning implements the Wright's-Law cost scaling model: forward
// learned-cost projection, the inverse mapping from a target cost ratio to a
// required learning rate, and TRL-conditioned plausibility bounds.
package learning

import (
	"math"

	"github.com/iwvelando/fusion-backcast/pkg/constants"
	"github.com/iwvelando/fusion-backcast/pkg/mathutil"
)

// RateRange bounds the plausible learning rates for a technology maturity band.
type RateRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// LearnedCost projects the unit cost at the Nth cumulative unit under Wright's
// Law: baseline * rate^log2(N). A fleet of one or a rate of one or more leaves
// the baseline unchanged; a non-positive rate is an invalid-input guard and
// yields zero.
func LearnedCost(baselineCost, learningRate, unitsDeployed float64) float64 {
	if unitsDeployed <= 1 {
		return baselineCost
	}
	if learningRate >= 1 {
		return baselineCost
	}
	if learningRate <= 0 {
		return 0
	}
	doublings := math.Log2(unitsDeployed)
	return baselineCost * math.Pow(learningRate, doublings)
}

// RequiredLearningRate inverts Wright's Law: the rate that produces the given
// cost ratio after unitsDeployed cumulative units. Ratios of one or more, or a
// fleet of one, need no learning and return 1.0. The result is clamped to a
// sane range so extreme inputs cannot produce physically meaningless rates.
func RequiredLearningRate(costRatio, unitsDeployed float64) float64 {
	if unitsDeployed <= 1 || costRatio >= 1 {
		return 1.0
	}
	if costRatio <= 0 {
		return constants.MinLearningRate
	}
	doublings := math.Log2(unitsDeployed)
	rate := math.Pow(costRatio, 1/doublings)
	return mathutil.Clamp(rate, constants.MinLearningRate, constants.MaxLearningRate)
}

// PlausibleRange returns the TRL-conditioned learning rate band. Lower TRL
// legitimately permits faster learning; the Min bound is the floor of physical
// plausibility and rates below it must be flagged, not silently accepted.
func PlausibleRange(trl int) RateRange {
	switch {
	case trl <= 4:
		return RateRange{Min: 0.78, Max: 0.80}
	case trl <= 6:
		return RateRange{Min: 0.83, Max: 0.87}
	case trl <= 8:
		return RateRange{Min: 0.88, Max: 0.92}
	default:
		return RateRange{Min: 0.95, Max: 0.96}
	}
}

// ClampToPlausible clamps a learning rate to the TRL band floor and reports
// whether the unclamped rate breached it. The flag reflects the unclamped
// value so a clamped result never masks an unrealistic underlying requirement.
func ClampToPlausible(rate float64, trl int) (clamped float64, outOfRange bool) {
	band := PlausibleRange(trl)
	if rate < band.Min {
		return band.Min, true
	}
	return rate, false
}

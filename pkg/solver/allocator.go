package solver

import (
	"fmt"

	"github.com/iwvelando/fusion-backcast/pkg/constants"
	"github.com/iwvelando/fusion-backcast/pkg/lcoe"
	"github.com/iwvelando/fusion-backcast/pkg/learning"
	"github.com/iwvelando/fusion-backcast/pkg/mathutil"
	"github.com/iwvelando/fusion-backcast/pkg/model"
)

// AllocationResult reports the outcome of distributing a target LCOE across
// the subsystem set. Success, Partial, and plain failure are distinct
// outcomes; TargetAttainable is the authoritative feasibility signal and is
// independent of whether this particular allocation run converged.
type AllocationResult struct {
	Subsystems       []model.Subsystem `json:"subsystems"`
	Success          bool              `json:"success"`
	Partial          bool              `json:"partial"`
	Message          string            `json:"message"`
	BaselineLcoe     float64           `json:"baselineLcoe"`
	AchievedLcoe     float64           `json:"achievedLcoe"`
	TargetLcoe       float64           `json:"targetLcoe"`
	Shortfall        float64           `json:"shortfall"`
	TheoreticalMin   float64           `json:"theoreticalMinLcoe"`
	TargetAttainable bool              `json:"targetAttainable"`
}

// atBaseline returns a copy of the subsystems with absolute costs reset to the
// first-of-a-kind baselines, i.e. before any learning.
func atBaseline(subsystems []model.Subsystem) []model.Subsystem {
	reset := make([]model.Subsystem, len(subsystems))
	copy(reset, subsystems)
	for i := range reset {
		reset[i].AbsoluteCapitalCost = reset[i].BaselineCapitalCost
		reset[i].AbsoluteFixedOm = reset[i].BaselineFixedOm
	}
	return reset
}

// TheoreticalMinimumLCOE computes the floor of what learning can deliver:
// every non-disabled, non-locked subsystem at its TRL plausibility-floor
// learning rate for the configured fleet size. Locked subsystems keep their
// current absolute costs.
func TheoreticalMinimumLCOE(subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (float64, error) {
	floored := make([]model.Subsystem, len(subsystems))
	copy(floored, subsystems)
	for i := range floored {
		if floored[i].Disabled || floored[i].Locked() {
			continue
		}
		floorRate := learning.PlausibleRange(floored[i].Trl).Min
		floored[i].AbsoluteCapitalCost = learning.LearnedCost(floored[i].BaselineCapitalCost, floorRate, params.UnitsDeployed)
		floored[i].AbsoluteFixedOm = learning.LearnedCost(floored[i].BaselineFixedOm, floorRate, params.UnitsDeployed)
	}

	breakdown, err := lcoe.Calculate(floored, params, fuel, confinement)
	if err != nil {
		return 0, err
	}
	return breakdown.TotalLcoe, nil
}

// IsTargetAttainable reports whether a target sits at or above the theoretical
// minimum, within a small relative tolerance.
func IsTargetAttainable(targetLcoe, theoreticalMin float64) bool {
	return targetLcoe >= theoreticalMin*(1-constants.AttainabilityTolerance)
}

// ApplyTarget distributes the aggregate cost change implied by the target
// LCOE across the eligible subsystems. Reductions are weighted by idiot index
// (learning headroom) and realized through back-solved learning rates clamped
// to the TRL plausibility floor; increases are weighted by inverse TRL so the
// least mature accounts absorb the inflation. Locked and disabled subsystems
// are never touched.
func ApplyTarget(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (AllocationResult, error) {
	result := AllocationResult{TargetLcoe: targetLcoe}

	baseline, err := lcoe.Calculate(atBaseline(subsystems), params, fuel, confinement)
	if err != nil {
		return result, err
	}
	result.BaselineLcoe = baseline.TotalLcoe

	theoreticalMin, err := TheoreticalMinimumLCOE(subsystems, params, fuel, confinement)
	if err != nil {
		return result, err
	}
	result.TheoreticalMin = theoreticalMin
	result.TargetAttainable = IsTargetAttainable(targetLcoe, theoreticalMin)

	var eligible []int
	for i := range subsystems {
		if !subsystems[i].Disabled && !subsystems[i].Locked() {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		result.Subsystems = subsystems
		result.AchievedLcoe = result.BaselineLcoe
		result.Shortfall = result.BaselineLcoe - targetLcoe
		result.Message = "all subsystems are locked; nothing to adjust"
		return result, nil
	}

	if baseline.TotalLcoe <= 0 {
		result.Subsystems = subsystems
		result.Message = "baseline LCOE is zero; no allocation possible"
		return result, nil
	}

	globalRatio := targetLcoe / baseline.TotalLcoe

	updated := make([]model.Subsystem, len(subsystems))
	copy(updated, subsystems)

	if globalRatio < 1 {
		allocateReduction(updated, eligible, globalRatio, params.UnitsDeployed)
	} else {
		allocateIncrease(updated, eligible, globalRatio)
	}

	achieved, err := lcoe.Calculate(updated, params, fuel, confinement)
	if err != nil {
		return result, err
	}

	result.Subsystems = updated
	result.AchievedLcoe = achieved.TotalLcoe
	result.Shortfall = achieved.TotalLcoe - targetLcoe

	switch {
	case achieved.TotalLcoe <= targetLcoe+constants.LcoeTolerance:
		result.Success = true
		result.Shortfall = 0
		result.Message = fmt.Sprintf("target reached: $%.1f/MWh at %g units deployed",
			achieved.TotalLcoe, params.UnitsDeployed)
	case achieved.TotalLcoe < baseline.TotalLcoe:
		result.Partial = true
		result.Message = fmt.Sprintf("partial: achieved $%.1f/MWh against a $%.1f/MWh target "+
			"($%.1f/MWh short; TRL floors or locked subsystems bind)",
			achieved.TotalLcoe, targetLcoe, result.Shortfall)
	default:
		result.Message = fmt.Sprintf("no progress toward $%.1f/MWh: $%.1f/MWh short "+
			"(fleet size %g allows no further learning)",
			targetLcoe, result.Shortfall, params.UnitsDeployed)
	}

	if !result.TargetAttainable {
		result.Message = fmt.Sprintf("%s; target is below the theoretical minimum of $%.1f/MWh",
			result.Message, theoreticalMin)
	}

	return result, nil
}

// allocateReduction converts the global reduction ratio into per-subsystem
// cost ratios weighted by idiot index, then realizes each through a
// back-solved learning rate clamped to the TRL floor. The unclamped rate
// decides LrOutOfRange.
func allocateReduction(subsystems []model.Subsystem, eligible []int, globalRatio, unitsDeployed float64) {
	var idiotSum float64
	for _, i := range eligible {
		idiotSum += subsystems[i].BaselineIdiotIndex
	}

	avgReduction := 1 - globalRatio
	count := float64(len(eligible))

	for _, i := range eligible {
		weight := 1 / count
		if idiotSum > 0 {
			weight = subsystems[i].BaselineIdiotIndex / idiotSum
		}

		// Higher-weight subsystems absorb proportionally more than the flat
		// average; the raw ratio can go negative at extreme weights and is
		// clamped to a positive floor.
		ratio := mathutil.Clamp(1-avgReduction*weight*count, constants.MinAllocationRatio, 1)

		requiredRate := learning.RequiredLearningRate(ratio, unitsDeployed)
		clampedRate, outOfRange := learning.ClampToPlausible(requiredRate, subsystems[i].Trl)

		subsystems[i].LearningRate = clampedRate
		subsystems[i].LrOutOfRange = outOfRange
		subsystems[i].AbsoluteCapitalCost = learning.LearnedCost(subsystems[i].BaselineCapitalCost, clampedRate, unitsDeployed)
		subsystems[i].AbsoluteFixedOm = learning.LearnedCost(subsystems[i].BaselineFixedOm, clampedRate, unitsDeployed)
	}
}

// allocateIncrease scales baseline costs up directly, weighted by inverse TRL
// so the least mature accounts absorb most of the required inflation. Weights
// are normalized against capital-cost shares so the aggregate capital scales
// by exactly the global ratio. No learning rate is implied by an increase.
func allocateIncrease(subsystems []model.Subsystem, eligible []int, globalRatio float64) {
	var totalCapex, weightedCapex float64
	for _, i := range eligible {
		weight := float64(10 - subsystems[i].Trl)
		totalCapex += subsystems[i].BaselineCapitalCost
		weightedCapex += subsystems[i].BaselineCapitalCost * weight
	}
	if weightedCapex <= 0 {
		return
	}

	avgIncrease := globalRatio - 1
	for _, i := range eligible {
		weight := float64(10 - subsystems[i].Trl)
		ratio := 1 + avgIncrease*totalCapex*weight/weightedCapex
		subsystems[i].LrOutOfRange = false
		subsystems[i].AbsoluteCapitalCost = subsystems[i].BaselineCapitalCost * ratio
		subsystems[i].AbsoluteFixedOm = subsystems[i].BaselineFixedOm * ratio
	}
}

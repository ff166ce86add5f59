// Package solver implements the inverse calculations: given a target LCOE,
// each solver holds the rest of the parameter set constant, inverts the
// forward costing formula for one axis, and classifies the result against a
// plausibility band. Infeasibility is reported as data, never as an error.
package solver

import (
	"fmt"
	"math"

	"github.com/iwvelando/fusion-backcast/pkg/constants"
	"github.com/iwvelando/fusion-backcast/pkg/lcoe"
	"github.com/iwvelando/fusion-backcast/pkg/model"
)

// Result is the outcome of a single inverse solve. When no finite value can
// reach the target, RequiredValue is 0 and the Explanation says why; results
// always serialize cleanly.
type Result struct {
	Parameter     string             `json:"parameter"`
	RequiredValue float64            `json:"requiredValue"`
	Feasible      bool               `json:"feasible"`
	Explanation   string             `json:"explanation"`
	Constraints   map[string]float64 `json:"constraints,omitempty"`
}

// ForCapex solves for the maximum allowable aggregate capital cost ($M) that
// hits the target LCOE with O&M and capacity factor held fixed.
func ForCapex(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	crf := lcoe.CalculateCRF(params.Wacc, params.Lifetime)
	energyPerKw := lcoe.EnergyPerKw(effectiveCf)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	if crf <= 0 || energyPerKw <= 0 {
		return Result{
			Parameter:   "capex",
			Feasible:    false,
			Explanation: "degenerate financial parameters: zero lifetime or capacity factor",
		}, nil
	}

	maxCapexWithReg := ((targetLcoe-totals.VariableOm)*energyPerKw - totals.FixedOmPerKw) / crf
	maxCapexPerKw := maxCapexWithReg / fuelInfo.RegulatoryModifier
	maxCapexAbs := maxCapexPerKw * params.CapacityMw * constants.KwPerMw / constants.DollarsPerMillion

	feasible := maxCapexAbs > 0 && maxCapexAbs >= totals.CapexAbs*constants.CapexFeasibilityFraction

	var explanation string
	switch {
	case maxCapexAbs <= 0:
		explanation = fmt.Sprintf("impossible: O&M alone exceeds target LCOE of $%.0f/MWh", targetLcoe)
	case maxCapexPerKw < 500:
		explanation = fmt.Sprintf("to hit $%.0f/MWh, total CapEx must be <= $%.0fM ($%.0f/kW) - very aggressive",
			targetLcoe, maxCapexAbs, maxCapexPerKw)
	default:
		explanation = fmt.Sprintf("to hit $%.0f/MWh, total CapEx must be <= $%.0fM ($%.0f/kW)",
			targetLcoe, maxCapexAbs, maxCapexPerKw)
	}

	return Result{
		Parameter:     "capex",
		RequiredValue: maxCapexAbs,
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints: map[string]float64{
			"currentCapexAbs":    totals.CapexAbs,
			"maxCapexPerKw":      maxCapexPerKw,
			"reductionNeededAbs": totals.CapexAbs - maxCapexAbs,
		},
	}, nil
}

// ForCapacityFactor solves for the capacity factor required to hit the target
// LCOE with all costs held fixed.
func ForCapacityFactor(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	crf := lcoe.CalculateCRF(params.Wacc, params.Lifetime)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	denominator := (targetLcoe - totals.VariableOm) * constants.HoursPerYear / constants.KwPerMw
	if denominator <= 0 {
		return Result{
			Parameter: "capacityFactor",
			Feasible:  false,
			Explanation: fmt.Sprintf("impossible: variable O&M ($%.1f/MWh) exceeds target LCOE",
				totals.VariableOm),
		}, nil
	}

	requiredBase := (crf*totals.CapexPerKw*fuelInfo.RegulatoryModifier + totals.FixedOmPerKw) / denominator
	required := requiredBase / fuelInfo.CfModifier

	feasible := required >= constants.CapacityFactorFeasibleMin && required <= constants.CapacityFactorFeasibleMax

	var explanation string
	switch {
	case required > 1.0:
		explanation = fmt.Sprintf("need %.0f%% CF (impossible - max is 100%%)", required*100)
	case required > 0.95:
		explanation = fmt.Sprintf("need %.1f%% CF (very aggressive - best plants achieve ~95%%)", required*100)
	case required < constants.CapacityFactorFeasibleMin:
		explanation = fmt.Sprintf("need only %.0f%% CF (easily achievable)", required*100)
	default:
		explanation = fmt.Sprintf("need %.1f%% CF to hit $%.0f/MWh", required*100, targetLcoe)
	}

	return Result{
		Parameter:     "capacityFactor",
		RequiredValue: required,
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints:   map[string]float64{"currentCapacityFactor": params.CapacityFactor},
	}, nil
}

// ForWacc solves for the discount rate required to hit the target LCOE.
// The CRF is non-linear in WACC so this bisects; LCOE is strictly increasing
// in WACC over the bracket, so the search cannot diverge.
func ForWacc(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	energyPerKw := lcoe.EnergyPerKw(effectiveCf)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	if energyPerKw <= 0 {
		return Result{
			Parameter:   "wacc",
			Feasible:    false,
			Explanation: "degenerate financial parameters: zero capacity factor",
		}, nil
	}

	lcoeAtWacc := func(wacc float64) float64 {
		crf := lcoe.CalculateCRF(wacc, params.Lifetime)
		return (crf*totals.CapexPerKw*fuelInfo.RegulatoryModifier+totals.FixedOmPerKw)/energyPerKw + totals.VariableOm
	}

	lcoeAtMin := lcoeAtWacc(constants.WaccSearchMin)
	lcoeAtMax := lcoeAtWacc(constants.WaccSearchMax)

	if lcoeAtMin > targetLcoe {
		return Result{
			Parameter:     "wacc",
			RequiredValue: 0,
			Feasible:      false,
			Explanation: fmt.Sprintf("even at %.0f%% WACC, LCOE is $%.1f/MWh (above $%.0f/MWh target)",
				constants.WaccSearchMin*100, lcoeAtMin, targetLcoe),
		}, nil
	}

	if lcoeAtMax < targetLcoe {
		return Result{
			Parameter:     "wacc",
			RequiredValue: constants.WaccSearchMax,
			Feasible:      true,
			Explanation: fmt.Sprintf("target achievable even at %.0f%% WACC",
				constants.WaccSearchMax*100),
		}, nil
	}

	low, high := constants.WaccSearchMin, constants.WaccSearchMax
	mid := (low + high) / 2
	for i := 0; i < constants.SolverMaxIterations; i++ {
		mid = (low + high) / 2
		lcoeMid := lcoeAtWacc(mid)
		if math.Abs(lcoeMid-targetLcoe) < constants.SolverTolerance {
			break
		}
		if lcoeMid > targetLcoe {
			high = mid
		} else {
			low = mid
		}
	}

	feasible := mid >= constants.WaccFeasibleMin

	var explanation string
	switch {
	case mid < constants.WaccFeasibleMin:
		explanation = fmt.Sprintf("need %.1f%% WACC (below typical project finance rates)", mid*100)
	case mid < 0.06:
		explanation = fmt.Sprintf("need %.1f%% WACC (requires favorable financing)", mid*100)
	default:
		explanation = fmt.Sprintf("need %.1f%% WACC to hit $%.0f/MWh", mid*100, targetLcoe)
	}

	return Result{
		Parameter:     "wacc",
		RequiredValue: mid,
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints:   map[string]float64{"currentWacc": params.Wacc},
	}, nil
}

// ForFixedOm solves for the maximum allowable aggregate fixed O&M ($M/yr)
// that hits the target LCOE with capital costs held fixed.
func ForFixedOm(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	crf := lcoe.CalculateCRF(params.Wacc, params.Lifetime)
	energyPerKw := lcoe.EnergyPerKw(effectiveCf)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	maxFixedOmPerKw := (targetLcoe-totals.VariableOm)*energyPerKw - crf*totals.CapexPerKw*fuelInfo.RegulatoryModifier
	maxFixedOmAbs := maxFixedOmPerKw * params.CapacityMw * constants.KwPerMw / constants.DollarsPerMillion

	feasible := maxFixedOmAbs > 0 && maxFixedOmAbs >= totals.FixedOmAbs*constants.CapexFeasibilityFraction

	var explanation string
	switch {
	case maxFixedOmAbs <= 0:
		explanation = fmt.Sprintf("impossible: capital costs alone exceed target LCOE of $%.0f/MWh", targetLcoe)
	case maxFixedOmPerKw < 20:
		explanation = fmt.Sprintf("fixed O&M must be < $%.0fM/yr ($%.0f/kW-yr) - very aggressive",
			maxFixedOmAbs, maxFixedOmPerKw)
	default:
		explanation = fmt.Sprintf("fixed O&M must be < $%.0fM/yr ($%.0f/kW-yr) to hit $%.0f/MWh",
			maxFixedOmAbs, maxFixedOmPerKw, targetLcoe)
	}

	return Result{
		Parameter:     "fixedOm",
		RequiredValue: maxFixedOmAbs,
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints: map[string]float64{
			"currentFixedOmAbs": totals.FixedOmAbs,
			"maxFixedOmPerKw":   maxFixedOmPerKw,
		},
	}, nil
}

// ForLifetime solves for the plant lifetime required to hit the target LCOE.
// Bisects over whole years since the CRF is non-linear in the horizon.
func ForLifetime(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	energyPerKw := lcoe.EnergyPerKw(effectiveCf)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	if energyPerKw <= 0 {
		return Result{
			Parameter:   "lifetime",
			Feasible:    false,
			Explanation: "degenerate financial parameters: zero capacity factor",
		}, nil
	}

	lcoeAtLifetime := func(lifetime int) float64 {
		crf := lcoe.CalculateCRF(params.Wacc, lifetime)
		return (crf*totals.CapexPerKw*fuelInfo.RegulatoryModifier+totals.FixedOmPerKw)/energyPerKw + totals.VariableOm
	}

	lcoeAtMax := lcoeAtLifetime(constants.LifetimeSearchMax)
	lcoeAtMin := lcoeAtLifetime(constants.LifetimeSearchMin)

	if lcoeAtMax > targetLcoe {
		return Result{
			Parameter:     "lifetime",
			RequiredValue: constants.LifetimeSearchMax,
			Feasible:      false,
			Explanation: fmt.Sprintf("even at a %d-year lifetime, LCOE is $%.1f/MWh (above $%.0f/MWh target)",
				constants.LifetimeSearchMax, lcoeAtMax, targetLcoe),
		}, nil
	}

	if lcoeAtMin < targetLcoe {
		return Result{
			Parameter:     "lifetime",
			RequiredValue: constants.LifetimeSearchMin,
			Feasible:      true,
			Explanation: fmt.Sprintf("target achievable even with a %d-year lifetime",
				constants.LifetimeSearchMin),
		}, nil
	}

	low, high := constants.LifetimeSearchMin, constants.LifetimeSearchMax
	mid := (low + high) / 2
	for i := 0; i < constants.SolverMaxIterations && low < high; i++ {
		mid = (low + high) / 2
		lcoeMid := lcoeAtLifetime(mid)
		if math.Abs(lcoeMid-targetLcoe) < 0.1 {
			break
		}
		if lcoeMid > targetLcoe {
			low = mid + 1
		} else {
			high = mid
		}
	}

	feasible := mid <= 50

	var explanation string
	switch {
	case mid > 50:
		explanation = fmt.Sprintf("need a %d-year lifetime (beyond typical plant life)", mid)
	case mid > 40:
		explanation = fmt.Sprintf("need a %d-year lifetime (achievable with life extension)", mid)
	default:
		explanation = fmt.Sprintf("need a %d-year lifetime to hit $%.0f/MWh", mid, targetLcoe)
	}

	return Result{
		Parameter:     "lifetime",
		RequiredValue: float64(mid),
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints:   map[string]float64{"currentLifetime": float64(params.Lifetime)},
	}, nil
}

// ForQEng solves for the engineering gain required to hit the target LCOE.
// Costs split into Q-scaling (reactor island) and non-Q-scaling components;
// with R = (headroom - C_noQ) / C_Q the plant-size ratio, Q = R / (R - 1).
func ForQEng(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (Result, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return Result{}, err
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	crf := lcoe.CalculateCRF(params.Wacc, params.Lifetime)
	energyPerKw := lcoe.EnergyPerKw(effectiveCf)
	totals := lcoe.Totals(subsystems, params, fuel, confinement)

	costQ := crf*totals.CapexQPerKw*fuelInfo.RegulatoryModifier + totals.FixedOmQPerKw
	costNoQ := crf*totals.CapexNoQPerKw*fuelInfo.RegulatoryModifier + totals.FixedOmNoQPerKw
	headroom := (targetLcoe - totals.VariableOm) * energyPerKw

	if headroom <= costNoQ {
		return Result{
			Parameter: "qEng",
			Feasible:  false,
			Explanation: fmt.Sprintf("impossible: non-Q-scaling costs alone exceed target $%.0f/MWh",
				targetLcoe),
		}, nil
	}

	if costQ <= 0 {
		return Result{
			Parameter:     "qEng",
			RequiredValue: constants.QEngFeasibleMin,
			Feasible:      true,
			Explanation:   "no Q-scaling costs active - any engineering gain achieves target",
		}, nil
	}

	ratio := (headroom - costNoQ) / costQ // ratio = Q/(Q-1)
	if ratio <= 1 {
		return Result{
			Parameter: "qEng",
			Feasible:  false,
			Explanation: fmt.Sprintf("impossible: Q-scaling costs too high for target $%.0f/MWh",
				targetLcoe),
		}, nil
	}

	requiredQ := ratio / (ratio - 1)
	feasible := requiredQ >= constants.QEngFeasibleMin && requiredQ <= constants.QEngFeasibleMax

	var explanation string
	switch {
	case requiredQ < constants.QEngFeasibleMin:
		explanation = fmt.Sprintf("need Q_eng = %.1f (below physical minimum ~%.1f)",
			requiredQ, constants.QEngFeasibleMin)
	case requiredQ > constants.QEngFeasibleMax:
		explanation = fmt.Sprintf("need Q_eng > %.0f - easily achievable", constants.QEngFeasibleMax)
	case requiredQ > 5:
		explanation = fmt.Sprintf("need Q_eng >= %.1f (%.0f%% recirculated)",
			requiredQ, 100/requiredQ)
	default:
		explanation = fmt.Sprintf("need Q_eng >= %.1f (high recirculating power, %.0f%% recirculated)",
			requiredQ, 100/requiredQ)
	}

	return Result{
		Parameter:     "qEng",
		RequiredValue: requiredQ,
		Feasible:      feasible,
		Explanation:   explanation,
		Constraints: map[string]float64{
			"currentQEng":     params.QEng,
			"plantSizeFactor": lcoe.PlantSizeFactor(requiredQ),
		},
	}, nil
}

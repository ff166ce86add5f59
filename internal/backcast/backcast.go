// Package backcast orchestrates one full recomputation cycle over an input
// snapshot: constraint application, learning-curve projection, forward
// costing, the solver suite, and feasibility analysis. Every call is a pure
// function of its inputs so hosts stay consistent after any change by simply
// recomputing.
package backcast

import (
	"github.com/iwvelando/fusion-backcast/pkg/feasibility"
	"github.com/iwvelando/fusion-backcast/pkg/lcoe"
	"github.com/iwvelando/fusion-backcast/pkg/learning"
	"github.com/iwvelando/fusion-backcast/pkg/model"
	"github.com/iwvelando/fusion-backcast/pkg/solver"
	"go.uber.org/zap"
)

// State is the complete input snapshot for one recomputation.
type State struct {
	Subsystems  []model.Subsystem     `json:"subsystems"`
	Financial   model.FinancialParams `json:"financialParams"`
	Fuel        model.FuelType        `json:"fuelType"`
	Confinement model.ConfinementType `json:"confinementType"`
	TargetLcoe  float64               `json:"targetLcoe"`
}

// DefaultState returns the canonical starting snapshot: the full catalog, a
// D-T tokamak-class plant at default financial assumptions, and a $10/MWh
// (one cent per kWh) target.
func DefaultState() State {
	return State{
		Subsystems:  model.DefaultSubsystems(),
		Financial:   model.DefaultFinancialParams(),
		Fuel:        model.FuelDT,
		Confinement: model.ConfinementMCF,
		TargetLcoe:  10.0,
	}
}

// Result carries everything a host renders after one recomputation.
type Result struct {
	State            State                    `json:"state"`
	Breakdown        model.LCOEBreakdown      `json:"breakdown"`
	Solutions        map[string]solver.Result `json:"solutions"`
	Feasibility      feasibility.Report       `json:"feasibility"`
	TheoreticalMin   float64                  `json:"theoreticalMinLcoe"`
	TargetAttainable bool                     `json:"targetAttainable"`
	TotalCapexAbs    float64                  `json:"totalCapexAbs"`  // $M, active subsystems
	TotalCapexPerKw  float64                  `json:"totalCapexPerKw"`
}

// Recompute runs one full cycle over the snapshot and returns the derived
// state and results. The input State is not mutated.
func Recompute(logger *zap.Logger, state State) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if state.Financial.UnitsDeployed < 1 {
		state.Financial.UnitsDeployed = 1
	}

	subsystems := model.ApplyConstraints(state.Subsystems, state.Fuel, state.Confinement)
	applyLearning(subsystems, state.Financial.UnitsDeployed)
	state.Subsystems = subsystems

	breakdown, err := lcoe.Calculate(subsystems, state.Financial, state.Fuel, state.Confinement)
	if err != nil {
		return Result{}, err
	}

	solutions, err := SolveAll(state.TargetLcoe, subsystems, state.Financial, state.Fuel, state.Confinement)
	if err != nil {
		return Result{}, err
	}

	theoreticalMin, err := solver.TheoreticalMinimumLCOE(subsystems, state.Financial, state.Fuel, state.Confinement)
	if err != nil {
		return Result{}, err
	}

	totals := lcoe.Totals(subsystems, state.Financial, state.Fuel, state.Confinement)

	result := Result{
		State:            state,
		Breakdown:        breakdown,
		Solutions:        solutions,
		Feasibility:      feasibility.Analyze(breakdown.TotalLcoe, state.TargetLcoe, subsystems, state.Financial, state.Fuel),
		TheoreticalMin:   theoreticalMin,
		TargetAttainable: solver.IsTargetAttainable(state.TargetLcoe, theoreticalMin),
		TotalCapexAbs:    totals.CapexAbs,
		TotalCapexPerKw:  totals.CapexPerKw,
	}

	logger.Debug("recomputed plant model",
		zap.String("op", "backcast.Recompute"),
		zap.String("fuel", string(state.Fuel)),
		zap.String("confinement", string(state.Confinement)),
		zap.Float64("totalLcoe", breakdown.TotalLcoe),
		zap.Float64("targetLcoe", state.TargetLcoe),
		zap.Float64("theoreticalMin", theoreticalMin),
	)

	return result, nil
}

// applyLearning projects each unlocked subsystem's absolute costs from its
// baseline via Wright's Law at the configured fleet size and refreshes the
// learning-rate plausibility flag. Locked subsystems keep their authored
// absolute costs.
func applyLearning(subsystems []model.Subsystem, unitsDeployed float64) {
	for i := range subsystems {
		sub := &subsystems[i]
		sub.LrOutOfRange = sub.LearningRate < learning.PlausibleRange(sub.Trl).Min
		if sub.Disabled || sub.Locked() {
			continue
		}
		sub.AbsoluteCapitalCost = learning.LearnedCost(sub.BaselineCapitalCost, sub.LearningRate, unitsDeployed)
		sub.AbsoluteFixedOm = learning.LearnedCost(sub.BaselineFixedOm, sub.LearningRate, unitsDeployed)
	}
}

// SolveAll runs every inverse solver against the same snapshot and returns
// the results keyed by parameter name.
func SolveAll(targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (map[string]solver.Result, error) {
	type solveFunc func(float64, []model.Subsystem, model.FinancialParams, model.FuelType, model.ConfinementType) (solver.Result, error)

	solvers := map[string]solveFunc{
		"capex":          solver.ForCapex,
		"capacityFactor": solver.ForCapacityFactor,
		"wacc":           solver.ForWacc,
		"fixedOm":        solver.ForFixedOm,
		"lifetime":       solver.ForLifetime,
		"qEng":           solver.ForQEng,
	}

	solutions := make(map[string]solver.Result, len(solvers))
	for name, solve := range solvers {
		result, err := solve(targetLcoe, subsystems, params, fuel, confinement)
		if err != nil {
			return nil, err
		}
		solutions[name] = result
	}
	return solutions, nil
}

// ApplyTarget recomputes constraints and learning for the snapshot, then runs
// the allocator against the target.
func ApplyTarget(logger *zap.Logger, state State) (solver.AllocationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if state.Financial.UnitsDeployed < 1 {
		state.Financial.UnitsDeployed = 1
	}

	subsystems := model.ApplyConstraints(state.Subsystems, state.Fuel, state.Confinement)
	applyLearning(subsystems, state.Financial.UnitsDeployed)

	result, err := solver.ApplyTarget(state.TargetLcoe, subsystems, state.Financial, state.Fuel, state.Confinement)
	if err != nil {
		return solver.AllocationResult{}, err
	}

	logger.Info("allocator run complete",
		zap.String("op", "backcast.ApplyTarget"),
		zap.Float64("targetLcoe", state.TargetLcoe),
		zap.Float64("achievedLcoe", result.AchievedLcoe),
		zap.Bool("success", result.Success),
		zap.Bool("partial", result.Partial),
		zap.Bool("targetAttainable", result.TargetAttainable),
	)

	return result, nil
}

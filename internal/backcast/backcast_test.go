package backcast

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/fusion-backcast/pkg/model"
	"go.uber.org/zap"
)

func TestRecomputeDefaults(t *testing.T) {
	result, err := Recompute(zap.NewNop(), DefaultState())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	// The default D-T tokamak sums to $4500M CapEx, $127M/yr fixed O&M, and
	// $0.9/MWh variable O&M, which lands near $78.3/MWh.
	if math.Abs(result.TotalCapexAbs-4500) > 1e-6 {
		t.Errorf("TotalCapexAbs = %v, expected 4500", result.TotalCapexAbs)
	}
	if math.Abs(result.Breakdown.TotalLcoe-78.3) > 0.5 {
		t.Errorf("TotalLcoe = %v, expected ~78.3", result.Breakdown.TotalLcoe)
	}

	// D-T with magnetic confinement excludes direct conversion, the He3
	// supply chain, and the laser driver.
	for _, account := range []string{"22.1.9", "22.6", "22.1.8"} {
		sub := model.FindSubsystem(result.State.Subsystems, account)
		if sub == nil || !sub.Disabled {
			t.Errorf("account %s should be disabled in the default state", account)
		}
	}

	if len(result.Solutions) != 6 {
		t.Errorf("expected 6 solver results, got %d", len(result.Solutions))
	}
	for _, name := range []string{"capex", "capacityFactor", "wacc", "fixedOm", "lifetime", "qEng"} {
		if _, ok := result.Solutions[name]; !ok {
			t.Errorf("missing solver result %q", name)
		}
	}

	// A single deployed unit permits no learning, so the floor coincides
	// with the computed LCOE and the $10/MWh default target sits far below.
	if result.TheoreticalMin > result.Breakdown.TotalLcoe+1e-9 {
		t.Errorf("theoretical minimum %v exceeds the computed LCOE %v",
			result.TheoreticalMin, result.Breakdown.TotalLcoe)
	}
	if result.TargetAttainable {
		t.Error("default $10/MWh target should not be attainable at one unit")
	}
}

func TestRecomputeDeterministic(t *testing.T) {
	first, err := Recompute(nil, DefaultState())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	second, err := Recompute(nil, DefaultState())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if first.Breakdown.TotalLcoe != second.Breakdown.TotalLcoe {
		t.Errorf("total LCOE differs between runs: %v vs %v",
			first.Breakdown.TotalLcoe, second.Breakdown.TotalLcoe)
	}
	if !reflect.DeepEqual(first.Breakdown, second.Breakdown) {
		t.Error("breakdown differs between identical runs")
	}
	if !reflect.DeepEqual(first.Solutions, second.Solutions) {
		t.Error("solver results differ between identical runs")
	}
}

func TestRecomputeFuelSwitch(t *testing.T) {
	state := DefaultState()
	state.Fuel = model.FuelPB11

	result, err := Recompute(zap.NewNop(), state)
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	// p-B11 drops the thermal cycle, tritium handling, He3 supply, and
	// neutron shielding; direct conversion becomes required.
	for _, account := range []string{"23", "22.5", "22.6", "22.1.2"} {
		sub := model.FindSubsystem(result.State.Subsystems, account)
		if sub == nil || !sub.Disabled {
			t.Errorf("account %s should be disabled for p-B11", account)
		}
		if _, present := result.Breakdown.SubsystemCapital[account]; present {
			t.Errorf("disabled account %s contributes to the breakdown", account)
		}
	}

	conversion := model.FindSubsystem(result.State.Subsystems, "22.1.9")
	if conversion == nil || conversion.Disabled || !conversion.Required {
		t.Error("direct energy conversion should be active and required for p-B11")
	}
}

func TestRecomputeAppliesLearning(t *testing.T) {
	state := DefaultState()
	state.Financial.UnitsDeployed = 32

	result, err := Recompute(zap.NewNop(), state)
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	single, err := Recompute(zap.NewNop(), DefaultState())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	if result.TotalCapexAbs >= single.TotalCapexAbs {
		t.Errorf("32-unit fleet capex %v should be below first-unit capex %v",
			result.TotalCapexAbs, single.TotalCapexAbs)
	}
	if result.Breakdown.TotalLcoe >= single.Breakdown.TotalLcoe {
		t.Errorf("32-unit fleet LCOE %v should be below first-unit LCOE %v",
			result.Breakdown.TotalLcoe, single.Breakdown.TotalLcoe)
	}

	// Magnets project from the baseline at their catalog rate over 5 doublings.
	magnets := model.FindSubsystem(result.State.Subsystems, "22.1.3")
	if magnets == nil {
		t.Fatal("magnets missing from result")
	}
	expected := 800 * math.Pow(0.85, 5)
	if math.Abs(magnets.AbsoluteCapitalCost-expected) > 0.01 {
		t.Errorf("magnets learned capex = %v, expected %v", magnets.AbsoluteCapitalCost, expected)
	}
}

func TestRecomputeSkipsLockedSubsystem(t *testing.T) {
	state := DefaultState()
	state.Financial.UnitsDeployed = 32
	for i := range state.Subsystems {
		if state.Subsystems[i].Account == "22.1.3" {
			state.Subsystems[i].LockedCapex = true
			state.Subsystems[i].AbsoluteCapitalCost = 777
		}
	}

	result, err := Recompute(zap.NewNop(), state)
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	magnets := model.FindSubsystem(result.State.Subsystems, "22.1.3")
	if magnets == nil {
		t.Fatal("magnets missing from result")
	}
	if magnets.AbsoluteCapitalCost != 777 {
		t.Errorf("locked magnets capex = %v, expected the authored 777", magnets.AbsoluteCapitalCost)
	}
}

func TestRecomputeNormalizesFleetSize(t *testing.T) {
	state := DefaultState()
	state.Financial.UnitsDeployed = 0

	result, err := Recompute(zap.NewNop(), state)
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}
	if result.State.Financial.UnitsDeployed != 1 {
		t.Errorf("UnitsDeployed = %v, expected normalization to 1", result.State.Financial.UnitsDeployed)
	}
}

func TestApplyTargetIntegration(t *testing.T) {
	state := DefaultState()
	state.TargetLcoe = 45
	state.Financial.UnitsDeployed = 64

	allocation, err := ApplyTarget(zap.NewNop(), state)
	if err != nil {
		t.Fatalf("ApplyTarget returned error: %v", err)
	}

	if !allocation.Success {
		t.Fatalf("expected success at $45/MWh over 64 units, got %q", allocation.Message)
	}
	if allocation.AchievedLcoe > 45.5 {
		t.Errorf("AchievedLcoe = %v, expected at most 45.5", allocation.AchievedLcoe)
	}
	if allocation.BaselineLcoe <= allocation.AchievedLcoe {
		t.Errorf("baseline %v should exceed achieved %v",
			allocation.BaselineLcoe, allocation.AchievedLcoe)
	}
}

func TestRecomputeUnknownFuel(t *testing.T) {
	state := DefaultState()
	state.Fuel = model.FuelType("antimatter")

	if _, err := Recompute(zap.NewNop(), state); err == nil {
		t.Error("expected error for unknown fuel type")
	}
}

func TestRecomputeResultSerializes(t *testing.T) {
	// The default $10/MWh target makes the qEng and capacityFactor solves
	// unreachable; even then every solver result must carry finite values so
	// the whole result encodes to JSON.
	result, err := Recompute(zap.NewNop(), DefaultState())
	if err != nil {
		t.Fatalf("Recompute returned error: %v", err)
	}

	qEng := result.Solutions["qEng"]
	if qEng.Feasible {
		t.Error("qEng should be unreachable at the default target")
	}
	if math.IsInf(qEng.RequiredValue, 0) || math.IsNaN(qEng.RequiredValue) {
		t.Errorf("qEng RequiredValue = %v, expected a finite value", qEng.RequiredValue)
	}
	if !strings.Contains(qEng.Explanation, "impossible") {
		t.Errorf("qEng explanation %q should state why no gain works", qEng.Explanation)
	}

	if _, err := json.Marshal(result); err != nil {
		t.Errorf("result failed to encode: %v", err)
	}
}

// Package lcoe implements the forward costing engine: capital recovery factor
// annuitization, engineering-gain plant-size scaling, and the conversion of
// per-account costs into an annualized $/MWh breakdown.
package lcoe

import (
	"math"

	"github.com/iwvelando/fusion-backcast/pkg/constants"
	"github.com/iwvelando/fusion-backcast/pkg/model"
)

// CalculateCRF computes the capital recovery factor for a discount rate and
// horizon: r(1+r)^n / ((1+r)^n - 1). A non-positive rate degenerates to the
// 1/n limit; a non-positive lifetime yields 0.
func CalculateCRF(wacc float64, lifetime int) float64 {
	if lifetime <= 0 {
		return 0
	}
	if wacc <= 0 {
		return 1 / float64(lifetime)
	}
	power := math.Pow(1+wacc, float64(lifetime))
	return wacc * power / (power - 1)
}

// PlantSizeFactor is the gross-over-net inflation Q/(Q-1) a plant with
// engineering gain Q must carry to cover recirculating power. Gains at or
// below one cannot sustain net output and return +Inf.
func PlantSizeFactor(qEng float64) float64 {
	if qEng <= 1 {
		return math.Inf(1)
	}
	return qEng / (qEng - 1)
}

// scalingFactor returns the plant-size factor applied to one subsystem:
// reactor-island accounts scale with gross thermal power when engineering-gain
// scaling is modeled (QEng > 1), balance-of-plant accounts never do.
func scalingFactor(sub model.Subsystem, params model.FinancialParams) float64 {
	if !sub.ReactorIsland || params.QEng <= 1 {
		return 1
	}
	return PlantSizeFactor(params.QEng)
}

// EnergyPerKw converts an effective capacity factor into annual energy per
// unit nameplate capacity, in MWh per kW-year.
func EnergyPerKw(effectiveCapacityFactor float64) float64 {
	return effectiveCapacityFactor * constants.HoursPerYear / constants.KwPerMw
}

// Calculate computes the LCOE breakdown from the full parameter set. Disabled
// subsystems contribute nothing and are omitted from the per-account maps. The
// fuel's regulatory modifier is applied to capital per account as well as to
// the aggregate so that summing the breakdown reproduces the totals exactly.
func Calculate(subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) (model.LCOEBreakdown, error) {
	fuelInfo, err := model.GetFuelInfo(fuel)
	if err != nil {
		return model.LCOEBreakdown{}, err
	}

	breakdown := model.LCOEBreakdown{
		SubsystemCapital: make(map[string]float64),
		SubsystemOm:      make(map[string]float64),
	}

	effectiveCf := params.CapacityFactor * fuelInfo.CfModifier
	energyPerKw := EnergyPerKw(effectiveCf)
	if energyPerKw <= 0 {
		return breakdown, nil
	}

	crf := CalculateCRF(params.Wacc, params.Lifetime)

	var totalCapexPerKw, totalFixedOmPerKw, totalVariableOm float64

	for _, sub := range subsystems {
		if sub.Disabled {
			continue
		}

		mult := model.EffectiveMultiplier(sub.Account, confinement, fuel) * scalingFactor(sub, params)
		capitalPerKw := sub.CapitalCostPerKw(params.CapacityMw) * mult
		fixedOmPerKw := sub.FixedOmPerKw(params.CapacityMw) * mult
		variableOm := sub.VariableOm * model.EffectiveMultiplier(sub.Account, confinement, fuel)

		totalCapexPerKw += capitalPerKw
		totalFixedOmPerKw += fixedOmPerKw
		totalVariableOm += variableOm

		breakdown.SubsystemCapital[sub.Account] = crf * capitalPerKw * fuelInfo.RegulatoryModifier / energyPerKw
		breakdown.SubsystemOm[sub.Account] = fixedOmPerKw/energyPerKw + variableOm
	}

	totalCapexPerKw *= fuelInfo.RegulatoryModifier

	breakdown.CapitalContribution = crf * totalCapexPerKw / energyPerKw
	breakdown.FixedOmContribution = totalFixedOmPerKw / energyPerKw
	breakdown.VariableOmContribution = totalVariableOm
	breakdown.FuelContribution = 0 // fusion fuel cost is negligible
	breakdown.TotalLcoe = breakdown.CapitalContribution +
		breakdown.FixedOmContribution +
		breakdown.VariableOmContribution +
		breakdown.FuelContribution

	return breakdown, nil
}

// CostTotals aggregates the multiplier- and Q-scaled costs of the non-disabled
// subsystems, both per kW and in absolute terms. The Q-split fields carry the
// reactor-island versus balance-of-plant partition at unit plant-size factor,
// which is what the engineering-gain solver inverts.
type CostTotals struct {
	CapexPerKw   float64 // $/kW, before regulatory modifier
	FixedOmPerKw float64 // $/kW-yr
	VariableOm   float64 // $/MWh
	CapexAbs     float64 // $M
	FixedOmAbs   float64 // $M/yr

	CapexQPerKw     float64
	CapexNoQPerKw   float64
	FixedOmQPerKw   float64
	FixedOmNoQPerKw float64
}

// Totals computes CostTotals for the active subsystem set.
func Totals(subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType, confinement model.ConfinementType) CostTotals {
	var totals CostTotals
	for _, sub := range subsystems {
		if sub.Disabled {
			continue
		}

		mult := model.EffectiveMultiplier(sub.Account, confinement, fuel)
		scaled := mult * scalingFactor(sub, params)

		capitalPerKw := sub.CapitalCostPerKw(params.CapacityMw)
		fixedOmPerKw := sub.FixedOmPerKw(params.CapacityMw)

		totals.CapexPerKw += capitalPerKw * scaled
		totals.FixedOmPerKw += fixedOmPerKw * scaled
		totals.VariableOm += sub.VariableOm * mult
		totals.CapexAbs += sub.AbsoluteCapitalCost * scaled
		totals.FixedOmAbs += sub.AbsoluteFixedOm * scaled

		if sub.ReactorIsland {
			totals.CapexQPerKw += capitalPerKw * mult
			totals.FixedOmQPerKw += fixedOmPerKw * mult
		} else {
			totals.CapexNoQPerKw += capitalPerKw * mult
			totals.FixedOmNoQPerKw += fixedOmPerKw * mult
		}
	}
	return totals
}

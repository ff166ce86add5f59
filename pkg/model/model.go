// Package model defines the data structures for the fusion plant cost model:
// cost-account subsystems, plant-level financial parameters, fuel and
// confinement configurations, and the computed LCOE breakdown.
package model

import (
	"github.com/iwvelando/fusion-backcast/pkg/constants"
)

// Subsystem is one chart-of-accounts line item of the plant cost model.
// Baseline fields describe the first-of-a-kind unit; absolute fields are the
// learned costs at the configured fleet size and are recomputed, never
// authored, once UnitsDeployed exceeds one.
type Subsystem struct {
	Account     string `json:"account" yaml:"account"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	BaselineCapitalCost float64 `json:"baselineCapitalCost" yaml:"baselineCapitalCost"` // $M
	BaselineFixedOm     float64 `json:"baselineFixedOm" yaml:"baselineFixedOm"`         // $M/yr
	BaselineIdiotIndex  float64 `json:"baselineIdiotIndex" yaml:"baselineIdiotIndex"`

	AbsoluteCapitalCost float64 `json:"absoluteCapitalCost" yaml:"absoluteCapitalCost"` // $M
	AbsoluteFixedOm     float64 `json:"absoluteFixedOm" yaml:"absoluteFixedOm"`         // $M/yr
	VariableOm          float64 `json:"variableOm" yaml:"variableOm"`                   // $/MWh, exempt from learning

	LearningRate float64 `json:"learningRate" yaml:"learningRate"` // fraction of cost retained per doubling
	Trl          int     `json:"trl" yaml:"trl"`                   // Technology Readiness Level, 1-9

	// ReactorIsland marks accounts that scale with gross thermal power and
	// therefore pick up the engineering-gain plant-size factor.
	ReactorIsland bool `json:"reactorIsland" yaml:"reactorIsland"`

	LockedCapex bool `json:"lockedCapex" yaml:"lockedCapex"`
	LockedOm    bool `json:"lockedOm" yaml:"lockedOm"`

	// Derived status flags, recomputed on every cycle.
	Required     bool `json:"required" yaml:"required"`
	Disabled     bool `json:"disabled" yaml:"disabled"`
	LrOutOfRange bool `json:"lrOutOfRange" yaml:"lrOutOfRange"`
}

// CapitalCostPerKw converts the absolute capital cost to $/kW of nameplate
// capacity. Non-positive capacity yields 0.
func (s Subsystem) CapitalCostPerKw(capacityMw float64) float64 {
	if capacityMw <= 0 {
		return 0
	}
	return s.AbsoluteCapitalCost * constants.DollarsPerMillion / (capacityMw * constants.KwPerMw)
}

// FixedOmPerKw converts the absolute fixed O&M to $/kW-yr of nameplate
// capacity. Non-positive capacity yields 0.
func (s Subsystem) FixedOmPerKw(capacityMw float64) float64 {
	if capacityMw <= 0 {
		return 0
	}
	return s.AbsoluteFixedOm * constants.DollarsPerMillion / (capacityMw * constants.KwPerMw)
}

// Locked reports whether either cost axis of the subsystem is pinned by the
// host; locked subsystems are excluded from the allocator's adjustable set.
func (s Subsystem) Locked() bool {
	return s.LockedCapex || s.LockedOm
}

// FinancialParams holds the plant-level economic assumptions.
type FinancialParams struct {
	Wacc             float64 `json:"wacc" yaml:"wacc"`                         // weighted average cost of capital, fraction
	Lifetime         int     `json:"lifetime" yaml:"lifetime"`                 // economic lifetime, years
	CapacityFactor   float64 `json:"capacityFactor" yaml:"capacityFactor"`     // fraction of nameplate-hours generating
	CapacityMw       float64 `json:"capacityMw" yaml:"capacityMw"`             // net electrical nameplate
	ConstructionTime int     `json:"constructionTime" yaml:"constructionTime"` // years, informational
	UnitsDeployed    float64 `json:"unitsDeployed" yaml:"unitsDeployed"`       // cumulative fleet count, >= 1

	// QEng is the engineering gain P_gross / P_recirc. Values <= 1 leave the
	// plant-size scaling unmodeled (factor 1 on every account).
	QEng float64 `json:"qEng" yaml:"qEng"`
}

// DefaultFinancialParams returns the canonical starting assumptions: 8% WACC,
// 40-year lifetime, 90% capacity factor, 1000 MW net, single first unit.
func DefaultFinancialParams() FinancialParams {
	return FinancialParams{
		Wacc:             0.08,
		Lifetime:         40,
		CapacityFactor:   0.90,
		CapacityMw:       1000,
		ConstructionTime: 5,
		UnitsDeployed:    1,
		QEng:             0,
	}
}

// LCOEBreakdown is the computed result of the forward costing engine. All
// contributions are in $/MWh. The per-account maps decompose the aggregate
// totals; their sum reproduces the aggregates within rounding tolerance.
type LCOEBreakdown struct {
	CapitalContribution    float64 `json:"capitalContribution"`
	FixedOmContribution    float64 `json:"fixedOmContribution"`
	VariableOmContribution float64 `json:"variableOmContribution"`
	FuelContribution       float64 `json:"fuelContribution"`
	TotalLcoe              float64 `json:"totalLcoe"`

	SubsystemCapital map[string]float64 `json:"subsystemCapital"`
	SubsystemOm      map[string]float64 `json:"subsystemOm"`
}

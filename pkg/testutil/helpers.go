// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/fusion-backcast/pkg/model"
)

// SampleSubsystems returns a compact three-account plant used across solver
// and LCOE tests. Costs are round numbers so expected values stay easy to
// derive by hand.
func SampleSubsystems() []model.Subsystem {
	return []model.Subsystem{
		{
			Account:             "22.1.3",
			Name:                "Magnets",
			BaselineCapitalCost: 1000,
			BaselineFixedOm:     20,
			BaselineIdiotIndex:  10,
			AbsoluteCapitalCost: 1000,
			AbsoluteFixedOm:     20,
			LearningRate:        0.85,
			Trl:                 6,
			ReactorIsland:       true,
		},
		{
			Account:             "23",
			Name:                "Turbine plant",
			BaselineCapitalCost: 500,
			BaselineFixedOm:     10,
			BaselineIdiotIndex:  2,
			AbsoluteCapitalCost: 500,
			AbsoluteFixedOm:     10,
			VariableOm:          0.5,
			LearningRate:        0.95,
			Trl:                 9,
			ReactorIsland:       true,
		},
		{
			Account:             "21",
			Name:                "Structures",
			BaselineCapitalCost: 300,
			BaselineFixedOm:     5,
			BaselineIdiotIndex:  1.5,
			AbsoluteCapitalCost: 300,
			AbsoluteFixedOm:     5,
			LearningRate:        0.95,
			Trl:                 9,
		},
	}
}

// SampleFinancialParams returns plant economics matched to SampleSubsystems.
func SampleFinancialParams() model.FinancialParams {
	return model.FinancialParams{
		Wacc:             0.08,
		Lifetime:         40,
		CapacityFactor:   0.90,
		CapacityMw:       1000,
		ConstructionTime: 5,
		UnitsDeployed:    1,
	}
}

// FindAccount finds a subsystem by account code in the slice.
// Returns a pointer into the slice if found, nil otherwise.
func FindAccount(subsystems []model.Subsystem, account string) *model.Subsystem {
	for i := range subsystems {
		if subsystems[i].Account == account {
			return &subsystems[i]
		}
	}
	return nil
}

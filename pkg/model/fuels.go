package model

import "fmt"

// FuelType is the closed enumeration of supported fusion fuel cycles.
type FuelType string

const (
	FuelDT   FuelType = "D-T"
	FuelDHe3 FuelType = "D-He3"
	FuelPB11 FuelType = "p-B11"
)

// ConfinementType is the closed enumeration of confinement/driver geometries.
type ConfinementType string

const (
	ConfinementMCF ConfinementType = "MCF"
	ConfinementICF ConfinementType = "ICF"
)

// FuelInfo carries the plant-level modifiers and forced accounts for a fuel cycle.
type FuelInfo struct {
	CfModifier         float64  `json:"cfModifier"`
	RegulatoryModifier float64  `json:"regulatoryModifier"`
	RequiredAccounts   []string `json:"requiredAccounts"`
	Description        string   `json:"description"`
}

// ConfinementInfo carries the forced accounts for a confinement geometry.
type ConfinementInfo struct {
	RequiredAccounts []string `json:"requiredAccounts"`
	Description      string   `json:"description"`
}

var fuelInfo = map[FuelType]FuelInfo{
	FuelDT: {
		CfModifier:         0.95,
		RegulatoryModifier: 1.20,
		RequiredAccounts:   []string{"22.5", "23"},
		Description: "D-T fusion requires tritium breeding and thermal conversion. " +
			"High neutron flux causes material damage (-5% CF) and carries " +
			"additional regulatory burden (+20% capital).",
	},
	FuelDHe3: {
		CfModifier:         0.98,
		RegulatoryModifier: 1.10,
		RequiredAccounts:   []string{"22.6", "23"},
		Description: "D-He3 fusion produces fewer neutrons, reducing material damage " +
			"and regulatory burden, but needs He3 procurement and hotter plasmas.",
	},
	FuelPB11: {
		CfModifier:         1.0,
		RegulatoryModifier: 1.0,
		RequiredAccounts:   []string{"22.1.9"},
		Description: "p-B11 is aneutronic, enabling direct energy conversion with no " +
			"tritium handling, He3 supply, thermal cycle, or neutron shielding.",
	},
}

var confinementInfo = map[ConfinementType]ConfinementInfo{
	ConfinementMCF: {
		RequiredAccounts: []string{"22.1.3"},
		Description: "Magnetic confinement (tokamak, stellarator, mirror) holds the " +
			"plasma with superconducting magnets.",
	},
	ConfinementICF: {
		RequiredAccounts: []string{"22.1.8"},
		Description: "Inertial confinement compresses fuel targets with a laser or " +
			"pulsed-power driver.",
	},
}

// fuelMultipliers rescales an account's contribution per fuel cycle. A missing
// entry is neutral (1.0); an explicit 0 means the account does not exist for
// that fuel and is disabled.
var fuelMultipliers = map[FuelType]map[string]float64{
	FuelDT: {
		"22.1.9": 0, // no direct energy conversion in a thermal D-T cycle
		"22.6":   0, // no He3 supply chain
	},
	FuelDHe3: {
		"22.5":   0,    // no tritium handling
		"22.1.4": 1.25, // higher heating power for He3 ignition
	},
	FuelPB11: {
		"22.5":   0,   // no tritium handling
		"22.6":   0,   // no He3 supply chain
		"23":     0,   // no thermal turbine cycle
		"22.1.2": 0,   // no neutron shielding
		"22.1.4": 1.4, // p-B11 ignition temperatures
	},
}

// confinementMultipliers rescales an account's contribution per confinement
// geometry, composing multiplicatively with the fuel table.
var confinementMultipliers = map[ConfinementType]map[string]float64{
	ConfinementMCF: {
		"22.1.8": 0, // no driver
	},
	ConfinementICF: {
		"22.1.3": 0,    // no confinement magnets
		"22.1.4": 1.15, // ignition-assist beamlines
		"22.1.7": 1.2,  // pulsed-power supplies
	},
}

// GetFuelInfo returns the info record for a fuel type.
func GetFuelInfo(fuel FuelType) (FuelInfo, error) {
	info, ok := fuelInfo[fuel]
	if !ok {
		return FuelInfo{}, fmt.Errorf("unknown fuel type %q", fuel)
	}
	return info, nil
}

// GetConfinementInfo returns the info record for a confinement type.
func GetConfinementInfo(confinement ConfinementType) (ConfinementInfo, error) {
	info, ok := confinementInfo[confinement]
	if !ok {
		return ConfinementInfo{}, fmt.Errorf("unknown confinement type %q", confinement)
	}
	return info, nil
}

// FuelTypes returns the supported fuel types in display order.
func FuelTypes() []FuelType {
	return []FuelType{FuelDT, FuelDHe3, FuelPB11}
}

// ConfinementTypes returns the supported confinement types in display order.
func ConfinementTypes() []ConfinementType {
	return []ConfinementType{ConfinementMCF, ConfinementICF}
}

// EffectiveMultiplier resolves the fuel and confinement tables independently
// and returns their product. Missing entries default to 1.0. A zero result
// means the account is inapplicable to the configuration and must be excluded
// from every aggregate.
func EffectiveMultiplier(account string, confinement ConfinementType, fuel FuelType) float64 {
	fuelMult := 1.0
	if table, ok := fuelMultipliers[fuel]; ok {
		if m, ok := table[account]; ok {
			fuelMult = m
		}
	}
	confMult := 1.0
	if table, ok := confinementMultipliers[confinement]; ok {
		if m, ok := table[account]; ok {
			confMult = m
		}
	}
	return fuelMult * confMult
}

// ApplyConstraints recomputes the derived Required and Disabled flags for the
// given fuel/confinement combination and returns a new slice; inputs are not
// mutated. This is the single place the "disabled" definition lives.
func ApplyConstraints(subsystems []Subsystem, fuel FuelType, confinement ConfinementType) []Subsystem {
	required := make(map[string]bool)
	if info, ok := fuelInfo[fuel]; ok {
		for _, account := range info.RequiredAccounts {
			required[account] = true
		}
	}
	if info, ok := confinementInfo[confinement]; ok {
		for _, account := range info.RequiredAccounts {
			required[account] = true
		}
	}

	result := make([]Subsystem, len(subsystems))
	for i, sub := range subsystems {
		mult := EffectiveMultiplier(sub.Account, confinement, fuel)
		sub.Disabled = mult == 0
		sub.Required = !sub.Disabled && (required[sub.Account] || mult > 1)
		result[i] = sub
	}
	return result
}

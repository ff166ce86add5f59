package model

import (
	"math"
	"testing"
)

func TestGetFuelInfo(t *testing.T) {
	tests := []struct {
		name        string
		fuel        FuelType
		expectError bool
		cfModifier  float64
	}{
		{"D-T", FuelDT, false, 0.95},
		{"D-He3", FuelDHe3, false, 0.98},
		{"p-B11", FuelPB11, false, 1.0},
		{"Unknown fuel", FuelType("muon-catalyzed"), true, 0},
		{"Empty fuel", FuelType(""), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := GetFuelInfo(tt.fuel)
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for fuel %q", tt.fuel)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.CfModifier != tt.cfModifier {
				t.Errorf("CfModifier = %v, expected %v", info.CfModifier, tt.cfModifier)
			}
		})
	}
}

func TestGetConfinementInfo(t *testing.T) {
	for _, confinement := range ConfinementTypes() {
		if _, err := GetConfinementInfo(confinement); err != nil {
			t.Errorf("GetConfinementInfo(%q) returned error: %v", confinement, err)
		}
	}
	if _, err := GetConfinementInfo(ConfinementType("gravitational")); err == nil {
		t.Error("expected error for unknown confinement type")
	}
}

func TestEffectiveMultiplier(t *testing.T) {
	tests := []struct {
		name        string
		account     string
		confinement ConfinementType
		fuel        FuelType
		expected    float64
	}{
		{"Unlisted account is neutral", "21", ConfinementMCF, FuelDT, 1.0},
		{"D-T disables direct conversion", "22.1.9", ConfinementMCF, FuelDT, 0},
		{"D-T disables He3 supply", "22.6", ConfinementMCF, FuelDT, 0},
		{"MCF disables laser driver", "22.1.8", ConfinementMCF, FuelDT, 0},
		{"ICF disables magnets", "22.1.3", ConfinementICF, FuelDT, 0},
		{"D-He3 drops tritium handling", "22.5", ConfinementMCF, FuelDHe3, 0},
		{"D-He3 scales heating up", "22.1.4", ConfinementMCF, FuelDHe3, 1.25},
		{"p-B11 drops turbine", "23", ConfinementMCF, FuelPB11, 0},
		{"p-B11 drops shielding", "22.1.2", ConfinementMCF, FuelPB11, 0},
		{"Fuel and confinement compose", "22.1.4", ConfinementICF, FuelPB11, 1.4 * 1.15},
		{"ICF scales power supplies", "22.1.7", ConfinementICF, FuelDT, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EffectiveMultiplier(tt.account, tt.confinement, tt.fuel)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("EffectiveMultiplier(%q, %q, %q) = %v, expected %v",
					tt.account, tt.confinement, tt.fuel, result, tt.expected)
			}
		})
	}
}

func TestApplyConstraints(t *testing.T) {
	tests := []struct {
		name             string
		fuel             FuelType
		confinement      ConfinementType
		expectDisabled   []string
		expectEnabled    []string
		expectRequired   []string
		expectUnrequired []string
	}{
		{
			name:             "D-T tokamak",
			fuel:             FuelDT,
			confinement:      ConfinementMCF,
			expectDisabled:   []string{"22.1.9", "22.6", "22.1.8"},
			expectEnabled:    []string{"22.5", "23", "22.1.3", "22.1.2"},
			expectRequired:   []string{"22.5", "23", "22.1.3"},
			expectUnrequired: []string{"21", "22.1.2"},
		},
		{
			name:             "D-He3 tokamak",
			fuel:             FuelDHe3,
			confinement:      ConfinementMCF,
			expectDisabled:   []string{"22.5", "22.1.8"},
			expectEnabled:    []string{"22.6", "23", "22.1.4"},
			expectRequired:   []string{"22.6", "23", "22.1.3", "22.1.4"},
			expectUnrequired: []string{"21"},
		},
		{
			name:             "p-B11 laser",
			fuel:             FuelPB11,
			confinement:      ConfinementICF,
			expectDisabled:   []string{"22.5", "22.6", "23", "22.1.2", "22.1.3"},
			expectEnabled:    []string{"22.1.9", "22.1.8", "21"},
			expectRequired:   []string{"22.1.9", "22.1.8", "22.1.4", "22.1.7"},
			expectUnrequired: []string{"21", "25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subsystems := ApplyConstraints(DefaultSubsystems(), tt.fuel, tt.confinement)

			for _, account := range tt.expectDisabled {
				sub := FindSubsystem(subsystems, account)
				if sub == nil {
					t.Fatalf("account %s missing from catalog", account)
				}
				if !sub.Disabled {
					t.Errorf("account %s should be disabled for %s/%s", account, tt.fuel, tt.confinement)
				}
				if sub.Required {
					t.Errorf("disabled account %s must not be required", account)
				}
			}
			for _, account := range tt.expectEnabled {
				if sub := FindSubsystem(subsystems, account); sub == nil || sub.Disabled {
					t.Errorf("account %s should be enabled for %s/%s", account, tt.fuel, tt.confinement)
				}
			}
			for _, account := range tt.expectRequired {
				if sub := FindSubsystem(subsystems, account); sub == nil || !sub.Required {
					t.Errorf("account %s should be required for %s/%s", account, tt.fuel, tt.confinement)
				}
			}
			for _, account := range tt.expectUnrequired {
				if sub := FindSubsystem(subsystems, account); sub != nil && sub.Required {
					t.Errorf("account %s should not be required for %s/%s", account, tt.fuel, tt.confinement)
				}
			}
		})
	}
}

func TestApplyConstraintsDoesNotMutateInput(t *testing.T) {
	original := DefaultSubsystems()
	_ = ApplyConstraints(original, FuelPB11, ConfinementICF)
	for _, sub := range original {
		if sub.Disabled || sub.Required {
			t.Fatalf("input slice was mutated: account %s has derived flags set", sub.Account)
		}
	}
}

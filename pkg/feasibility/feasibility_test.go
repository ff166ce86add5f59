package feasibility

import (
	"strings"
	"testing"

	"github.com/iwvelando/fusion-backcast/pkg/model"
)

func TestCheckTrl(t *testing.T) {
	tests := []struct {
		name           string
		subsystems     []model.Subsystem
		expectedStatus string
	}{
		{
			name: "All mature",
			subsystems: []model.Subsystem{
				{Name: "Magnets", Trl: 6},
				{Name: "Turbine", Trl: 9},
			},
			expectedStatus: StatusPass,
		},
		{
			name: "One low TRL",
			subsystems: []model.Subsystem{
				{Name: "Blanket", Trl: 4},
				{Name: "Turbine", Trl: 9},
			},
			expectedStatus: StatusWarning,
		},
		{
			name: "Many low TRL",
			subsystems: []model.Subsystem{
				{Name: "Blanket", Trl: 4},
				{Name: "Direct conversion", Trl: 3},
				{Name: "He3 supply", Trl: 2},
			},
			expectedStatus: StatusFail,
		},
		{
			name: "Disabled low TRL ignored",
			subsystems: []model.Subsystem{
				{Name: "He3 supply", Trl: 2, Disabled: true},
				{Name: "Turbine", Trl: 9},
			},
			expectedStatus: StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CheckTrl(tt.subsystems)
			if check.Status != tt.expectedStatus {
				t.Errorf("status = %q, expected %q (%s)", check.Status, tt.expectedStatus, check.Message)
			}
		})
	}
}

func TestCheckCostRealism(t *testing.T) {
	tests := []struct {
		name           string
		subsystems     []model.Subsystem
		expectedStatus string
	}{
		{
			name: "Consistent assumptions",
			subsystems: []model.Subsystem{
				{Name: "Magnets", Trl: 6, BaselineIdiotIndex: 12},
				{Name: "Turbine", Trl: 9, BaselineIdiotIndex: 2},
			},
			expectedStatus: StatusPass,
		},
		{
			name: "One optimistic account",
			subsystems: []model.Subsystem{
				{Name: "Laser driver", Trl: 5, BaselineIdiotIndex: 15},
			},
			expectedStatus: StatusWarning,
		},
		{
			name: "Several optimistic accounts",
			subsystems: []model.Subsystem{
				{Name: "Laser driver", Trl: 5, BaselineIdiotIndex: 15},
				{Name: "Direct conversion", Trl: 3, BaselineIdiotIndex: 18},
				{Name: "He3 supply", Trl: 2, BaselineIdiotIndex: 20},
			},
			expectedStatus: StatusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CheckCostRealism(tt.subsystems)
			if check.Status != tt.expectedStatus {
				t.Errorf("status = %q, expected %q (%s)", check.Status, tt.expectedStatus, check.Message)
			}
		})
	}
}

func TestCheckCapacityFactor(t *testing.T) {
	tests := []struct {
		name           string
		capacityFactor float64
		fuel           model.FuelType
		expectedStatus string
	}{
		{"Typical D-T plant", 0.90, model.FuelDT, StatusPass},
		{"Aggressive for D-T neutron damage", 0.94, model.FuelDT, StatusWarning},
		{"Same CF fine for aneutronic fuel", 0.94, model.FuelPB11, StatusPass},
		{"Aggressive even aneutronic", 0.97, model.FuelPB11, StatusWarning},
		{"Beyond any plant", 0.99, model.FuelDT, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CheckCapacityFactor(tt.capacityFactor, tt.fuel)
			if check.Status != tt.expectedStatus {
				t.Errorf("status = %q, expected %q (%s)", check.Status, tt.expectedStatus, check.Message)
			}
		})
	}
}

func TestCheckWacc(t *testing.T) {
	tests := []struct {
		name           string
		wacc           float64
		expectedStatus string
	}{
		{"Market rate", 0.08, StatusPass},
		{"Threshold of achievable", 0.06, StatusPass},
		{"Concessional financing", 0.05, StatusWarning},
		{"Below sovereign rates", 0.02, StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := CheckWacc(tt.wacc)
			if check.Status != tt.expectedStatus {
				t.Errorf("status = %q, expected %q (%s)", check.Status, tt.expectedStatus, check.Message)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	subsystems := []model.Subsystem{
		{Name: "Magnets", Trl: 6, BaselineIdiotIndex: 12},
		{Name: "Turbine", Trl: 9, BaselineIdiotIndex: 2},
	}
	params := model.FinancialParams{Wacc: 0.08, CapacityFactor: 0.90}

	tests := []struct {
		name            string
		calculated      float64
		target          float64
		expectedOverall string
		messageContains string
	}{
		{"Target achieved", 9.5, 10, StatusPass, "target achieved"},
		{"Close to target", 13, 10, StatusWarning, "close"},
		{"Large gap", 30, 10, StatusFail, "gap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Analyze(tt.calculated, tt.target, subsystems, params, model.FuelDT)
			if report.OverallStatus != tt.expectedOverall {
				t.Errorf("overall status = %q, expected %q", report.OverallStatus, tt.expectedOverall)
			}
			if !strings.Contains(report.LcoeMessage, tt.messageContains) {
				t.Errorf("message %q should contain %q", report.LcoeMessage, tt.messageContains)
			}
			if len(report.Checks) != 4 {
				t.Errorf("expected 4 checks, got %d", len(report.Checks))
			}
		})
	}
}

func TestAnalyzeWorstCheckWins(t *testing.T) {
	subsystems := []model.Subsystem{
		{Name: "He3 supply", Trl: 2, BaselineIdiotIndex: 20},
		{Name: "Direct conversion", Trl: 3, BaselineIdiotIndex: 18},
		{Name: "Blanket", Trl: 4, BaselineIdiotIndex: 8.5},
	}
	params := model.FinancialParams{Wacc: 0.08, CapacityFactor: 0.90}

	report := Analyze(9, 10, subsystems, params, model.FuelDT)
	if report.OverallStatus != StatusFail {
		t.Errorf("overall status = %q, expected fail from the TRL check", report.OverallStatus)
	}
}

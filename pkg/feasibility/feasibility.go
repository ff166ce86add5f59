// Package feasibility provides soft plausibility checks on a plant concept:
// ratio of computed to target LCOE, technology readiness, cost realism, and
// financing assumptions. Results are data for the host to render; thresholds
// here are defaults, not contracts.
package feasibility

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fusion-backcast/pkg/model"
)

// Check statuses, ordered from best to worst.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
)

// Check is the result of a single plausibility check.
type Check struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
}

// Report aggregates all checks plus the LCOE gap summary.
type Report struct {
	OverallStatus string  `json:"overallStatus"` // pass, warning, fail
	LcoeRatio     float64 `json:"lcoeRatio"`     // computed / target
	LcoeGap       float64 `json:"lcoeGap"`       // computed - target, $/MWh
	LcoeMessage   string  `json:"lcoeMessage"`
	Checks        []Check `json:"checks"`
}

// CheckTrl flags active subsystems still below TRL 5.
func CheckTrl(subsystems []model.Subsystem) Check {
	var lowTrl []string
	for _, sub := range subsystems {
		if !sub.Disabled && sub.Trl < 5 {
			lowTrl = append(lowTrl, sub.Name)
		}
	}

	switch {
	case len(lowTrl) == 0:
		return Check{
			Category: "Technology Readiness",
			Status:   StatusPass,
			Message:  "all active subsystems at TRL 5+",
		}
	case len(lowTrl) <= 2:
		return Check{
			Category: "Technology Readiness",
			Status:   StatusWarning,
			Message:  fmt.Sprintf("%d subsystem(s) at low TRL: %s", len(lowTrl), strings.Join(lowTrl, ", ")),
			Details:  "low TRL components may require significant R&D investment",
		}
	default:
		return Check{
			Category: "Technology Readiness",
			Status:   StatusFail,
			Message:  fmt.Sprintf("many low-TRL subsystems: %s", strings.Join(lowTrl, ", ")),
			Details:  "high technology risk - multiple unproven components",
		}
	}
}

// CheckCostRealism flags subsystems whose combination of high idiot index and
// low TRL suggests optimistic cost assumptions.
func CheckCostRealism(subsystems []model.Subsystem) Check {
	var optimistic []string
	for _, sub := range subsystems {
		if !sub.Disabled && sub.BaselineIdiotIndex > 8 && sub.Trl < 6 {
			optimistic = append(optimistic, sub.Name)
		}
	}

	switch {
	case len(optimistic) == 0:
		return Check{
			Category: "Cost Realism",
			Status:   StatusPass,
			Message:  "cost assumptions consistent with technology maturity",
		}
	case len(optimistic) <= 2:
		return Check{
			Category: "Cost Realism",
			Status:   StatusWarning,
			Message:  fmt.Sprintf("optimistic costs for: %s", strings.Join(optimistic, ", ")),
			Details:  "high idiot index plus low TRL implies significant cost learning is required",
		}
	default:
		return Check{
			Category: "Cost Realism",
			Status:   StatusFail,
			Message:  "multiple subsystems have optimistic cost assumptions",
			Details:  "consider higher initial costs for low-TRL, high-idiot-index systems",
		}
	}
}

// CheckCapacityFactor judges whether the assumed capacity factor is realistic
// for the fuel cycle; D-T neutron damage caps sustained availability lower.
func CheckCapacityFactor(capacityFactor float64, fuel model.FuelType) Check {
	maxRealistic := 0.95
	if fuel == model.FuelDT {
		maxRealistic = 0.92
	}

	switch {
	case capacityFactor <= maxRealistic:
		return Check{
			Category: "Capacity Factor",
			Status:   StatusPass,
			Message:  fmt.Sprintf("%.0f%% CF is achievable for %s", capacityFactor*100, fuel),
		}
	case capacityFactor <= 0.98:
		return Check{
			Category: "Capacity Factor",
			Status:   StatusWarning,
			Message:  fmt.Sprintf("%.0f%% CF is aggressive for %s", capacityFactor*100, fuel),
			Details:  fmt.Sprintf("best existing plants achieve ~%.0f%%", maxRealistic*100),
		}
	default:
		return Check{
			Category: "Capacity Factor",
			Status:   StatusFail,
			Message:  fmt.Sprintf("%.0f%% CF is unrealistic", capacityFactor*100),
			Details:  "no power plant operates above 98% capacity factor long-term",
		}
	}
}

// CheckWacc judges whether the financing assumption is realistic.
func CheckWacc(wacc float64) Check {
	switch {
	case wacc >= 0.06:
		return Check{
			Category: "Financing",
			Status:   StatusPass,
			Message:  fmt.Sprintf("%.1f%% WACC is achievable", wacc*100),
		}
	case wacc >= 0.04:
		return Check{
			Category: "Financing",
			Status:   StatusWarning,
			Message:  fmt.Sprintf("%.1f%% WACC requires favorable financing", wacc*100),
			Details:  "may need government backing or concessional finance",
		}
	default:
		return Check{
			Category: "Financing",
			Status:   StatusFail,
			Message:  fmt.Sprintf("%.1f%% WACC is unrealistic", wacc*100),
			Details:  "below sovereign borrowing rates in most countries",
		}
	}
}

// Analyze runs every check and aggregates an overall status.
func Analyze(calculatedLcoe, targetLcoe float64, subsystems []model.Subsystem, params model.FinancialParams, fuel model.FuelType) Report {
	report := Report{}

	if targetLcoe > 0 {
		report.LcoeRatio = calculatedLcoe / targetLcoe
	}
	report.LcoeGap = calculatedLcoe - targetLcoe

	switch {
	case targetLcoe > 0 && report.LcoeRatio <= 1.0:
		report.LcoeMessage = fmt.Sprintf("target achieved: $%.2f/MWh <= $%.2f/MWh", calculatedLcoe, targetLcoe)
	case targetLcoe > 0 && report.LcoeRatio <= 1.5:
		report.LcoeMessage = fmt.Sprintf("close: $%.2f/MWh (%.0f%% over target)",
			calculatedLcoe, (report.LcoeRatio-1)*100)
	default:
		report.LcoeMessage = fmt.Sprintf("gap: $%.2f/MWh ($%.2f/MWh above target)",
			calculatedLcoe, report.LcoeGap)
	}

	report.Checks = []Check{
		CheckTrl(subsystems),
		CheckCostRealism(subsystems),
		CheckCapacityFactor(params.CapacityFactor, fuel),
		CheckWacc(params.Wacc),
	}

	report.OverallStatus = StatusPass
	for _, check := range report.Checks {
		switch check.Status {
		case StatusFail:
			report.OverallStatus = StatusFail
		case StatusWarning:
			if report.OverallStatus == StatusPass {
				report.OverallStatus = StatusWarning
			}
		}
	}
	if report.OverallStatus != StatusFail && targetLcoe > 0 && report.LcoeRatio > 1.5 {
		report.OverallStatus = StatusFail
	} else if report.OverallStatus == StatusPass && targetLcoe > 0 && report.LcoeRatio > 1.0 {
		report.OverallStatus = StatusWarning
	}

	return report
}

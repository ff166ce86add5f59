// Package output provides utilities for formatting and displaying backcast results.
package output

import (
	"fmt"
	"sort"

	"github.com/iwvelando/fusion-backcast/internal/backcast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result backcast.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- LCOE breakdown (%s, %s) ---\n", result.State.Fuel, result.State.Confinement)
	fmt.Printf("Account  | Name                      | Capex ($/MWh) | O&M ($/MWh)\n")
	fmt.Printf("_______  | ____                      | _____________ | ___________\n")
	for _, sub := range result.State.Subsystems {
		if sub.Disabled {
			continue
		}
		_, _ = p.Printf("%-8s | %-25s | %13.2f | %11.2f\n",
			sub.Account, sub.Name,
			result.Breakdown.SubsystemCapital[sub.Account],
			result.Breakdown.SubsystemOm[sub.Account])
	}
	_, _ = p.Printf("\nCapital %.2f + fixed O&M %.2f + variable O&M %.2f + fuel %.2f = %.2f $/MWh\n",
		result.Breakdown.CapitalContribution,
		result.Breakdown.FixedOmContribution,
		result.Breakdown.VariableOmContribution,
		result.Breakdown.FuelContribution,
		result.Breakdown.TotalLcoe)
	_, _ = p.Printf("Total capital cost: $%.0fM ($%.0f/kW)\n", result.TotalCapexAbs, result.TotalCapexPerKw)
	_, _ = p.Printf("Target: %.2f $/MWh (theoretical minimum %.2f, attainable: %t)\n",
		result.State.TargetLcoe, result.TheoreticalMin, result.TargetAttainable)

	fmt.Printf("\n--- Required values to reach target ---\n")
	parameters := make([]string, 0, len(result.Solutions))
	for parameter := range result.Solutions {
		parameters = append(parameters, parameter)
	}
	sort.Strings(parameters)
	for _, parameter := range parameters {
		solution := result.Solutions[parameter]
		marker := " "
		if !solution.Feasible {
			marker = "!"
		}
		fmt.Printf("%s %-15s %s\n", marker, parameter+":", solution.Explanation)
	}

	fmt.Printf("\n--- Feasibility (%s) ---\n", result.Feasibility.OverallStatus)
	fmt.Printf("%s\n", result.Feasibility.LcoeMessage)
	for _, check := range result.Feasibility.Checks {
		fmt.Printf("[%s] %s: %s\n", check.Status, check.Category, check.Message)
	}
}

// CsvFormat outputs the per-account breakdown in comma-separated value format.
func CsvFormat(result backcast.Result) {
	fmt.Printf(`"account","name","capital ($M)","capex ($/MWh)","om ($/MWh)","learning rate","trl","disabled"`)
	fmt.Printf("\n")
	for _, sub := range result.State.Subsystems {
		fmt.Printf(`"%s","%s","%.1f","%.4f","%.4f","%.2f","%d","%t"`,
			sub.Account, sub.Name, sub.AbsoluteCapitalCost,
			result.Breakdown.SubsystemCapital[sub.Account],
			result.Breakdown.SubsystemOm[sub.Account],
			sub.LearningRate, sub.Trl, sub.Disabled)
		fmt.Printf("\n")
	}
	fmt.Printf(`"total","","%.1f","%.4f","%.4f","","",""`, result.TotalCapexAbs,
		result.Breakdown.CapitalContribution,
		result.Breakdown.FixedOmContribution+result.Breakdown.VariableOmContribution+result.Breakdown.FuelContribution)
	fmt.Printf("\n")
}

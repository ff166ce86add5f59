package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iwvelando/fusion-backcast/internal/backcast"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func defaultResult(t *testing.T) backcast.Result {
	t.Helper()
	result, err := backcast.Recompute(nil, backcast.DefaultState())
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	return result
}

func TestPrettyFormat(t *testing.T) {
	result := defaultResult(t)
	output := captureStdout(t, func() {
		PrettyFormat(result)
	})

	if !strings.Contains(output, "--- LCOE breakdown (D-T, MCF) ---") {
		t.Errorf("PrettyFormat missing breakdown header")
	}
	if !strings.Contains(output, "Account") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(output, "22.1.3") {
		t.Errorf("PrettyFormat missing magnet account row")
	}
	if strings.Contains(output, "22.1.9") {
		t.Errorf("PrettyFormat should skip accounts disabled for D-T")
	}
	if !strings.Contains(output, "--- Required values to reach target ---") {
		t.Errorf("PrettyFormat missing solver section")
	}
	if !strings.Contains(output, "wacc:") {
		t.Errorf("PrettyFormat missing wacc solver line")
	}
	if !strings.Contains(output, "--- Feasibility") {
		t.Errorf("PrettyFormat missing feasibility section")
	}
}

func TestPrettyFormatMarksInfeasibleSolutions(t *testing.T) {
	result := defaultResult(t)
	output := captureStdout(t, func() {
		PrettyFormat(result)
	})

	// The default $10/MWh target is unreachable for a first-of-a-kind plant,
	// so at least one solver line carries the infeasibility marker.
	marked := false
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "!") {
			marked = true
		}
	}
	if !marked {
		t.Errorf("expected at least one infeasible solver line, got %q", output)
	}
}

func TestCsvFormat(t *testing.T) {
	result := defaultResult(t)
	output := captureStdout(t, func() {
		CsvFormat(result)
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != len(result.State.Subsystems)+2 {
		t.Errorf("expected %d CSV lines, got %d", len(result.State.Subsystems)+2, len(lines))
	}
	if !strings.Contains(lines[0], `"account"`) {
		t.Errorf("CsvFormat missing header row, got %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], `"total"`) {
		t.Errorf("CsvFormat missing total row, got %q", lines[len(lines)-1])
	}
	for _, line := range lines[1:] {
		if strings.Count(line, ",") != 7 {
			t.Errorf("expected 8 CSV columns, got %q", line)
		}
	}
}

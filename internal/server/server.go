// Package server exposes the backcasting engine over a stateless JSON API.
// Every request carries the full session configuration; nothing is stored
// between calls.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/fusion-backcast/internal/backcast"
	"github.com/iwvelando/fusion-backcast/internal/config"
	"github.com/iwvelando/fusion-backcast/pkg/constants"
	"github.com/iwvelando/fusion-backcast/pkg/feasibility"
	"github.com/iwvelando/fusion-backcast/pkg/model"
	"github.com/iwvelando/fusion-backcast/pkg/solver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the backcasting API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Forward calculation plus solver sweep for a posted configuration
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Single-parameter inverse solve
	mux.HandleFunc("/api/solve/", h.handleSolve)

	// Learning-rate allocation toward the configured target
	mux.HandleFunc("/api/apply-target", h.handleApplyTarget)

	// Catalog defaults for building a configuration from scratch
	mux.HandleFunc("/api/defaults", h.handleDefaults)

	// Supported fuel and confinement combinations
	mux.HandleFunc("/api/fuel-types", h.handleFuelTypes)

	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/api/health", h.handleHealth)

	return mux
}

type calculateResponse struct {
	Breakdown        model.LCOEBreakdown      `json:"breakdown"`
	Subsystems       []model.Subsystem        `json:"subsystems"`
	Solutions        map[string]solver.Result `json:"solutions"`
	Feasibility      feasibility.Report       `json:"feasibility"`
	TheoreticalMin   float64                  `json:"theoreticalMin"`
	TargetAttainable bool                     `json:"targetAttainable"`
	TotalCapexAbs    float64                  `json:"totalCapexAbs"`
	TotalCapexPerKw  float64                  `json:"totalCapexPerKw"`
	Warnings         []string                 `json:"warnings,omitempty"`
	Duration         string                   `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	conf, ok := h.decodeConfiguration(w, r, op)
	if !ok {
		return
	}

	state, err := conf.BuildState()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := backcast.Recompute(h.logger, state)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute breakdown: %v", err), op)
		return
	}

	response := calculateResponse{
		Breakdown:        result.Breakdown,
		Subsystems:       result.State.Subsystems,
		Solutions:        result.Solutions,
		Feasibility:      result.Feasibility,
		TheoreticalMin:   result.TheoreticalMin,
		TargetAttainable: result.TargetAttainable,
		TotalCapexAbs:    result.TotalCapexAbs,
		TotalCapexPerKw:  result.TotalCapexPerKw,
		Warnings:         conf.ValidateConfiguration(),
		Duration:         time.Since(start).String(),
	}

	h.logger.Info("calculation complete",
		zap.String("op", op),
		zap.Float64("lcoe", result.Breakdown.TotalLcoe),
		zap.String("duration", response.Duration),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSolve"

	parameter := strings.TrimPrefix(r.URL.Path, "/api/solve/")
	if parameter == "" || strings.Contains(parameter, "/") {
		h.respondError(w, http.StatusNotFound, "unknown solve parameter", op)
		return
	}

	conf, ok := h.decodeConfiguration(w, r, op)
	if !ok {
		return
	}

	state, err := conf.BuildState()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	// Solve against the same derived snapshot the calculate endpoint reports:
	// constraints and fleet learning applied, never the authored costs.
	result, err := backcast.Recompute(h.logger, state)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("solver failed: %v", err), op)
		return
	}

	solution, found := result.Solutions[parameter]
	if !found {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown solve parameter %q", parameter), op)
		return
	}

	h.writeJSON(w, http.StatusOK, solution)
}

type applyTargetResponse struct {
	solver.AllocationResult
	Warnings []string `json:"warnings,omitempty"`
	Duration string   `json:"duration"`
}

func (h *handler) handleApplyTarget(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleApplyTarget"
	start := time.Now()

	conf, ok := h.decodeConfiguration(w, r, op)
	if !ok {
		return
	}

	state, err := conf.BuildState()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	allocation, err := backcast.ApplyTarget(h.logger, state)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("allocation failed: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, applyTargetResponse{
		AllocationResult: allocation,
		Warnings:         conf.ValidateConfiguration(),
		Duration:         time.Since(start).String(),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	state := backcast.DefaultState()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"subsystems":      state.Subsystems,
		"financial":       state.Financial,
		"fuelType":        state.Fuel,
		"confinementType": state.Confinement,
		"targetLcoe":      state.TargetLcoe,
	})
}

type fuelTypeEntry struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	CfModifier         float64  `json:"cfModifier"`
	RegulatoryModifier float64  `json:"regulatoryModifier"`
	RequiredAccounts   []string `json:"requiredAccounts"`
}

type confinementTypeEntry struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	RequiredAccounts []string `json:"requiredAccounts"`
}

func (h *handler) handleFuelTypes(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFuelTypes"

	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	fuels := make([]fuelTypeEntry, 0, len(model.FuelTypes()))
	for _, fuel := range model.FuelTypes() {
		info, err := model.GetFuelInfo(fuel)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		fuels = append(fuels, fuelTypeEntry{
			Name:               string(fuel),
			Description:        info.Description,
			CfModifier:         info.CfModifier,
			RegulatoryModifier: info.RegulatoryModifier,
			RequiredAccounts:   info.RequiredAccounts,
		})
	}

	confinements := make([]confinementTypeEntry, 0, len(model.ConfinementTypes()))
	for _, confinement := range model.ConfinementTypes() {
		info, err := model.GetConfinementInfo(confinement)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		confinements = append(confinements, confinementTypeEntry{
			Name:             string(confinement),
			Description:      info.Description,
			RequiredAccounts: info.RequiredAccounts,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"fuelTypes":        fuels,
		"confinementTypes": confinements,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeConfiguration reads a JSON request body, round-trips it through YAML,
// and parses it with the same loader the CLI uses so both surfaces accept
// identical configurations.
func (h *handler) decodeConfiguration(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return nil, false
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configBytes, err := yaml.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return nil, false
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse configuration: %v", err), op)
		return nil, false
	}

	return conf, true
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes before touching the ResponseWriter so an encode failure
// can still surface as a 500 instead of an empty 200.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to encode JSON response", zap.Error(err))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

// Package config defines the data structures related to configuration and
// includes functions for loading and validating the session config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/fusion-backcast/internal/backcast"
	"github.com/iwvelando/fusion-backcast/pkg/model"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for fusion-backcast.
type Configuration struct {
	TargetLcoe      float64                `yaml:"targetLcoe"`
	FuelType        string                 `yaml:"fuelType"`
	ConfinementType string                 `yaml:"confinementType"`
	Financial       model.FinancialParams  `yaml:"financial"`
	Subsystems      []SubsystemOverride    `yaml:"subsystems,omitempty"`
	Logging         LoggingConfig          `yaml:"logging,omitempty"`
	Output          OutputConfig           `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// SubsystemOverride adjusts one catalog account. Nil pointers leave the
// catalog default in place.
type SubsystemOverride struct {
	Account      string   `yaml:"account"`
	CapitalCost  *float64 `yaml:"capitalCost,omitempty"`  // $M, first-of-a-kind
	FixedOm      *float64 `yaml:"fixedOm,omitempty"`      // $M/yr
	VariableOm   *float64 `yaml:"variableOm,omitempty"`   // $/MWh
	LearningRate *float64 `yaml:"learningRate,omitempty"`
	LockedCapex  bool     `yaml:"lockedCapex,omitempty"`
	LockedOm     bool     `yaml:"lockedOm,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML configuration from an in-memory
// reader; used by the HTTP embedding.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	configuration := Configuration{
		TargetLcoe:      10.0,
		FuelType:        string(model.FuelDT),
		ConfinementType: string(model.ConfinementMCF),
		Financial:       model.DefaultFinancialParams(),
	}
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// BuildState converts the configuration into a recomputation snapshot,
// seeding from the catalog and applying any per-account overrides.
func (conf *Configuration) BuildState() (backcast.State, error) {
	fuel := model.FuelType(conf.FuelType)
	if _, err := model.GetFuelInfo(fuel); err != nil {
		return backcast.State{}, err
	}
	confinement := model.ConfinementType(conf.ConfinementType)
	if _, err := model.GetConfinementInfo(confinement); err != nil {
		return backcast.State{}, err
	}

	subsystems := model.DefaultSubsystems()
	for _, override := range conf.Subsystems {
		sub := model.FindSubsystem(subsystems, override.Account)
		if sub == nil {
			return backcast.State{}, fmt.Errorf("subsystem override references unknown account %q", override.Account)
		}
		if override.CapitalCost != nil {
			sub.BaselineCapitalCost = *override.CapitalCost
			sub.AbsoluteCapitalCost = *override.CapitalCost
		}
		if override.FixedOm != nil {
			sub.BaselineFixedOm = *override.FixedOm
			sub.AbsoluteFixedOm = *override.FixedOm
		}
		if override.VariableOm != nil {
			sub.VariableOm = *override.VariableOm
		}
		if override.LearningRate != nil {
			sub.LearningRate = *override.LearningRate
		}
		sub.LockedCapex = override.LockedCapex
		sub.LockedOm = override.LockedOm
	}

	return backcast.State{
		Subsystems:  subsystems,
		Financial:   conf.Financial,
		Fuel:        fuel,
		Confinement: confinement,
		TargetLcoe:  conf.TargetLcoe,
	}, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for soft plausibility issues. Hard errors surface from
// BuildState instead.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.TargetLcoe <= 0 {
		warnings = append(warnings, fmt.Sprintf("target LCOE %.2f $/MWh is not positive; solvers will report infeasible", conf.TargetLcoe))
	} else if conf.TargetLcoe < 1 || conf.TargetLcoe > 100 {
		warnings = append(warnings, fmt.Sprintf("target LCOE %.2f $/MWh is outside the typical 1-100 $/MWh exploration range", conf.TargetLcoe))
	}

	if conf.Financial.Wacc < 0.01 || conf.Financial.Wacc > 0.25 {
		warnings = append(warnings, fmt.Sprintf("WACC %.3f is outside the typical 0.01-0.25 range", conf.Financial.Wacc))
	}
	if conf.Financial.Lifetime < 10 || conf.Financial.Lifetime > 60 {
		warnings = append(warnings, fmt.Sprintf("lifetime %d years is outside the typical 10-60 year range", conf.Financial.Lifetime))
	}
	if conf.Financial.CapacityFactor < 0.5 || conf.Financial.CapacityFactor > 1.0 {
		warnings = append(warnings, fmt.Sprintf("capacity factor %.2f is outside the typical 0.5-1.0 range", conf.Financial.CapacityFactor))
	}
	if conf.Financial.CapacityMw < 100 || conf.Financial.CapacityMw > 5000 {
		warnings = append(warnings, fmt.Sprintf("capacity %.0f MW is outside the typical 100-5000 MW range", conf.Financial.CapacityMw))
	}
	if conf.Financial.UnitsDeployed < 1 {
		warnings = append(warnings, fmt.Sprintf("units deployed %.1f is below 1 and will be treated as 1", conf.Financial.UnitsDeployed))
	}
	if conf.Financial.QEng > 0 && conf.Financial.QEng <= 1 {
		warnings = append(warnings, fmt.Sprintf("engineering gain %.2f cannot sustain net output; plant-size scaling is undefined at or below 1", conf.Financial.QEng))
	}

	for _, override := range conf.Subsystems {
		if override.LearningRate != nil && (*override.LearningRate <= 0 || *override.LearningRate > 1) {
			warnings = append(warnings, fmt.Sprintf("subsystem %s learning rate %.2f is outside (0, 1]", override.Account, *override.LearningRate))
		}
		if override.CapitalCost != nil && *override.CapitalCost < 0 {
			warnings = append(warnings, fmt.Sprintf("subsystem %s capital cost %.1f $M is negative", override.Account, *override.CapitalCost))
		}
	}

	return warnings
}

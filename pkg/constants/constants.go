// Package constants provides shared constants for the fusion-backcast application.
package constants

// Energy conversion constants
const (
	// HoursPerYear is the number of hours in a year used for capacity factor math
	HoursPerYear = 8760.0

	// KwPerMw converts nameplate MW to kW
	KwPerMw = 1000.0

	// DollarsPerMillion converts $M figures to raw dollars
	DollarsPerMillion = 1e6
)

// Learning curve constants
const (
	// MinLearningRate is the hard floor for any back-solved learning rate
	MinLearningRate = 0.50

	// MaxLearningRate is the hard ceiling for any back-solved learning rate
	MaxLearningRate = 0.99

	// MinAllocationRatio is the floor for a per-subsystem target cost ratio
	// produced by the weighted allocator before conversion to a learning rate
	MinAllocationRatio = 0.05
)

// Solver bracket and convergence constants
const (
	// WaccSearchMin is the lower bisection bound for the WACC solver
	WaccSearchMin = 0.01

	// WaccSearchMax is the upper bisection bound for the WACC solver
	WaccSearchMax = 0.25

	// WaccFeasibleMin is the lowest WACC considered obtainable in practice
	WaccFeasibleMin = 0.03

	// LifetimeSearchMin is the lower bisection bound for the lifetime solver (years)
	LifetimeSearchMin = 10

	// LifetimeSearchMax is the upper bisection bound for the lifetime solver (years)
	LifetimeSearchMax = 60

	// SolverMaxIterations caps every bisection loop
	SolverMaxIterations = 50

	// SolverTolerance is the convergence tolerance on LCOE in $/MWh
	SolverTolerance = 0.01

	// CapexFeasibilityFraction is the fraction of current capex below which a
	// back-solved capex ceiling is treated as unobtainable
	CapexFeasibilityFraction = 0.30

	// CapacityFactorFeasibleMin and CapacityFactorFeasibleMax bound the
	// plausible range for a back-solved capacity factor
	CapacityFactorFeasibleMin = 0.50
	CapacityFactorFeasibleMax = 0.98

	// QEngFeasibleMin and QEngFeasibleMax bound the plausible range for a
	// back-solved engineering gain
	QEngFeasibleMin = 1.5
	QEngFeasibleMax = 50.0
)

// Target comparison constants
const (
	// LcoeTolerance is the tolerance for LCOE comparisons in $/MWh
	LcoeTolerance = 0.5

	// AttainabilityTolerance is the relative slack applied when comparing a
	// target against the theoretical minimum achievable LCOE
	AttainabilityTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)

// Rounding constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

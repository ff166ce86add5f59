package model

// defaultCatalog is the static cost-account seed data, one entry per FCC
// chart-of-accounts code. Baseline costs are first-of-a-kind estimates for a
// 1000 MW net plant in $M; fixed O&M in $M/yr; variable O&M in $/MWh.
var defaultCatalog = []Subsystem{
	{
		Account:             "21",
		Name:                "Structures & site facilities",
		Description:         "Buildings, site improvements, and civil works",
		BaselineCapitalCost: 350,
		BaselineFixedOm:     8,
		BaselineIdiotIndex:  1.5,
		LearningRate:        0.95,
		Trl:                 9,
	},
	{
		Account:             "22.1.1",
		Name:                "First wall & blanket",
		Description:         "Plasma-facing components and tritium breeding blanket",
		BaselineCapitalCost: 450,
		BaselineFixedOm:     15,
		BaselineIdiotIndex:  8.0,
		LearningRate:        0.79,
		Trl:                 4,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.2",
		Name:                "Neutron shielding",
		Description:         "Bulk shielding protecting magnets and structures",
		BaselineCapitalCost: 200,
		BaselineFixedOm:     5,
		BaselineIdiotIndex:  4.0,
		LearningRate:        0.85,
		Trl:                 5,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.3",
		Name:                "Magnets",
		Description:         "Superconducting confinement magnet systems",
		BaselineCapitalCost: 800,
		BaselineFixedOm:     20,
		BaselineIdiotIndex:  12.0,
		LearningRate:        0.85,
		Trl:                 6,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.4",
		Name:                "Supplemental heating & current drive",
		Description:         "Neutral beams, RF heating, and current drive systems",
		BaselineCapitalCost: 300,
		BaselineFixedOm:     10,
		BaselineIdiotIndex:  9.0,
		LearningRate:        0.85,
		Trl:                 6,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.5",
		Name:                "Primary structure & support",
		Description:         "Machine support structure and cryostat",
		BaselineCapitalCost: 250,
		BaselineFixedOm:     6,
		BaselineIdiotIndex:  3.0,
		LearningRate:        0.90,
		Trl:                 7,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.6",
		Name:                "Vacuum systems",
		Description:         "Torus and cryostat vacuum pumping",
		BaselineCapitalCost: 150,
		BaselineFixedOm:     4,
		BaselineIdiotIndex:  4.0,
		LearningRate:        0.90,
		Trl:                 8,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.7",
		Name:                "Power supplies",
		Description:         "Magnet and driver power conversion",
		BaselineCapitalCost: 200,
		BaselineFixedOm:     5,
		BaselineIdiotIndex:  3.0,
		LearningRate:        0.90,
		Trl:                 8,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.8",
		Name:                "Laser driver",
		Description:         "Laser or pulsed-power driver for inertial confinement",
		BaselineCapitalCost: 900,
		BaselineFixedOm:     25,
		BaselineIdiotIndex:  15.0,
		LearningRate:        0.85,
		Trl:                 5,
		ReactorIsland:       true,
	},
	{
		Account:             "22.1.9",
		Name:                "Direct energy conversion",
		Description:         "Direct electrostatic or inductive conversion of charged-particle energy",
		BaselineCapitalCost: 400,
		BaselineFixedOm:     12,
		BaselineIdiotIndex:  18.0,
		LearningRate:        0.78,
		Trl:                 3,
		ReactorIsland:       true,
	},
	{
		Account:             "22.2",
		Name:                "Main heat transfer & transport",
		Description:         "Primary coolant loops and intermediate heat exchangers",
		BaselineCapitalCost: 300,
		BaselineFixedOm:     8,
		BaselineIdiotIndex:  3.5,
		LearningRate:        0.90,
		Trl:                 8,
		ReactorIsland:       true,
	},
	{
		Account:             "22.4",
		Name:                "Radwaste treatment",
		Description:         "Radioactive waste processing and handling",
		BaselineCapitalCost: 80,
		BaselineFixedOm:     3,
		BaselineIdiotIndex:  2.5,
		LearningRate:        0.90,
		Trl:                 8,
		ReactorIsland:       true,
	},
	{
		Account:             "22.5",
		Name:                "Fuel handling & storage",
		Description:         "Tritium processing, storage, and fueling systems",
		BaselineCapitalCost: 500,
		BaselineFixedOm:     18,
		BaselineIdiotIndex:  10.0,
		LearningRate:        0.85,
		Trl:                 5,
		ReactorIsland:       true,
	},
	{
		Account:             "22.6",
		Name:                "He3 procurement & production",
		Description:         "He3 supply chain including lunar or breeder sources",
		BaselineCapitalCost: 600,
		BaselineFixedOm:     20,
		BaselineIdiotIndex:  20.0,
		LearningRate:        0.78,
		Trl:                 2,
		ReactorIsland:       true,
	},
	{
		Account:             "23",
		Name:                "Turbine plant equipment",
		Description:         "Steam turbine, generator, and condensate systems",
		BaselineCapitalCost: 400,
		BaselineFixedOm:     12,
		VariableOm:          0.5,
		BaselineIdiotIndex:  2.0,
		LearningRate:        0.95,
		Trl:                 9,
		ReactorIsland:       true,
	},
	{
		Account:             "24",
		Name:                "Electric plant equipment",
		Description:         "Switchgear, transformers, and grid interconnect",
		BaselineCapitalCost: 250,
		BaselineFixedOm:     6,
		VariableOm:          0.2,
		BaselineIdiotIndex:  1.8,
		LearningRate:        0.95,
		Trl:                 9,
	},
	{
		Account:             "25",
		Name:                "Miscellaneous plant equipment",
		Description:         "Cranes, shops, and auxiliary plant services",
		BaselineCapitalCost: 150,
		BaselineFixedOm:     4,
		VariableOm:          0.1,
		BaselineIdiotIndex:  1.6,
		LearningRate:        0.95,
		Trl:                 9,
	},
	{
		Account:             "26",
		Name:                "Heat rejection",
		Description:         "Cooling towers and circulating water systems",
		BaselineCapitalCost: 120,
		BaselineFixedOm:     3,
		VariableOm:          0.1,
		BaselineIdiotIndex:  1.5,
		LearningRate:        0.95,
		Trl:                 9,
	},
}

// DefaultSubsystems returns a fresh copy of the catalog with absolute costs
// initialized to the first-of-a-kind baselines. Callers own the returned
// slice; the catalog itself is never handed out.
func DefaultSubsystems() []Subsystem {
	subsystems := make([]Subsystem, len(defaultCatalog))
	copy(subsystems, defaultCatalog)
	for i := range subsystems {
		subsystems[i].AbsoluteCapitalCost = subsystems[i].BaselineCapitalCost
		subsystems[i].AbsoluteFixedOm = subsystems[i].BaselineFixedOm
	}
	return subsystems
}

// FindSubsystem returns a pointer to the subsystem with the given account
// within the slice, or nil if absent.
func FindSubsystem(subsystems []Subsystem, account string) *Subsystem {
	for i := range subsystems {
		if subsystems[i].Account == account {
			return &subsystems[i]
		}
	}
	return nil
}

package testutil

import "testing"

func TestFindAccount(t *testing.T) {
	subsystems := SampleSubsystems()

	tests := []struct {
		name         string
		account      string
		expectFound  bool
		expectedName string
	}{
		{
			name:         "Find magnets",
			account:      "22.1.3",
			expectFound:  true,
			expectedName: "Magnets",
		},
		{
			name:         "Find turbine plant",
			account:      "23",
			expectFound:  true,
			expectedName: "Turbine plant",
		},
		{
			name:        "Search for non-existent account",
			account:     "99",
			expectFound: false,
		},
		{
			name:        "Empty account code",
			account:     "",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := FindAccount(subsystems, tt.account)

			if tt.expectFound {
				if found == nil {
					t.Fatalf("FindAccount(%s) returned nil, expected a subsystem", tt.account)
				}
				if found.Name != tt.expectedName {
					t.Errorf("FindAccount(%s).Name = %s, expected %s", tt.account, found.Name, tt.expectedName)
				}
			} else if found != nil {
				t.Errorf("FindAccount(%s) = %v, expected nil", tt.account, found)
			}
		})
	}
}

func TestFindAccountReturnsPointerIntoSlice(t *testing.T) {
	subsystems := SampleSubsystems()

	found := FindAccount(subsystems, "21")
	if found == nil {
		t.Fatal("FindAccount(21) returned nil")
	}

	found.AbsoluteCapitalCost = 123
	if subsystems[2].AbsoluteCapitalCost != 123 {
		t.Error("mutation through the returned pointer should be visible in the slice")
	}
}

func TestSampleFinancialParams(t *testing.T) {
	params := SampleFinancialParams()
	if params.CapacityMw != 1000 {
		t.Errorf("CapacityMw = %v, expected 1000", params.CapacityMw)
	}
	if params.UnitsDeployed != 1 {
		t.Errorf("UnitsDeployed = %v, expected 1", params.UnitsDeployed)
	}
}

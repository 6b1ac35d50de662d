package emissions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kilianp07/co2path/core/model"
)

// HighConsumptionKWh marks heating consumption that is implausible for a
// single building.
const HighConsumptionKWh = 500_000

// Severity classifies validation issues.
type Severity int

const (
	// SeverityAdvisory issues are reported but computation proceeds.
	SeverityAdvisory Severity = iota
	// SeverityBlocking issues must be resolved before computing.
	SeverityBlocking
)

func (s Severity) String() string {
	if s == SeverityBlocking {
		return "blocking"
	}
	return "advisory"
}

// Issue is one validation finding on the input dataset.
type Issue struct {
	Severity Severity
	Field    string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// HasBlocking reports whether any issue is blocking.
func HasBlocking(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool { return i.Severity == SeverityBlocking })
}

// Validate checks building rows for plausibility. It never fails; findings are
// returned as data and the caller decides whether to abort.
func Validate(buildings []model.Building, t FactorTable) []Issue {
	var issues []Issue
	var negHeat, negElec, high int
	unknown := map[string]struct{}{}
	for _, b := range buildings {
		if b.HeatingKWh < 0 {
			negHeat++
		}
		if b.ElectricityKWh < 0 {
			negElec++
		}
		if b.HeatingKWh > HighConsumptionKWh {
			high++
		}
		if _, ok := t.Lookup(b.Heating); !ok {
			unknown[b.HeatingName()] = struct{}{}
		}
	}
	if negHeat > 0 {
		issues = append(issues, Issue{
			Severity: SeverityBlocking,
			Field:    "heating_kwh",
			Message:  fmt.Sprintf("negative values in heating_kwh (%d rows)", negHeat),
		})
	}
	if negElec > 0 {
		issues = append(issues, Issue{
			Severity: SeverityBlocking,
			Field:    "electricity_kwh",
			Message:  fmt.Sprintf("negative values in electricity_kwh (%d rows)", negElec),
		})
	}
	if high > 0 {
		issues = append(issues, Issue{
			Severity: SeverityAdvisory,
			Field:    "heating_kwh",
			Message:  fmt.Sprintf("%d buildings with very high heating consumption (>%d MWh/a)", high, HighConsumptionKWh/1000),
		})
	}
	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for n := range unknown {
			names = append(names, n)
		}
		slices.Sort(names)
		issues = append(issues, Issue{
			Severity: SeverityAdvisory,
			Field:    "heating_type",
			Message: fmt.Sprintf("unknown heating types: %s, using fallback factor %.3f",
				strings.Join(names, ", "), t.FallbackFactor()),
		})
	}
	return issues
}

package validation

import (
	"fmt"
	"strings"
)

// ValidateTrip checks boundary constraints on one trip request and returns
// the problems found. The core search and aggregation assume these checks
// already ran; they do not re-validate.
func ValidateTrip(source, destination string, nights int, nightlyRate float64, budget *float64) []string {
	var problems []string

	if strings.TrimSpace(source) == "" {
		problems = append(problems, "source must not be blank")
	}
	if strings.TrimSpace(destination) == "" {
		problems = append(problems, "destination must not be blank")
	}
	if nights <= 0 {
		problems = append(problems, fmt.Sprintf("nights must be positive, got %d", nights))
	}
	if nightlyRate < 0 {
		problems = append(problems, fmt.Sprintf("nightly rate must be non-negative, got %.2f", nightlyRate))
	}
	if budget != nil && *budget < 0 {
		problems = append(problems, fmt.Sprintf("budget must be non-negative, got %.2f", *budget))
	}

	return problems
}

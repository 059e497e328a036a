// Package output provides utilities for formatting and exporting trip quotes.
package output

import (
	"fmt"

	"github.com/iwvelando/trip-forecast/internal/trip"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(summaries []*trip.Summary) {
	p := message.NewPrinter(language.English)
	for i, s := range summaries {
		fmt.Printf("--- Quote for %s to %s ---\n", s.Source, s.Destination)
		_, _ = p.Printf("Outbound flight (%s): $%.2f\n", trip.ConnectionLabel(&s.Outbound), s.Outbound.Fare)
		if s.ReturnRequested {
			if s.Return != nil {
				_, _ = p.Printf("Return flight (%s): $%.2f\n", trip.ConnectionLabel(s.Return), s.Return.Fare)
			} else {
				fmt.Printf("Return flight: unavailable, quoted one-way\n")
			}
		}
		_, _ = p.Printf("Flights: $%.2f\n", s.FlightCost)
		_, _ = p.Printf("Lodging (%d nights at $%.2f): $%.2f\n", s.Nights, s.NightlyRate, s.LodgingCost)
		_, _ = p.Printf("Grand total: $%.2f\n", s.GrandTotal)
		if s.Budget != nil {
			if s.Budget.WithinBudget {
				_, _ = p.Printf("Within budget of $%.2f with $%.2f to spare\n", s.Budget.Budget, s.Budget.Delta)
			} else {
				_, _ = p.Printf("Over budget of $%.2f by $%.2f\n", s.Budget.Budget, s.Budget.Delta)
			}
		}
		for _, warning := range s.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
		if i < len(summaries)-1 {
			fmt.Printf("\n")
		}
	}
}

// CsvFormat outputs the flat export record in comma-separated value format,
// one line per quote.
func CsvFormat(summaries []*trip.Summary) {
	fmt.Printf(`"source","destination","outbound_connection","return_requested","return_connection","flight_cost","nights","nightly_rate","lodging_cost","grand_total"`)
	fmt.Printf("\n")
	for _, s := range summaries {
		fmt.Printf(`"%s","%s","%s","%t","%s","%.2f","%d","%.2f","%.2f","%.2f"`,
			s.Source,
			s.Destination,
			trip.ConnectionLabel(&s.Outbound),
			s.ReturnRequested,
			trip.ConnectionLabel(s.Return),
			s.FlightCost,
			s.Nights,
			s.NightlyRate,
			s.LodgingCost,
			s.GrandTotal,
		)
		fmt.Printf("\n")
	}
}

// Package trip aggregates route costs with lodging into a quotable trip
// summary and checks it against an optional budget.
package trip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/trip-forecast/internal/route"
	"github.com/iwvelando/trip-forecast/pkg/constants"
	"github.com/iwvelando/trip-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrNoOutboundRoute indicates the outbound search found no itinerary. The
// outbound leg is mandatory, so nothing further is computed.
var ErrNoOutboundRoute = errors.New("trip: no outbound route found")

// Request holds the inputs for one trip quote. Nights, rate, and budget are
// validated at the input boundary (config or HTTP), not here.
type Request struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Nights      int      `json:"nights"`
	NightlyRate float64  `json:"nightlyRate"`
	RoundTrip   bool     `json:"roundTrip"`
	Budget      *float64 `json:"budget,omitempty"`
}

// BudgetVerdict reports how the grand total compares to a supplied budget.
type BudgetVerdict struct {
	Budget       float64 `json:"budget"`
	WithinBudget bool    `json:"withinBudget"`
	// Delta is the headroom when within budget, the overage when over.
	Delta float64 `json:"delta"`
}

// Summary is the aggregated quote for one trip.
type Summary struct {
	Source            string         `json:"source"`
	Destination       string         `json:"destination"`
	Outbound          route.Result   `json:"outbound"`
	ReturnRequested   bool           `json:"returnRequested"`
	Return            *route.Result  `json:"return,omitempty"`
	ReturnUnavailable bool           `json:"returnUnavailable"`
	Nights            int            `json:"nights"`
	NightlyRate       float64        `json:"nightlyRate"`
	FlightCost        float64        `json:"flightCost"`
	LodgingCost       float64        `json:"lodgingCost"`
	GrandTotal        float64        `json:"grandTotal"`
	Budget            *BudgetVerdict `json:"budgetVerdict,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
}

// ConnectionLabel describes a leg's stops for display or export.
func ConnectionLabel(r *route.Result) string {
	if r == nil || !r.HasConnection() {
		return constants.DirectLabel
	}
	return strings.Join(r.Stops, " -> ")
}

// Compute quotes one trip. The outbound leg is mandatory and its absence is
// a hard failure; a requested return leg with no route degrades gracefully
// to a one-way quote with a warning recorded on the summary.
func Compute(logger *zap.Logger, engine *route.Engine, req Request) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	outbound := engine.FindCheapestRoute(req.Source, req.Destination)
	if !outbound.Found {
		return nil, ErrNoOutboundRoute
	}

	summary := &Summary{
		Source:          req.Source,
		Destination:     req.Destination,
		Outbound:        outbound,
		ReturnRequested: req.RoundTrip,
		Nights:          req.Nights,
		NightlyRate:     req.NightlyRate,
	}

	flightCost := outbound.Fare
	if req.RoundTrip {
		ret := engine.FindCheapestRoute(req.Destination, req.Source)
		if ret.Found {
			summary.Return = &ret
			flightCost += ret.Fare
		} else {
			summary.ReturnUnavailable = true
			warning := fmt.Sprintf("no return route from %s to %s, quoting one-way only",
				req.Destination, req.Source)
			summary.Warnings = append(summary.Warnings, warning)
			logger.Warn(warning,
				zap.String("op", "trip.Compute"),
			)
		}
	}

	summary.FlightCost = mathutil.Round(flightCost)
	summary.LodgingCost = mathutil.Round(float64(req.Nights) * req.NightlyRate)
	summary.GrandTotal = mathutil.Round(summary.FlightCost + summary.LodgingCost)

	if req.Budget != nil {
		verdict := &BudgetVerdict{Budget: *req.Budget}
		if summary.GrandTotal > *req.Budget {
			verdict.Delta = mathutil.Round(summary.GrandTotal - *req.Budget)
		} else {
			verdict.WithinBudget = true
			verdict.Delta = mathutil.Round(*req.Budget - summary.GrandTotal)
		}
		summary.Budget = verdict
	}

	return summary, nil
}

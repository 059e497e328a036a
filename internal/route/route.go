// Package route implements the tiered cheapest-route search over the fare
// table.
//
// The search runs in strict tiers: direct, then one intermediate stop, then
// two. The first tier that yields any itinerary wins; costs are never
// compared across tiers, modelling the preference for fewer stops. Within a
// tier the one-stop and two-stop passes return the first qualifying stop (or
// ordered stop pair) rather than the global minimum over all stops, which
// bounds the running time; the fare for each individual leg is always the
// exact minimum over all matching records.
//
// Determinism: stop candidates iterate in first-appearance order of the
// origin-city column, and per-leg minimum selection keeps the earliest
// record on exact fare ties.
package route

import (
	"errors"

	"github.com/iwvelando/trip-forecast/internal/faretable"
	"github.com/iwvelando/trip-forecast/internal/match"
	"github.com/iwvelando/trip-forecast/pkg/mathutil"
)

// Sentinel errors returned by NewEngine.
var (
	// ErrNilTable indicates no fare table was supplied.
	ErrNilTable = errors.New("route: fare table is nil")

	// ErrEmptyTable indicates the fare table has no records to search.
	ErrEmptyTable = errors.New("route: fare table has no records")
)

// Result is the outcome of one cheapest-route search. Found distinguishes a
// real itinerary from the not-found sentinel; a zero-fare itinerary and "no
// route" are different results.
type Result struct {
	Fare  float64  `json:"fare"`
	Stops []string `json:"stops,omitempty"`
	Found bool     `json:"found"`
}

// HasConnection reports whether the itinerary includes at least one
// intermediate stop.
func (r Result) HasConnection() bool {
	return len(r.Stops) > 0
}

// NotFound is the sentinel result for a search that yielded no itinerary.
func NotFound() Result {
	return Result{}
}

// Engine runs cheapest-route searches against one loaded fare table. The
// table is read-only after load, so a single Engine is safe for concurrent
// searches.
type Engine struct {
	table *faretable.Table
}

// NewEngine wraps a loaded fare table.
func NewEngine(table *faretable.Table) (*Engine, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	if table.Len() == 0 {
		return nil, ErrEmptyTable
	}
	return &Engine{table: table}, nil
}

// FindCheapestRoute finds the cheapest itinerary from source to destination.
// Source and destination are free text matched as literal case-insensitive
// substrings of each record's city and airport-code fields; blank input
// matches nothing, so the result is the not-found sentinel.
func (e *Engine) FindCheapestRoute(source, destination string) Result {
	src := match.Normalize(source)
	dst := match.Normalize(destination)
	if src == "" || dst == "" {
		return NotFound()
	}

	if fare, ok := e.cheapestLeg(src, dst); ok {
		return Result{Fare: fare, Found: true}
	}

	stops := e.candidateStops(src, dst)

	for _, stop := range stops {
		legA, ok := e.cheapestLeg(src, stop)
		if !ok {
			continue
		}
		legB, ok := e.cheapestLeg(stop, dst)
		if !ok {
			continue
		}
		return Result{
			Fare:  mathutil.Round(legA + legB),
			Stops: []string{stop},
			Found: true,
		}
	}

	// Two-stop pairs are only tried once the one-stop pass is exhausted.
	for _, first := range stops {
		legA, ok := e.cheapestLeg(src, first)
		if !ok {
			continue
		}
		for _, second := range stops {
			if second == first {
				continue
			}
			legB, ok := e.cheapestLeg(first, second)
			if !ok {
				continue
			}
			legC, ok := e.cheapestLeg(second, dst)
			if !ok {
				continue
			}
			return Result{
				Fare:  mathutil.Round(legA + legB + legC),
				Stops: []string{first, second},
				Found: true,
			}
		}
	}

	return NotFound()
}

// cheapestLeg scans for the minimum fare over all records whose origin-side
// fields match source and destination-side fields match destination. The
// strict less-than keeps the earliest record in table order on exact ties.
func (e *Engine) cheapestLeg(source, destination string) (float64, bool) {
	var best float64
	found := false
	for _, rec := range e.table.Records() {
		if !match.Any(source, rec.OriginCity, rec.OriginAirport) {
			continue
		}
		if !match.Any(destination, rec.DestinationCity, rec.DestinationAirport) {
			continue
		}
		if !found || rec.LowFare < best {
			best = rec.LowFare
			found = true
		}
	}
	return best, found
}

// candidateStops filters the table's distinct origin cities, excluding any
// equal to the normalized source or destination. A stop equal to either
// endpoint must never be chosen as a connecting point.
func (e *Engine) candidateStops(source, destination string) []string {
	var stops []string
	for _, stop := range e.table.StopCandidates() {
		if stop == source || stop == destination {
			continue
		}
		stops = append(stops, stop)
	}
	return stops
}

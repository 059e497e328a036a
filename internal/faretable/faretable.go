// Package faretable loads the flight fare table from CSV and exposes it as
// an immutable in-memory table. The table is loaded once per run; the caller
// owns its lifetime and passes it into each query.
package faretable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/trip-forecast/internal/match"
	"github.com/iwvelando/trip-forecast/pkg/constants"
	"go.uber.org/zap"
)

// FareRecord is one validated row of the fare table. All four identifying
// fields are non-empty and LowFare is a non-negative number; rows failing
// that never enter the table.
type FareRecord struct {
	OriginCity         string
	DestinationCity    string
	OriginAirport      string
	DestinationAirport string
	LowFare            float64
}

// Table is the validated, read-only fare table.
type Table struct {
	records []FareRecord
	stops   []string
	skipped int
}

// requiredColumns lists the header names Load must find in the CSV.
var requiredColumns = []string{
	constants.ColumnOriginCity,
	constants.ColumnDestinationCity,
	constants.ColumnOriginAirport,
	constants.ColumnDestinationAirport,
	constants.ColumnLowFare,
}

// Load reads and validates the fare table CSV at path.
func Load(path string, logger *zap.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fare table %s: %v", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	table, err := Read(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load fare table %s: %v", path, err)
	}
	return table, nil
}

// Read parses fare table CSV from r. Rows missing any identifying field or
// carrying a non-numeric or negative fare are skipped; the skip count is
// logged and retained on the table. Missing required columns, or zero valid
// rows, is an error.
func Read(r io.Reader, logger *zap.Logger) (*Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Ragged rows fail field validation and are skipped, not fatal.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %v", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []FareRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read fare row: %v", err)
		}

		record, ok := parseRow(row, columns)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	if skipped > 0 {
		logger.Warn(fmt.Sprintf("skipped %d invalid fare rows", skipped),
			zap.String("op", "faretable.Read"),
		)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("fare table contained no valid records")
	}

	table := New(records)
	table.skipped = skipped
	return table, nil
}

// New builds a table from already-validated records, preserving their order.
// Intended for callers that assemble records in memory, such as tests.
func New(records []FareRecord) *Table {
	table := &Table{records: records}
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		stop := match.Normalize(rec.OriginCity)
		if !seen[stop] {
			seen[stop] = true
			table.stops = append(table.stops, stop)
		}
	}
	return table
}

// Records returns the validated records in load order. The slice is shared;
// callers must treat it as read-only.
func (t *Table) Records() []FareRecord {
	return t.records
}

// StopCandidates returns the distinct normalized origin cities in order of
// first appearance in the table. This ordering is what makes the route
// engine's first-found tie-breaking deterministic.
func (t *Table) StopCandidates() []string {
	return t.stops
}

// Len returns the number of validated records.
func (t *Table) Len() int {
	return len(t.records)
}

// Skipped returns the number of rows dropped during load.
func (t *Table) Skipped() int {
	return t.skipped
}

// mapColumns resolves the index of each required column in the header,
// matching names case-insensitively.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("fare table missing required columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// parseRow validates one CSV row against the FareRecord invariant.
func parseRow(row []string, columns map[string]int) (FareRecord, bool) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	record := FareRecord{
		OriginCity:         field(constants.ColumnOriginCity),
		DestinationCity:    field(constants.ColumnDestinationCity),
		OriginAirport:      field(constants.ColumnOriginAirport),
		DestinationAirport: field(constants.ColumnDestinationAirport),
	}
	if record.OriginCity == "" || record.DestinationCity == "" ||
		record.OriginAirport == "" || record.DestinationAirport == "" {
		return FareRecord{}, false
	}

	fare, err := strconv.ParseFloat(field(constants.ColumnLowFare), 64)
	if err != nil || fare < 0 {
		return FareRecord{}, false
	}
	record.LowFare = fare

	return record, true
}

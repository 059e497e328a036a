package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/iwvelando/trip-forecast/internal/trip"
	"github.com/jung-kurt/gofpdf"
)

// PDFBytes renders a quote sheet for one trip summary and returns raw PDF
// bytes (no filesystem needed).
func PDFBytes(s *trip.Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// header bar
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Trip Forecast", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Flight & Lodging Cost Estimate", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	sectionHeader("Trip Overview")
	routeLabel := fmt.Sprintf("%s -> %s", s.Source, s.Destination)
	if s.ReturnRequested && !s.ReturnUnavailable {
		routeLabel = fmt.Sprintf("%s -> %s -> %s", s.Source, s.Destination, s.Source)
	}
	row("Route", routeLabel)
	row("Duration", fmt.Sprintf("%d nights", s.Nights))
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	sectionHeader("Flights")
	row("Outbound", fmt.Sprintf("%s ($%.2f)", trip.ConnectionLabel(&s.Outbound), s.Outbound.Fare))
	if s.ReturnRequested {
		if s.Return != nil {
			row("Return", fmt.Sprintf("%s ($%.2f)", trip.ConnectionLabel(s.Return), s.Return.Fare))
		} else {
			row("Return", "unavailable, quoted one-way")
		}
	}
	pdf.Ln(4)

	sectionHeader("Cost Estimate")
	row("Flights", fmt.Sprintf("$%.2f", s.FlightCost))
	row("Lodging", fmt.Sprintf("$%.2f/night x %d nights = $%.2f", s.NightlyRate, s.Nights, s.LodgingCost))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.2f", s.GrandTotal), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if s.Budget != nil {
		sectionHeader("Budget")
		row("Budget", fmt.Sprintf("$%.2f", s.Budget.Budget))
		if s.Budget.WithinBudget {
			row("Verdict", fmt.Sprintf("within budget, $%.2f to spare", s.Budget.Delta))
		} else {
			row("Verdict", fmt.Sprintf("over budget by $%.2f", s.Budget.Delta))
		}
		pdf.Ln(4)
	}

	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by trip-forecast - estimates only, not a booking confirmation",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

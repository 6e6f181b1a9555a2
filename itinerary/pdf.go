package itinerary

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"voyago/models"
)

// RenderPDF produces the exported document: a title page followed by one page
// per day. No output is returned on error; partial documents are never sent.
func RenderPDF(it models.Itinerary, frontendURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)

	// Title page
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 15, "Travel Itinerary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, it.ItineraryData.Destination, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Travel Dates: %s - %s", displayDate(it.StartDate), displayDate(it.EndDate)), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	writePreferences(pdf, it.Preferences)

	if link := itineraryLink(frontendURL, it.ItineraryID); link != "" {
		if qrPNG, err := qrcode.Encode(link, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
			pdf.ImageOptions("qr", 150, 230, 40, 40, false, opts, 0, "")
		}
	}

	// One page per day
	for _, day := range it.ItineraryData.Days {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Day %d: %s", day.Day, day.Title), "B", 1, "L", false, 0, "")
		pdf.Ln(6)

		for _, activity := range day.Activities {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, fmt.Sprintf("%s - %s", activity.Time, activity.Name), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, activity.Description, "", "J", false)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePreferences(pdf *gofpdf.Fpdf, prefs models.Preferences) {
	if prefs.Budget == "" && len(prefs.Interests) == 0 && prefs.TravelPace == "" {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Travel Preferences", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Budget: "+orDefault(prefs.Budget, "Not specified"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Interests: "+orDefault(strings.Join(prefs.Interests, ", "), "General"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Travel Pace: "+orDefault(prefs.TravelPace, "Moderate"), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func itineraryLink(frontendURL, id string) string {
	if frontendURL == "" || id == "" {
		return ""
	}
	return strings.TrimRight(frontendURL, "/") + "/itinerary/" + id
}

func displayDate(s string) string {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006")
}

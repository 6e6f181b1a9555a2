package genai

import (
	"fmt"

	"voyago/models"
)

// templateActivities is the fixed four-activity day used by the fallback.
var templateActivities = []models.Activity{
	{Name: "City Tour", Time: "09:00 AM", Description: "Explore famous landmarks"},
	{Name: "Local Lunch", Time: "01:00 PM", Description: "Try local cuisine"},
	{Name: "Cultural Visit", Time: "04:00 PM", Description: "Visit cultural places"},
	{Name: "Dinner", Time: "08:00 PM", Description: "Relax and dine"},
}

// Fallback builds the deterministic template itinerary, one entry per trip
// day, parameterized only by destination and day number. It keeps the service
// able to answer with a structurally valid plan when the remote model cannot.
func Fallback(destination, startDate, endDate string) models.ItineraryData {
	length := TripDays(startDate, endDate)
	if length < 1 {
		length = 1
	}

	days := make([]models.Day, length)
	for i := range days {
		activities := make([]models.Activity, len(templateActivities))
		copy(activities, templateActivities)
		days[i] = models.Day{
			Day:        i + 1,
			Title:      fmt.Sprintf("Day %d in %s", i+1, destination),
			Activities: activities,
		}
	}

	return models.ItineraryData{Destination: destination, Days: days}
}

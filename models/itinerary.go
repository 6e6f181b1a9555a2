package models

import "time"

// Itinerary is the persisted travel plan document.
type Itinerary struct {
	ItineraryID   string        `json:"itineraryId" bson:"itineraryId"`
	UserID        string        `json:"userId" bson:"userId"`
	Destination   string        `json:"destination" bson:"destination"`
	StartDate     string        `json:"startDate" bson:"startDate"`
	EndDate       string        `json:"endDate" bson:"endDate"`
	Preferences   Preferences   `json:"preferences" bson:"preferences"`
	ItineraryData ItineraryData `json:"itineraryData" bson:"itineraryData"`
	CreatedAt     time.Time     `json:"createdAt" bson:"createdAt"`
}

type Preferences struct {
	Budget     string   `json:"budget,omitempty" bson:"budget,omitempty"`
	Interests  []string `json:"interests,omitempty" bson:"interests,omitempty"`
	TravelPace string   `json:"travelPace,omitempty" bson:"travelPace,omitempty"`
}

// ItineraryData is the day-by-day plan, either produced by the remote model
// or by the template fallback. Same shape either way.
type ItineraryData struct {
	Destination string `json:"destination" bson:"destination"`
	Days        []Day  `json:"days" bson:"days"`
}

type Day struct {
	Day        int        `json:"day" bson:"day"`
	Title      string     `json:"title" bson:"title"`
	Activities []Activity `json:"activities" bson:"activities"`
}

type Activity struct {
	Name        string    `json:"name" bson:"name"`
	Time        string    `json:"time" bson:"time"` // free-text label, not parsed
	Description string    `json:"description" bson:"description"`
	Location    *Location `json:"location,omitempty" bson:"location,omitempty"`
}

type Location struct {
	Lat     float64 `json:"lat" bson:"lat"`
	Lng     float64 `json:"lng" bson:"lng"`
	Address string  `json:"address,omitempty" bson:"address,omitempty"`
}

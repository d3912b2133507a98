package response_models

import "strings"

type ActivityType string

const (
	ActivityGeneral    ActivityType = "GENERAL"
	ActivityFlight     ActivityType = "FLIGHT"
	ActivityHotel      ActivityType = "HOTEL"
	ActivityAttraction ActivityType = "ATTRACTION"
	ActivityMeal       ActivityType = "MEAL"
	ActivityTransport  ActivityType = "TRANSPORT"
)

var activityTypes = []ActivityType{
	ActivityGeneral,
	ActivityFlight,
	ActivityHotel,
	ActivityAttraction,
	ActivityMeal,
	ActivityTransport,
}

// ParseActivityType matches case-insensitively and falls back to GENERAL.
func ParseActivityType(s string) ActivityType {
	s = strings.TrimSpace(s)
	for _, t := range activityTypes {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return ActivityGeneral
}

type HotelInfo struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Image   string `json:"image,omitempty"`
}

type Activity struct {
	Time        string       `json:"time"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ActivityType `json:"type"`
	Image       string       `json:"image,omitempty"`
	ImageSource string       `json:"image_source,omitempty"`
	ImageCredit string       `json:"image_credit,omitempty"`
	Hotel       *HotelInfo   `json:"hotel,omitempty"`
}

type DayItinerary struct {
	DayNumber  int        `json:"day_number"`
	Date       string     `json:"date"`
	DateFull   string     `json:"date_full"`
	Activities []Activity `json:"activities"`
	ImageURL   string     `json:"image_url"`
}

type ItineraryResponse struct {
	Destination    string         `json:"destination"`
	HeaderImageURL string         `json:"header_image_url"`
	SourceTier     string         `json:"source_tier"`
	Days           []DayItinerary `json:"days"`
}

type PromptPreviewResponse struct {
	Style  string `json:"style"`
	Prompt string `json:"prompt"`
}

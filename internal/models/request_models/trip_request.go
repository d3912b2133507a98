package request_models

import "strings"

// TripRequest carries the trip parameters a user typed into the planner.
// Dates are expected in "02 Jan 2006" style but are never required to parse.
type TripRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PartySize   int    `json:"party_size" binding:"omitempty,min=0"`
	Budget      string `json:"budget"`
	Notes       string `json:"notes"`
	// Style overrides the configured prompt style: structured or free_text.
	Style string `json:"style" binding:"omitempty,oneof=structured free_text"`
}

// Normalized returns a copy with every string field trimmed.
func (r TripRequest) Normalized() TripRequest {
	r.Destination = strings.TrimSpace(r.Destination)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Budget = strings.TrimSpace(r.Budget)
	r.Notes = strings.TrimSpace(r.Notes)
	r.Style = strings.TrimSpace(r.Style)
	return r
}

// ParseItineraryRequest lets a client submit model output it fetched itself.
type ParseItineraryRequest struct {
	Raw  string      `json:"raw"`
	Trip TripRequest `json:"trip"`
}

type GenerateTextRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

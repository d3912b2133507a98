package services

import (
	"fmt"
	"strings"
	"travelwise/internal/models/request_models"
)

type PromptStyle string

const (
	PromptStyleStructured PromptStyle = "structured"
	PromptStyleFreeText   PromptStyle = "free_text"
)

// ParsePromptStyle falls back to the structured style for anything unknown.
func ParsePromptStyle(s string) PromptStyle {
	switch PromptStyle(strings.ToLower(strings.TrimSpace(s))) {
	case PromptStyleFreeText:
		return PromptStyleFreeText
	default:
		return PromptStyleStructured
	}
}

type PromptBuilderInterface interface {
	BuildStructuredPrompt(req request_models.TripRequest) string
	BuildFreeTextPrompt(req request_models.TripRequest) string
	Build(req request_models.TripRequest, style PromptStyle) string
}

type PromptBuilder struct{}

func NewPromptBuilder() PromptBuilderInterface {
	return &PromptBuilder{}
}

func (p *PromptBuilder) Build(req request_models.TripRequest, style PromptStyle) string {
	if style == PromptStyleFreeText {
		return p.BuildFreeTextPrompt(req)
	}
	return p.BuildStructuredPrompt(req)
}

const structuredPromptTemplate = `You are an expert travel planner. Generate a detailed, day-by-day itinerary based on the following details.
Your response MUST be a single, valid JSON object and nothing else. Do not include any text or formatting like ` + "```json" + ` before or after the JSON.

Destination: %s
Travel Dates: %s to %s
Number of People: %s
Budget: %s
Additional Preferences: %s

Structure your response using the following JSON format:
{
  "itinerary": [
    {
      "day": 1,
      "date": "%s",
      "activities": [
        {
          "time": "Morning",
          "title": "Arrival and Hotel Check-in",
          "description": "Arrive at the destination, transfer to your hotel, and check in.",
          "type": "HOTEL"
        },
        {
          "time": "Afternoon",
          "title": "Explore the Local Market",
          "description": "Visit a local market for some initial sightseeing and to get a feel for the city.",
          "type": "ATTRACTION"
        }
      ]
    }
  ]
}

- The root object must contain a single key: ` + "`itinerary`" + `, which is an array of day objects.
- Each object in the ` + "`itinerary`" + ` array must have a ` + "`day`" + ` number, a ` + "`date`" + ` string, and an ` + "`activities`" + ` array.
- Each object in the ` + "`activities`" + ` array must have a ` + "`time`, `title`, `description`" + `, and a ` + "`type`" + `.
- The ` + "`type`" + ` field must be one of the following exact strings: FLIGHT, HOTEL, MEAL, ATTRACTION, TRANSPORT, GENERAL.
- Ensure the dates for each day are correctly incremented starting from the provided start date.
- Provide a complete plan for the entire duration of the trip.`

// BuildStructuredPrompt asks for a single JSON object rooted at "itinerary".
func (p *PromptBuilder) BuildStructuredPrompt(req request_models.TripRequest) string {
	req = req.Normalized()

	people := "1"
	if req.PartySize > 0 {
		people = fmt.Sprintf("%d", req.PartySize)
	}
	budget := orDefault(req.Budget, "Flexible")
	notes := orDefault(req.Notes, "None")

	return fmt.Sprintf(structuredPromptTemplate,
		req.Destination,
		req.StartDate, req.EndDate,
		people,
		budget,
		notes,
		req.StartDate,
	)
}

// BuildFreeTextPrompt renders only the fields that were filled in.
func (p *PromptBuilder) BuildFreeTextPrompt(req request_models.TripRequest) string {
	req = req.Normalized()

	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s.\n", req.Destination)

	switch {
	case req.StartDate != "" && req.EndDate != "":
		fmt.Fprintf(&b, "Dates: %s to %s\n", req.StartDate, req.EndDate)
	case req.StartDate != "":
		fmt.Fprintf(&b, "Start date: %s\n", req.StartDate)
	case req.EndDate != "":
		fmt.Fprintf(&b, "End date: %s\n", req.EndDate)
	}
	if req.PartySize > 0 {
		fmt.Fprintf(&b, "Travelers: %d\n", req.PartySize)
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Preferences: %s\n", req.Notes)
	}

	b.WriteString("\nWrite a concise day-by-day itinerary. Start each day with a line like \"Day 1\" ")
	b.WriteString("and put the time of day at the start of each activity line. Cover:\n")
	b.WriteString("- top attractions worth visiting\n")
	b.WriteString("- where to stay, with budget, mid-range and luxury options\n")
	b.WriteString("- local transport and typical costs\n")
	b.WriteString("- food and restaurant recommendations\n")
	b.WriteString("- a short budget summary at the end")

	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

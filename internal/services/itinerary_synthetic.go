package services

import (
	"fmt"
	"time"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
)

type activityTemplate struct {
	time        string
	title       string
	description string
	kind        response_models.ActivityType
}

var (
	arrivalDayTemplate = []activityTemplate{
		{"10:00 AM", "Arrival and Hotel Check-in", "Arrive in %s, transfer to your hotel and check in.", response_models.ActivityHotel},
		{"1:00 PM", "Lunch at a Local Restaurant", "Try the local specialties near your hotel in %s.", response_models.ActivityMeal},
		{"3:00 PM", "Explore Downtown", "Walk around downtown %s to get a feel for the city.", response_models.ActivityAttraction},
		{"7:30 PM", "Welcome Dinner", "Enjoy dinner at a popular restaurant in %s.", response_models.ActivityMeal},
	}
	secondDayTemplate = []activityTemplate{
		{"9:00 AM", "Guided Morning Tour", "Join a guided tour of the best-known sights in %s.", response_models.ActivityAttraction},
		{"1:00 PM", "Lunch", "Have lunch at a well-reviewed spot in %s.", response_models.ActivityMeal},
		{"3:00 PM", "Cultural Visit", "Visit a museum or historic site in %s.", response_models.ActivityAttraction},
		{"7:00 PM", "Evening Activity", "Experience the evening atmosphere of %s with a show or night market.", response_models.ActivityGeneral},
	}
	genericDayTemplate = []activityTemplate{
		{"9:00 AM", "Morning Exploration", "Discover a new neighbourhood of %s.", response_models.ActivityAttraction},
		{"1:00 PM", "Lunch", "Sample another local dish in %s.", response_models.ActivityMeal},
		{"3:00 PM", "Afternoon Sightseeing", "See more of the landmarks around %s.", response_models.ActivityAttraction},
		{"7:30 PM", "Dinner", "End the day with dinner in %s.", response_models.ActivityMeal},
	}
)

func templateForDay(dayNumber int) []activityTemplate {
	switch dayNumber {
	case 1:
		return arrivalDayTemplate
	case 2:
		return secondDayTemplate
	default:
		return genericDayTemplate
	}
}

func syntheticDay(dayNumber int, date time.Time, destination string) response_models.DayItinerary {
	if destination == "" {
		destination = "your destination"
	}

	tmpl := templateForDay(dayNumber)
	activities := make([]response_models.Activity, 0, len(tmpl))
	for _, t := range tmpl {
		activities = append(activities, response_models.Activity{
			Time:        t.time,
			Title:       t.title,
			Description: fmt.Sprintf(t.description, destination),
			Type:        t.kind,
		})
	}
	return newDay(dayNumber, FormatTripDate(date), activities)
}

// tripSpan resolves the request dates, using today for any that do not
// parse. The day count is clamped to [1, MaxDays].
func (p *ItineraryParser) tripSpan(req request_models.TripRequest) (time.Time, int) {
	today := startOfDay(p.now())

	start, ok := ParseTripDate(req.StartDate)
	if !ok {
		start = today
	}
	end, ok := ParseTripDate(req.EndDate)
	if !ok {
		end = today
	}

	count := InclusiveDayCount(start, end)
	if count < 1 {
		count = 1
	}
	if count > p.opts.MaxDays {
		count = p.opts.MaxDays
	}
	return start, count
}

func (p *ItineraryParser) synthesize(req request_models.TripRequest) []response_models.DayItinerary {
	start, count := p.tripSpan(req)

	days := make([]response_models.DayItinerary, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, syntheticDay(i+1, dayAfter(start, i), req.Destination))
	}
	return days
}

// mergeSynthetic appends synthetic days after a heuristic result that came
// up short of the requested span. It only applies when both dates parse.
func (p *ItineraryParser) mergeSynthetic(days []response_models.DayItinerary, req request_models.TripRequest) []response_models.DayItinerary {
	if _, ok := ParseTripDate(req.StartDate); !ok {
		return days
	}
	if _, ok := ParseTripDate(req.EndDate); !ok {
		return days
	}

	start, count := p.tripSpan(req)
	for n := len(days) + 1; n <= count; n++ {
		days = append(days, syntheticDay(n, dayAfter(start, n-1), req.Destination))
	}
	return days
}

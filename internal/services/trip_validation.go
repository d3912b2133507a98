package services

import (
	"strconv"
	"strings"
	"travelwise/internal/models/request_models"
	"travelwise/pkg/utils"
	"unicode"
)

// ValidateTripRequest checks the fields the HTTP edge is responsible for.
// Dates that do not parse are accepted; the parser falls back to today.
func ValidateTripRequest(req request_models.TripRequest) error {
	req = req.Normalized()

	if req.Destination == "" {
		return utils.ErrInvalidInput
	}
	if req.PartySize < 0 {
		return utils.ErrInvalidInput
	}

	start, okStart := ParseTripDate(req.StartDate)
	end, okEnd := ParseTripDate(req.EndDate)
	if okStart && okEnd && end.Before(start) {
		return utils.ErrInvalidDateRange
	}

	if req.Budget != "" {
		if _, ok := ParseBudget(req.Budget); !ok {
			return utils.ErrInvalidBudget
		}
	}
	return nil
}

// ParseBudget reads amounts like "50000", "$1,200" or "1500 USD".
func ParseBudget(s string) (float64, bool) {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

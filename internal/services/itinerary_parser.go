package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
)

type ParseTier string

const (
	TierStructured ParseTier = "structured"
	TierHeuristic  ParseTier = "heuristic"
	TierSynthetic  ParseTier = "synthetic"
)

// ParserOptions holds the tuning constants of the heuristic tier.
type ParserOptions struct {
	MinProseLength      int
	BulletPrefixes      []string
	TitleMaxLength      int
	ProseTitleMaxLength int
	// MaxDays caps the synthetic plan.
	MaxDays int
	// MergeSynthetic pads a short heuristic result with synthetic days.
	MergeSynthetic bool
}

func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		MinProseLength:      20,
		BulletPrefixes:      []string{"-", "*"},
		TitleMaxLength:      60,
		ProseTitleMaxLength: 50,
		MaxDays:             30,
		MergeSynthetic:      true,
	}
}

func (o ParserOptions) normalized() ParserOptions {
	d := DefaultParserOptions()
	if o.MinProseLength <= 0 {
		o.MinProseLength = d.MinProseLength
	}
	if o.BulletPrefixes == nil {
		o.BulletPrefixes = d.BulletPrefixes
	}
	if o.TitleMaxLength <= 0 {
		o.TitleMaxLength = d.TitleMaxLength
	}
	if o.ProseTitleMaxLength <= 0 {
		o.ProseTitleMaxLength = d.ProseTitleMaxLength
	}
	if o.MaxDays <= 0 {
		o.MaxDays = d.MaxDays
	}
	return o
}

type ParseResult struct {
	Days []response_models.DayItinerary
	Tier ParseTier
}

type ItineraryParserInterface interface {
	Parse(raw string, req request_models.TripRequest) ParseResult
}

type ItineraryParser struct {
	opts ParserOptions
	now  func() time.Time
}

// NewItineraryParser builds a parser. now supplies "today" for requests
// without usable dates; nil means time.Now.
func NewItineraryParser(opts ParserOptions, now func() time.Time) *ItineraryParser {
	if now == nil {
		now = time.Now
	}
	return &ItineraryParser{
		opts: opts.normalized(),
		now:  now,
	}
}

// Parse never fails. Structured JSON is tried first, then line heuristics,
// then a synthetic plan built from the date range alone.
func (p *ItineraryParser) Parse(raw string, req request_models.TripRequest) ParseResult {
	req = req.Normalized()

	if days, ok := p.parseStructured(raw, req); ok {
		return ParseResult{Days: days, Tier: TierStructured}
	}

	if days := p.parseHeuristic(raw, req); len(days) > 0 {
		if p.opts.MergeSynthetic {
			days = p.mergeSynthetic(days, req)
		}
		return ParseResult{Days: days, Tier: TierHeuristic}
	}

	return ParseResult{Days: p.synthesize(req), Tier: TierSynthetic}
}

// stripCodeFence removes a leading ```json (or bare ```) and a trailing ```.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type structuredEnvelope struct {
	Itinerary []json.RawMessage `json:"itinerary"`
	Days      []json.RawMessage `json:"days"`
}

type structuredDay struct {
	Day        json.RawMessage   `json:"day"`
	Date       json.RawMessage   `json:"date"`
	Activities []json.RawMessage `json:"activities"`
}

type structuredActivity struct {
	Time        string                     `json:"time"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Type        string                     `json:"type"`
	Image       string                     `json:"image"`
	ImageSource string                     `json:"image_source"`
	ImageCredit string                     `json:"image_credit"`
	Hotel       *response_models.HotelInfo `json:"hotel"`
}

// parseStructured tries the fenced body first, then the first balanced JSON
// object in the text, which covers replies with a prose preamble or a
// trailing note around the fence.
func (p *ItineraryParser) parseStructured(raw string, req request_models.TripRequest) ([]response_models.DayItinerary, bool) {
	body := stripCodeFence(raw)
	if days, ok := p.decodeStructured(body, req); ok {
		return days, true
	}
	if obj := extractJSONObject(raw); obj != "" && obj != body {
		return p.decodeStructured(obj, req)
	}
	return nil, false
}

// extractJSONObject returns the first brace-balanced object in s, skipping
// braces inside JSON strings. It returns "" when no object closes.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func (p *ItineraryParser) decodeStructured(body string, req request_models.TripRequest) ([]response_models.DayItinerary, bool) {
	if body == "" {
		return nil, false
	}

	var env structuredEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, false
	}

	entries := env.Itinerary
	if len(entries) == 0 {
		entries = env.Days
	}

	start, hasStart := ParseTripDate(req.StartDate)

	days := make([]response_models.DayItinerary, 0, len(entries))
	for _, entry := range entries {
		var d structuredDay
		if err := json.Unmarshal(entry, &d); err != nil {
			continue
		}

		dayNumber, ok := decodeDayNumber(d.Day)
		if !ok {
			continue
		}

		activities := make([]response_models.Activity, 0, len(d.Activities))
		for _, rawActivity := range d.Activities {
			if a, ok := decodeActivity(rawActivity); ok {
				activities = append(activities, a)
			}
		}
		if len(activities) == 0 {
			continue
		}

		date := strings.TrimSpace(scalarString(d.Date))
		if date == "" && hasStart {
			date = FormatTripDate(start.AddDate(0, 0, dayNumber-1))
		}

		days = append(days, newDay(dayNumber, date, activities))
	}

	return days, len(days) > 0
}

// decodeDayNumber accepts only whole JSON numbers from 1 upwards.
func decodeDayNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// decodeActivity tries the typed shape first and then a loose map with
// alternate key names. An activity without a title is rejected.
func decodeActivity(raw json.RawMessage) (response_models.Activity, bool) {
	var strict structuredActivity
	if err := json.Unmarshal(raw, &strict); err == nil && strings.TrimSpace(strict.Title) != "" {
		return response_models.Activity{
			Time:        strings.TrimSpace(strict.Time),
			Title:       strings.TrimSpace(strict.Title),
			Description: strings.TrimSpace(strict.Description),
			Type:        response_models.ParseActivityType(strict.Type),
			Image:       strict.Image,
			ImageSource: strict.ImageSource,
			ImageCredit: strict.ImageCredit,
			Hotel:       validHotel(strict.Hotel),
		}, true
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return response_models.Activity{}, false
	}

	title := lookupString(loose, "title", "name", "activity")
	if title == "" {
		return response_models.Activity{}, false
	}

	a := response_models.Activity{
		Time:        lookupString(loose, "time", "time_of_day", "timeOfDay"),
		Title:       title,
		Description: lookupString(loose, "description", "details", "desc"),
		Type:        response_models.ParseActivityType(lookupString(loose, "type", "category")),
		Image:       lookupString(loose, "image", "image_url", "imageUrl"),
		ImageSource: lookupString(loose, "image_source", "imageSource"),
		ImageCredit: lookupString(loose, "image_credit", "imageCredit"),
	}

	if rawHotel, ok := loose["hotel"]; ok {
		var h response_models.HotelInfo
		if json.Unmarshal(rawHotel, &h) == nil {
			a.Hotel = validHotel(&h)
		}
	}
	return a, true
}

func validHotel(h *response_models.HotelInfo) *response_models.HotelInfo {
	if h == nil || strings.TrimSpace(h.Name) == "" {
		return nil
	}
	return h
}

// lookupString returns the first non-blank value among keys. Keys match
// case-insensitively and numbers are rendered as text.
func lookupString(m map[string]json.RawMessage, keys ...string) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, key := range keys {
		if s := strings.TrimSpace(scalarString(m[key])); s != "" {
			return s
		}
		for _, k := range names {
			if !strings.EqualFold(k, key) {
				continue
			}
			if s := strings.TrimSpace(scalarString(m[k])); s != "" {
				return s
			}
		}
	}
	return ""
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return fmt.Sprintf("%t", b)
	}
	return ""
}

func newDay(dayNumber int, dateFull string, activities []response_models.Activity) response_models.DayItinerary {
	return response_models.DayItinerary{
		DayNumber:  dayNumber,
		Date:       ShortDate(dateFull),
		DateFull:   dateFull,
		Activities: activities,
		ImageURL:   DayImageURL(dayNumber),
	}
}

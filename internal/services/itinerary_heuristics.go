package services

import (
	"regexp"
	"strings"
	"time"
	"travelwise/internal/models/request_models"
	"travelwise/internal/models/response_models"
)

var (
	// "Day", "Day 3", "## Day 2: Old Town", "**Day 4**". "Daylight" and
	// "Day trip to ..." are not markers.
	dayMarkerPattern = regexp.MustCompile(`(?i)^[#*\s]*day(?:\s*\d+\b|\s*[:*#.\-–—]*\s*$)`)

	clockPattern  = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?:\s*[ap]\.?m\.?)?`)
	periodPattern = regexp.MustCompile(`(?i)\b(?:morning|afternoon|evening|night)\b`)

	// A time token at the very start of the line, after any bullet.
	leadingTimePattern = regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}(?:\s*[ap]\.?m\.?)?(?:\s*[-–]\s*\d{1,2}:\d{2}(?:\s*[ap]\.?m\.?)?)?|morning|afternoon|evening|night)\b`)
)

var activityKeywords = []struct {
	kind     response_models.ActivityType
	keywords []string
}{
	{response_models.ActivityFlight, []string{"flight", "airport"}},
	{response_models.ActivityHotel, []string{"hotel", "stay", "check-in", "check in"}},
	{response_models.ActivityAttraction, []string{"museum", "temple", "beach"}},
	{response_models.ActivityMeal, []string{"restaurant", "meal", "breakfast", "lunch", "dinner"}},
	{response_models.ActivityTransport, []string{"bus", "taxi", "train"}},
}

// classifyActivity picks a type from keywords in the title.
func classifyActivity(title string) response_models.ActivityType {
	lower := strings.ToLower(title)
	for _, group := range activityKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.kind
			}
		}
	}
	return response_models.ActivityGeneral
}

func isDayMarker(line string) bool {
	return dayMarkerPattern.MatchString(line)
}

func isTimeLine(line string) bool {
	return clockPattern.MatchString(line) || periodPattern.MatchString(line)
}

func (p *ItineraryParser) isBullet(line string) bool {
	for _, prefix := range p.opts.BulletPrefixes {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (p *ItineraryParser) stripBullet(line string) string {
	for _, prefix := range p.opts.BulletPrefixes {
		if prefix != "" && strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

// timeActivity splits a leading time token off the line. When the time
// appears mid-sentence the period word is used as the time and the whole
// line becomes the title.
func (p *ItineraryParser) timeActivity(line string) (response_models.Activity, bool) {
	text := strings.Trim(p.stripBullet(line), "*_ ")

	var slot, rest string
	if loc := leadingTimePattern.FindStringSubmatchIndex(text); loc != nil {
		slot = text[loc[2]:loc[3]]
		rest = strings.TrimLeft(text[loc[1]:], " :-–—,.)")
	} else {
		if m := clockPattern.FindString(text); m != "" {
			slot = m
		} else {
			slot = periodPattern.FindString(text)
		}
		rest = text
	}

	rest = strings.Trim(strings.TrimSpace(rest), "*_ ")
	if rest == "" {
		return response_models.Activity{}, false
	}

	title := truncateRunes(rest, p.opts.TitleMaxLength)
	a := response_models.Activity{
		Time:  capitalize(strings.TrimSpace(slot)),
		Title: title,
		Type:  classifyActivity(title),
	}
	if title != rest {
		a.Description = rest
	}
	return a, true
}

func (p *ItineraryParser) proseActivity(line string) response_models.Activity {
	return response_models.Activity{
		Title:       truncateRunes(line, p.opts.ProseTitleMaxLength),
		Description: line,
		Type:        response_models.ActivityGeneral,
	}
}

// parseHeuristic walks the text line by line. A day marker closes the day
// collected so far; a marker seen before any activity only labels the day
// that is already open, so numbering stays contiguous.
func (p *ItineraryParser) parseHeuristic(raw string, req request_models.TripRequest) []response_models.DayItinerary {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	current, ok := ParseTripDate(req.StartDate)
	if !ok {
		current = startOfDay(p.now())
	}

	var (
		days    []response_models.DayItinerary
		pending []response_models.Activity
		day     = 1
	)

	flush := func() {
		if len(pending) == 0 {
			return
		}
		days = append(days, newDay(day, FormatTripDate(current), pending))
		pending = nil
		day++
		current = current.AddDate(0, 0, 1)
	}

	for _, rawLine := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case isDayMarker(line):
			flush()
		case isTimeLine(line):
			if a, ok := p.timeActivity(line); ok {
				pending = append(pending, a)
			}
		case len([]rune(line)) > p.opts.MinProseLength && !p.isBullet(line):
			pending = append(pending, p.proseActivity(line))
		}
	}
	flush()

	return days
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func dayAfter(t time.Time, n int) time.Time {
	return startOfDay(t).AddDate(0, 0, n)
}

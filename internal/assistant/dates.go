package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateParser resolves loosely written dates and clock times in a single
// fixed timezone. It never fails hard: callers check the ok result and
// substitute their documented default.
type DateParser struct {
	loc *time.Location
}

func NewDateParser(loc *time.Location) *DateParser {
	return &DateParser{loc: loc}
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"January 2",
	"Jan 2",
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseDate resolves free text to a calendar date (midnight in the
// parser's zone), relative to base. Only the calendar date of the result
// is meaningful; the time of day comes from ParseClock.
func (p *DateParser) ParseDate(text string, base time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return time.Time{}, false
	}
	base = base.In(p.loc)

	switch text {
	case "today":
		return p.startOfDay(base), true
	case "tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 1)), true
	case "day after tomorrow":
		return p.startOfDay(base.AddDate(0, 0, 2)), true
	}

	// "next friday", or a bare weekday name meaning its next occurrence.
	dayName := strings.TrimPrefix(text, "next ")
	if wd, ok := weekdays[dayName]; ok {
		daysUntil := int(wd - base.Weekday())
		if daysUntil <= 0 {
			daysUntil += 7
		}
		return p.startOfDay(base.AddDate(0, 0, daysUntil)), true
	}

	// "in 3 days", "in 2 weeks"
	if m := inDurationRe.FindStringSubmatch(text); m != nil {
		amount, _ := strconv.Atoi(m[1])
		if strings.HasPrefix(m[2], "week") {
			amount *= 7
		}
		return p.startOfDay(base.AddDate(0, 0, amount)), true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, p.loc); err == nil {
			// Layouts without a year parse to year zero; pin those to the
			// base year.
			if t.Year() == 0 {
				t = time.Date(base.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks)$`)
	clockRe      = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// ParseClock resolves free text like "1pm", "13:30" or "9:00 am" to an
// hour and minute. Only hour and minute of the result are meaningful.
func (p *DateParser) ParseClock(text string) (hour, minute int, ok bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := m[3]

	if meridiem == "" {
		if hour > 23 || minute > 59 {
			return 0, 0, false
		}
		return hour, minute, true
	}

	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, false
	}
	if hour == 12 {
		hour = 0
	}
	if meridiem == "pm" {
		hour += 12
	}
	return hour, minute, true
}

func (p *DateParser) startOfDay(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}

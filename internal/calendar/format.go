package calendar

import (
	"time"

	"assistant-service/internal/interval"
)

// periodLayout is the locale-style presentation format with timezone,
// e.g. "09/15/2024 1:30 PM UTC".
const periodLayout = "01/02/2006 3:04 PM MST"

// FormattedPeriod is a TimePeriod rendered for presentation.
type FormattedPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FormattedFreeSlots mirrors FreeSlotResult with every period rendered as
// a date/time string in the presentation timezone.
type FormattedFreeSlots struct {
	IndividualBusyTimes map[string][]FormattedPeriod `json:"individualBusyTimes"`
	CombinedFreeSlots   []FormattedPeriod            `json:"combinedFreeSlots"`
}

// FormatPeriod renders a single period in the given location.
func FormatPeriod(p interval.TimePeriod, loc *time.Location) FormattedPeriod {
	return FormattedPeriod{
		Start: p.Start.In(loc).Format(periodLayout),
		End:   p.End.In(loc).Format(periodLayout),
	}
}

// Format renders the whole result for presentation. Each collection is
// formatted independently; the raw result is left untouched.
func (r *FreeSlotResult) Format(loc *time.Location) FormattedFreeSlots {
	busy := make(map[string][]FormattedPeriod, len(r.IndividualBusyTimes))
	for id, periods := range r.IndividualBusyTimes {
		formatted := make([]FormattedPeriod, 0, len(periods))
		for _, p := range periods {
			formatted = append(formatted, FormatPeriod(p, loc))
		}
		busy[id] = formatted
	}

	free := make([]FormattedPeriod, 0, len(r.CombinedFreeSlots))
	for _, p := range r.CombinedFreeSlots {
		free = append(free, FormatPeriod(p, loc))
	}

	return FormattedFreeSlots{
		IndividualBusyTimes: busy,
		CombinedFreeSlots:   free,
	}
}

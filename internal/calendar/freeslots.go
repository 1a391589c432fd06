package calendar

import (
	"context"
	"fmt"
	"time"

	"assistant-service/internal/interval"
)

// FreeSlotResult holds the raw outcome of a free/busy query: each
// calendar's own busy periods plus the slots free for every calendar at
// once. Computation is done on instants; formatting for presentation is
// a separate, final step.
type FreeSlotResult struct {
	IndividualBusyTimes map[string][]interval.TimePeriod `json:"individualBusyTimes"`
	CombinedFreeSlots   []interval.TimePeriod            `json:"combinedFreeSlots"`
}

// FindFreeMeetingSlots queries busy periods of the primary calendar plus
// one calendar per attendee over the next rangeDays days, merges all busy
// periods together and derives the complementary free slots. Merging the
// union of busy periods before complementing is equivalent to
// intersecting per-person free time, so the combined slots are free for
// everyone simultaneously.
func FindFreeMeetingSlots(ctx context.Context, provider Provider, token string, rangeDays int, attendees []string) (*FreeSlotResult, error) {
	start := time.Now()
	end := start.AddDate(0, 0, rangeDays)

	calendarIDs := append([]string{primaryCalendarID}, attendees...)

	busyByCalendar, err := provider.QueryFreeBusy(ctx, token, start, end, calendarIDs)
	if err != nil {
		return nil, fmt.Errorf("free/busy query: %w", err)
	}

	var allBusy []interval.TimePeriod
	for _, periods := range busyByCalendar {
		allBusy = append(allBusy, periods...)
	}

	merged := interval.Merge(allBusy)
	free := interval.DeriveFree(interval.TimePeriod{Start: start, End: end}, merged)

	return &FreeSlotResult{
		IndividualBusyTimes: busyByCalendar,
		CombinedFreeSlots:   free,
	}, nil
}

package calendar

import (
	"context"
	"time"

	"assistant-service/internal/interval"
)

// Provider is the subset of the external calendar API the assistant
// needs. Every call carries a bearer access token with calendar scope;
// token validity is a caller-side precondition.
type Provider interface {
	// ListEvents returns single-occurrence events on the primary calendar
	// between timeMin and timeMax, ordered by start time.
	ListEvents(ctx context.Context, token string, timeMin, timeMax time.Time) ([]Event, error)

	// QueryFreeBusy returns the busy periods of each requested calendar
	// within [timeMin, timeMax], keyed by calendar identifier. All
	// calendars are queried in one provider call.
	QueryFreeBusy(ctx context.Context, token string, timeMin, timeMax time.Time, calendarIDs []string) (map[string][]interval.TimePeriod, error)

	// CreateEvent inserts a new event on the primary calendar and returns
	// the provider's representation of it.
	CreateEvent(ctx context.Context, token string, details EventDetails) (*Event, error)
}

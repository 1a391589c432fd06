package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"assistant-service/internal/interval"
)

const (
	primaryCalendarID = "primary"
	maxListResults    = 250
)

// GoogleProvider talks to the Google Calendar v3 API. A fresh service is
// built per call from the request's access token; nothing is pooled or
// cached across requests.
type GoogleProvider struct {
	timeout time.Duration
}

// NewGoogleProvider returns a provider whose underlying HTTP client uses
// the given timeout for every external call.
func NewGoogleProvider(timeout time.Duration) *GoogleProvider {
	return &GoogleProvider{timeout: timeout}
}

func (p *GoogleProvider) service(ctx context.Context, token string) (*gcal.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = p.timeout

	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return srv, nil
}

func (p *GoogleProvider) ListEvents(ctx context.Context, token string, timeMin, timeMax time.Time) ([]Event, error) {
	srv, err := p.service(ctx, token)
	if err != nil {
		return nil, err
	}

	events, err := srv.Events.List(primaryCalendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxListResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	var out []Event
	for _, item := range events.Items {
		ev := Event{
			ID:          item.Id,
			Summary:     item.Summary,
			Description: item.Description,
			HTMLLink:    item.HtmlLink,
			Status:      item.Status,
		}
		ev.Start = parseEventTime(item.Start)
		ev.End = parseEventTime(item.End)
		for _, att := range item.Attendees {
			ev.Attendees = append(ev.Attendees, att.Email)
		}
		out = append(out, ev)
	}
	return out, nil
}

func (p *GoogleProvider) QueryFreeBusy(ctx context.Context, token string, timeMin, timeMax time.Time, calendarIDs []string) (map[string][]interval.TimePeriod, error) {
	srv, err := p.service(ctx, token)
	if err != nil {
		return nil, err
	}

	items := make([]*gcal.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &gcal.FreeBusyRequestItem{Id: id}
	}

	resp, err := srv.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query free/busy: %w", err)
	}

	busy := make(map[string][]interval.TimePeriod, len(resp.Calendars))
	for id, cal := range resp.Calendars {
		periods := make([]interval.TimePeriod, 0, len(cal.Busy))
		for _, b := range cal.Busy {
			start, err := time.Parse(time.RFC3339, b.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, b.End)
			if err != nil {
				continue
			}
			periods = append(periods, interval.TimePeriod{Start: start, End: end})
		}
		busy[id] = periods
	}
	return busy, nil
}

func (p *GoogleProvider) CreateEvent(ctx context.Context, token string, details EventDetails) (*Event, error) {
	srv, err := p.service(ctx, token)
	if err != nil {
		return nil, err
	}

	attendees := make([]*gcal.EventAttendee, len(details.Attendees))
	for i, email := range details.Attendees {
		attendees[i] = &gcal.EventAttendee{Email: email}
	}

	event := &gcal.Event{
		Summary:     details.Summary,
		Description: details.Description,
		Start: &gcal.EventDateTime{
			DateTime: details.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: details.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Attendees: attendees,
	}

	created, err := srv.Events.Insert(primaryCalendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	out := &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		HTMLLink:    created.HtmlLink,
		Status:      created.Status,
		Attendees:   details.Attendees,
	}
	out.Start = parseEventTime(created.Start)
	out.End = parseEventTime(created.End)
	return out, nil
}

// parseEventTime handles both timed events (DateTime) and all-day events
// (Date only).
func parseEventTime(edt *gcal.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

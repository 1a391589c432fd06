package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"assistant-service/internal/calendar"
)

// Documented booking defaults: applied whenever the extracted entities
// cannot be resolved, so a booking always succeeds if the calendar write
// succeeds.
const (
	defaultAttendee    = "default@example.com"
	defaultSummary     = "General Meeting"
	defaultDescription = "No description provided"
	defaultBookingDate = "2024-09-15"
	defaultStartHour   = 10
	defaultPurpose     = "No specific agenda"

	meetingDuration = time.Hour
)

const detailsPromptFmt = `I want to schedule a meeting with the following details:
- Attendees: %[2]s
- Date: %[3]s
- Time: %[4]s
- Purpose/Agenda: %[5]s

Please provide a summary and description in the following JSON format, wrapped between ' %[1]s ' delimiters (two hashtags separated by a plus sign):
%[1]s
{
  "summary": "<summary of the meeting>",
  "description": "<detailed description of the meeting>"
}
%[1]s`

// bookEvent normalizes loosely-structured entities into fully-qualified
// event details and creates the event. Date, time, attendees, summary and
// description all degrade to documented defaults; only the calendar write
// itself can fail the booking.
func (a *Assistant) bookEvent(ctx context.Context, token string, ents Entities) (string, error) {
	attendees := ents.Attendees
	if len(attendees) == 0 {
		attendees = []string{defaultAttendee}
	}

	start := a.resolveStart(ents.Date, ents.Time, time.Now())
	end := start.Add(meetingDuration)

	summary, description := a.generateDetails(ctx, ents, attendees)

	created, err := a.provider.CreateEvent(ctx, token, calendar.EventDetails{
		Summary:     summary,
		Description: description,
		Start:       start,
		End:         end,
		Attendees:   attendees,
	})
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}

	payload, err := json.Marshal(created)
	if err != nil {
		return "", fmt.Errorf("marshal created event: %w", err)
	}
	return fmt.Sprintf("Meeting successfully scheduled, details: %s", payload), nil
}

// resolveStart combines the free-text date and time into one timestamp.
// The date contributes only the calendar date and the time only hour and
// minute; each falls back to its own default independently.
func (a *Assistant) resolveStart(dateText, timeText string, base time.Time) time.Time {
	day, ok := a.dates.ParseDate(dateText, base)
	if !ok {
		day, _ = time.ParseInLocation("2006-01-02", defaultBookingDate, a.loc)
	}

	hour, minute := defaultStartHour, 0
	if h, m, ok := a.dates.ParseClock(timeText); ok {
		hour, minute = h, m
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, a.loc)
}

// generateDetails asks the text generator for a delimited JSON block with
// a summary and description. Any failure, from the model call to a
// missing field, degrades to the fixed defaults.
func (a *Assistant) generateDetails(ctx context.Context, ents Entities, attendees []string) (summary, description string) {
	summary = defaultSummary
	description = defaultDescription

	purpose := ents.Purpose
	if purpose == "" {
		purpose = defaultPurpose
	}

	prompt := fmt.Sprintf(detailsPromptFmt,
		jsonDelimiter,
		strings.Join(attendees, ", "),
		orNotSpecified(ents.Date),
		orNotSpecified(ents.Time),
		purpose)

	out, err := a.gen.GenerateContent(ctx, prompt)
	if err != nil {
		a.log.Warn("event details generation failed, using defaults", zap.Error(err))
		return summary, description
	}

	payload, err := ExtractDelimitedJSON(out)
	if err != nil {
		a.log.Warn("no usable JSON in details response, using defaults", zap.Error(err))
		return summary, description
	}

	var parsed struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		a.log.Warn("details JSON malformed, using defaults", zap.Error(err))
		return summary, description
	}

	if parsed.Summary != "" {
		summary = parsed.Summary
	}
	if parsed.Description != "" {
		description = parsed.Description
	}
	return summary, description
}

func orNotSpecified(s string) string {
	if s == "" {
		return "not specified"
	}
	return s
}

package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"assistant-service/internal/ai"
	"assistant-service/internal/calendar"
)

const horizonDays = 7

const (
	noMeetingsSentinel  = "No meetings found in the upcoming week."
	noFreeSlotsSentinel = "No free slots available in the upcoming week."
)

// Per-branch prompt templates. The structured data produced by a branch
// is interpolated into its template and sent to the text generator; the
// completion is the final user-facing response.
const (
	meetingInfoPromptFmt = "Please summarize my upcoming meetings based on the following information: %s"
	freeSlotsPromptFmt   = "Based on my availability, suggest possible meeting times from the following free slots: %s"
	bookEventPromptFmt   = "A user has just booked a meeting with the following details: %s, please confirm the booking to them with adequate details."
)

// Assistant turns a classified chat message into one calendar operation
// and a natural-language reply. It holds no per-request state; one
// instance serves all requests.
type Assistant struct {
	provider calendar.Provider
	gen      ai.Generator
	dates    *DateParser
	loc      *time.Location
	log      *zap.Logger
}

func New(provider calendar.Provider, gen ai.Generator, loc *time.Location, log *zap.Logger) *Assistant {
	return &Assistant{
		provider: provider,
		gen:      gen,
		dates:    NewDateParser(loc),
		loc:      loc,
		log:      log,
	}
}

// HandleMessage dispatches on the classified query type, builds the
// branch's structured data, wraps it in the branch's prompt template and
// returns the generator's completion. A failure of the final generation
// call fails the whole request; there is no per-branch recovery.
func (a *Assistant) HandleMessage(ctx context.Context, token, message string, cls Classification) (string, error) {
	var prompt string

	switch cls.QueryType {
	case QueryMeetingInfo:
		data, err := a.upcomingMeetings(ctx, token)
		if err != nil {
			return "", err
		}
		prompt = fmt.Sprintf(meetingInfoPromptFmt, data)

	case QueryFreeSlots:
		data, err := a.freeSlots(ctx, token)
		if err != nil {
			return "", err
		}
		prompt = fmt.Sprintf(freeSlotsPromptFmt, data)

	case QueryBookEvent:
		data, err := a.bookEvent(ctx, token, cls.Entities)
		if err != nil {
			return "", err
		}
		prompt = fmt.Sprintf(bookEventPromptFmt, data)

	default:
		// Unclassified messages go to the generator verbatim.
		prompt = message
	}

	reply, err := a.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}

func (a *Assistant) upcomingMeetings(ctx context.Context, token string) (string, error) {
	now := time.Now()
	events, err := a.provider.ListEvents(ctx, token, now, now.AddDate(0, 0, horizonDays))
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return noMeetingsSentinel, nil
	}

	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, fmt.Sprintf("Meeting: %s\nStart: %s\nEnd: %s",
			ev.Summary,
			ev.Start.In(a.loc).Format(time.RFC3339),
			ev.End.In(a.loc).Format(time.RFC3339)))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (a *Assistant) freeSlots(ctx context.Context, token string) (string, error) {
	result, err := calendar.FindFreeMeetingSlots(ctx, a.provider, token, horizonDays, nil)
	if err != nil {
		return "", err
	}
	if len(result.CombinedFreeSlots) == 0 {
		return noFreeSlotsSentinel, nil
	}

	lines := make([]string, 0, len(result.CombinedFreeSlots))
	for _, slot := range result.CombinedFreeSlots {
		f := calendar.FormatPeriod(slot, a.loc)
		lines = append(lines, fmt.Sprintf("Free Slot: %s - %s", f.Start, f.End))
	}
	return strings.Join(lines, "\n"), nil
}

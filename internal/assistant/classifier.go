package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"assistant-service/internal/ai"
)

// QueryType is the classified purpose of a chat message.
type QueryType string

const (
	QueryMeetingInfo QueryType = "meeting_info"
	QueryFreeSlots   QueryType = "free_slots"
	QueryBookEvent   QueryType = "book_event"
	QueryUnknown     QueryType = "unknown"
)

// Entities holds the structured data extracted from a chat message.
// Every field is optional; consumers default each one before use.
type Entities struct {
	Attendees []string `json:"attendees"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Purpose   string   `json:"purpose"`
}

// Classification is the classifier's verdict for one message. It is
// produced per request and never stored.
type Classification struct {
	QueryType QueryType `json:"query_type"`
	Entities  Entities  `json:"entities"`
}

const classifyPromptFmt = `Classify the user message below for a scheduling assistant.

Pick exactly one query_type:
- "meeting_info": the user asks about their existing meetings or events
- "free_slots": the user asks when they are free or available
- "book_event": the user wants to schedule or book a meeting
- "unknown": anything else

Extract entities where present: attendees (names or email addresses),
date (as written, e.g. "tomorrow"), time (as written, e.g. "1pm"),
purpose (what the meeting is about).

Reply with only a JSON object wrapped between two ' %[1]s ' delimiters:
%[1]s
{
  "query_type": "<meeting_info|free_slots|book_event|unknown>",
  "entities": {"attendees": [], "date": "", "time": "", "purpose": ""}
}
%[1]s

User message: %[2]s`

// Classifier extracts intent and entities from free text via the text
// generator. It is immutable after construction; one instance is shared
// across requests.
type Classifier struct {
	gen ai.Generator
	log *zap.Logger
}

func NewClassifier(gen ai.Generator, log *zap.Logger) *Classifier {
	return &Classifier{gen: gen, log: log}
}

// Classify never returns an error: any failure of the model call or of
// the output parsing degrades to the unknown query type, which downstream
// handles by passing the raw message through.
func (c *Classifier) Classify(ctx context.Context, message string) Classification {
	unknown := Classification{QueryType: QueryUnknown}

	out, err := c.gen.GenerateContent(ctx, fmt.Sprintf(classifyPromptFmt, jsonDelimiter, message))
	if err != nil {
		c.log.Warn("intent classification failed", zap.Error(err))
		return unknown
	}

	payload, err := ExtractDelimitedJSON(out)
	if err != nil {
		c.log.Warn("classifier output not parsable", zap.Error(err))
		return unknown
	}

	var cls Classification
	if err := json.Unmarshal(payload, &cls); err != nil {
		c.log.Warn("classifier JSON malformed", zap.Error(err))
		return unknown
	}

	switch cls.QueryType {
	case QueryMeetingInfo, QueryFreeSlots, QueryBookEvent:
		return cls
	default:
		return unknown
	}
}

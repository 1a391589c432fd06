package calendar

import "time"

// Event is a simplified representation of a provider calendar event.
type Event struct {
	ID          string    `json:"id,omitempty"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees,omitempty"`
	HTMLLink    string    `json:"html_link,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// EventDetails is the fully-resolved input for event creation: concrete
// timestamps and a non-empty attendee list, no free text left.
type EventDetails struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Attendees   []string  `json:"attendees"`
}

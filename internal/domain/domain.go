package domain

import "time"

// GroupKind classifies a message source by how it publishes pump signals.
type GroupKind string

const (
	GroupKindText    GroupKind = "text"
	GroupKindImage   GroupKind = "image"
	GroupKindUnknown GroupKind = "unknown"
)

func (k GroupKind) IsValid() bool {
	switch k {
	case GroupKindText, GroupKindImage, GroupKindUnknown:
		return true
	}
	return false
}

type Group struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Kind      GroupKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageContext is a raw chat message plus the metadata needed to route
// whatever is extracted from it.
type MessageContext struct {
	GroupID  int64     `json:"group_id"`
	Text     string    `json:"text"`
	Caption  string    `json:"caption,omitempty"`
	SentAt   time.Time `json:"sent_at"`
	HasImage bool      `json:"has_image,omitempty"`
}

// PumpSignal is what a single message says about an upcoming pump.
// Empty Coin/Exchange and a nil MinutesToPump mean "not found".
type PumpSignal struct {
	ID               int64     `json:"id,omitempty"`
	GroupID          int64     `json:"group_id"`
	Coin             string    `json:"coin,omitempty"`
	Exchange         string    `json:"exchange,omitempty"`
	MinutesToPump    *int      `json:"minutes_to_pump,omitempty"`
	Candidates       []string  `json:"candidates,omitempty"`
	FromLink         bool      `json:"from_link,omitempty"`
	InExpectedWindow bool      `json:"in_expected_window,omitempty"`
	DetectedAt       time.Time `json:"detected_at"`
}

// IsEmpty reports whether nothing was extracted.
func (s PumpSignal) IsEmpty() bool {
	return s.Coin == "" && s.Exchange == "" && s.MinutesToPump == nil && len(s.Candidates) == 0
}

// Ambiguous reports whether several coins matched and none was chosen.
func (s PumpSignal) Ambiguous() bool {
	return s.Coin == "" && len(s.Candidates) > 1
}

// ExpectedPump is the pump time a group announced through a countdown.
type ExpectedPump struct {
	GroupID    int64     `json:"group_id"`
	ExpectedAt time.Time `json:"expected_at"`
	Exchange   string    `json:"exchange,omitempty"`
}

// UnknownGroupMessage is kept for manual review of groups not yet classified.
type UnknownGroupMessage struct {
	ID         int64     `json:"id,omitempty"`
	GroupID    int64     `json:"group_id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

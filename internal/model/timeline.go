package model

import "encoding/json"

// RelatedEvent is one entry of a trigger's recent event timeline.
type RelatedEvent struct {
	EventID      string    `json:"eventid"`
	Clock        int64     `json:"clock"`
	Kind         EventKind `json:"value"`
	Acknowledged bool      `json:"acknowledged"`
	Name         string    `json:"name"`
	Severity     int       `json:"severity"`
}

// Distribution counts events per local hour of day and per weekday, Sunday first.
type Distribution struct {
	Hourly  [24]int `json:"hourly"`
	Weekday [7]int  `json:"weekday"`
}

// Timeline is the recent event history of one trigger with its time patterns.
type Timeline struct {
	Trigger  string         `json:"trigger"`
	Events   []RelatedEvent `json:"events"`
	Patterns Distribution   `json:"patterns"`
}

// TimelineRequest carries the identifiers of a timeline call. Only triggerid is required.
type TimelineRequest struct {
	HostID    json.Number `json:"hostid"`
	TriggerID json.Number `json:"triggerid"`
	EventID   json.Number `json:"eventid"`
}

// TimelineResponse is the envelope of a timeline call.
type TimelineResponse struct {
	Success bool       `json:"success"`
	Data    *Timeline  `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

package model

import "time"

// FetchFailure records an event.get call that could not be served for a period.
type FetchFailure struct {
	ID          string    `json:"id"`
	HostID      int64     `json:"host_id"`
	TriggerID   int64     `json:"trigger_id"`
	Period      string    `json:"period"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Error       string    `json:"error"`
	OccurredAt  time.Time `json:"occurred_at"`
}

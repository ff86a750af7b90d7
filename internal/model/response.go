package model

import "encoding/json"

// AnalyticsRequest carries the identifiers posted by the frontend.
type AnalyticsRequest struct {
	HostID    json.Number `json:"hostid"`
	TriggerID json.Number `json:"triggerid"`
}

// AnalyticsResponse is the envelope every analytics call answers with.
type AnalyticsResponse struct {
	Success bool        `json:"success"`
	Data    *Comparison `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody lists human readable failure messages.
type ErrorBody struct {
	Messages []string `json:"messages"`
}

// NewErrorResponse builds a failed envelope with a single message.
func NewErrorResponse(message string) AnalyticsResponse {
	return AnalyticsResponse{
		Success: false,
		Error:   &ErrorBody{Messages: []string{message}},
	}
}

// FetchFailuresResponse lists recorded upstream fetch failures.
type FetchFailuresResponse struct {
	Data []FetchFailure `json:"data"`
}

package model

import "time"

// Period is one calendar month window plus its display label.
type Period struct {
	Year        int
	Month       time.Month
	WindowStart time.Time
	WindowEnd   time.Time
	Label       string
}

// AckEntry is one line of the acknowledgement feed.
type AckEntry struct {
	EventTime  int64  `json:"event_time"`
	AckTime    int64  `json:"ack_time"`
	Username   string `json:"username"`
	Message    string `json:"message"`
	HasMessage bool   `json:"has_message"`
}

// MonthSummary aggregates the problem events of a single month.
type MonthSummary struct {
	TotalProblems     int        `json:"total_problems"`
	AvgResolutionTime float64    `json:"avg_resolution_time"`
	AckEvents         int        `json:"ack_events"`
	AckPercentage     float64    `json:"ack_percentage"`
	Acks              []AckEntry `json:"acks"`
}

// MonthReport pairs a period label with its summary.
type MonthReport struct {
	Period string       `json:"period"`
	Stats  MonthSummary `json:"stats"`
}

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Trend assessments.
const (
	AssessmentBetter = "better"
	AssessmentWorse  = "worse"
)

// Trend describes how one metric moved between the two months.
type Trend struct {
	Direction  string `json:"direction"`
	Label      string `json:"label,omitempty"`
	Assessment string `json:"assessment,omitempty"`
}

// Trends holds one indicator per comparison row.
type Trends struct {
	TotalProblems     Trend `json:"total_problems"`
	AvgResolutionTime Trend `json:"avg_resolution_time"`
	AckEvents         Trend `json:"ack_events"`
	AckPercentage     Trend `json:"ack_percentage"`
}

// Comparison is the full current vs previous month payload.
type Comparison struct {
	Host             string      `json:"host"`
	Trigger          string      `json:"trigger"`
	CurrentMonth     MonthReport `json:"current_month"`
	PreviousMonth    MonthReport `json:"previous_month"`
	Trends           Trends      `json:"trends"`
	ChangePercentage float64     `json:"change_percentage"`
}

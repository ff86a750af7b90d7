package analytics

import (
	"math"
	"strings"

	"problem-analytics-service/internal/model"
)

const (
	// NoCommentMessage replaces blank acknowledgement messages in the feed.
	NoCommentMessage = "[No comment] Event acknowledged"
	// FallbackUsername is shown when the acknowledging user cannot be resolved.
	FallbackUsername = "System"
)

// UserResolver turns a user id into the name shown in the acknowledgement feed.
type UserResolver interface {
	DisplayName(userID string) string
}

// UserDirectory is a request scoped lookup of users fetched in one batch.
type UserDirectory map[string]model.User

// DisplayName prefers the full name, then the login alias, then FallbackUsername.
func (d UserDirectory) DisplayName(userID string) string {
	user, ok := d[userID]
	if !ok {
		return FallbackUsername
	}
	if user.Name != "" || user.Surname != "" {
		return strings.TrimSpace(user.Name + " " + user.Surname)
	}
	return user.Alias
}

// CollectUserIDs returns the distinct acknowledging user ids of all problem events,
// in first-seen order.
func CollectUserIDs(events []model.RawEvent) []string {
	seen := make(map[string]struct{})
	ids := []string{}
	for _, event := range events {
		if !event.IsAlert() {
			continue
		}
		for _, ack := range event.Acknowledgements {
			if _, ok := seen[ack.UserID]; ok {
				continue
			}
			seen[ack.UserID] = struct{}{}
			ids = append(ids, ack.UserID)
		}
	}
	return ids
}

// Summarize reduces the events of one month into a MonthSummary. Resolution events are
// matched against the whole batch, not only the events inside the queried window.
func Summarize(events []model.RawEvent, users UserResolver) model.MonthSummary {
	if users == nil {
		users = UserDirectory{}
	}

	alerts := make([]model.RawEvent, 0, len(events))
	// first resolution in list order wins when ids repeat
	resolutions := make(map[string]model.RawEvent)
	for _, event := range events {
		if event.IsAlert() {
			alerts = append(alerts, event)
			continue
		}
		if _, ok := resolutions[event.ID]; !ok {
			resolutions[event.ID] = event
		}
	}

	summary := model.MonthSummary{
		TotalProblems: len(alerts),
		Acks:          []model.AckEntry{},
	}

	var resolutionHours []float64
	for _, alert := range alerts {
		if alert.ResolvingEventID != "" {
			if resolution, ok := resolutions[alert.ResolvingEventID]; ok {
				resolutionHours = append(resolutionHours, float64(resolution.Clock-alert.Clock)/3600)
			}
		}

		if len(alert.Acknowledgements) == 0 {
			continue
		}
		summary.AckEvents++
		for _, ack := range alert.Acknowledgements {
			summary.Acks = append(summary.Acks, buildAckEntry(alert, ack, users))
		}
	}

	if len(resolutionHours) > 0 {
		var total float64
		for _, hours := range resolutionHours {
			total += hours
		}
		summary.AvgResolutionTime = round2(total / float64(len(resolutionHours)))
	}

	if summary.TotalProblems > 0 {
		summary.AckPercentage = round2(float64(summary.AckEvents) / float64(summary.TotalProblems) * 100)
	}

	return summary
}

func buildAckEntry(alert model.RawEvent, ack model.Acknowledgement, users UserResolver) model.AckEntry {
	hasMessage := strings.TrimSpace(ack.Message) != ""
	message := ack.Message
	if !hasMessage {
		message = NoCommentMessage
	}

	return model.AckEntry{
		EventTime:  alert.Clock,
		AckTime:    ack.Clock,
		Username:   users.DisplayName(ack.UserID),
		Message:    message,
		HasMessage: hasMessage,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

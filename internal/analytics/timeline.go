package analytics

import (
	"time"

	"problem-analytics-service/internal/model"
)

// RelatedTimeline returns a copy of events (newest first) where every resolution event
// carries the severity of the latest problem before it. Without such a problem it falls
// back to mainSeverity and then to triggerPriority.
func RelatedTimeline(events []model.RelatedEvent, triggerPriority, mainSeverity int) []model.RelatedEvent {
	timeline := make([]model.RelatedEvent, len(events))
	copy(timeline, events)

	fallback := triggerPriority
	if mainSeverity > 0 {
		fallback = mainSeverity
	}

	lastProblem := 0
	// walk oldest to newest
	for i := len(timeline) - 1; i >= 0; i-- {
		if timeline[i].Kind == model.KindAlert {
			lastProblem = timeline[i].Severity
			continue
		}
		if lastProblem > 0 {
			timeline[i].Severity = lastProblem
		} else {
			timeline[i].Severity = fallback
		}
	}
	return timeline
}

// HourlyWeekdayDistribution buckets events by hour of day and weekday in loc.
func HourlyWeekdayDistribution(events []model.RelatedEvent, loc *time.Location) model.Distribution {
	if loc == nil {
		loc = time.Local
	}

	var dist model.Distribution
	for _, event := range events {
		at := time.Unix(event.Clock, 0).In(loc)
		dist.Hourly[at.Hour()]++
		dist.Weekday[at.Weekday()]++
	}
	return dist
}

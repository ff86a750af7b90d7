package zabbix

import (
	"context"
	"fmt"
	"time"

	"problem-analytics-service/internal/model"
)

type acknowledgeRecord struct {
	Clock   flexInt `json:"clock"`
	UserID  string  `json:"userid"`
	Message string  `json:"message"`
}

type eventRecord struct {
	EventID      string              `json:"eventid"`
	Clock        flexInt             `json:"clock"`
	REventID     string              `json:"r_eventid"`
	Value        flexInt             `json:"value"`
	Acknowledges []acknowledgeRecord `json:"acknowledges"`
}

// FetchEvents returns the problem and recovery events of a trigger between from and till,
// newest first, with their acknowledgements.
func (c *Client) FetchEvents(ctx context.Context, hostID, triggerID int64, from, till time.Time) ([]model.RawEvent, error) {
	params := map[string]any{
		"output":             []string{"eventid", "clock", "r_eventid", "value"},
		"selectAcknowledges": []string{"clock", "userid", "message"},
		"objectids":          idString(triggerID),
		"hostids":            idString(hostID),
		"time_from":          from.Unix(),
		"time_till":          till.Unix(),
		"sortfield":          []string{"clock"},
		"sortorder":          "DESC",
	}

	var records []eventRecord
	if err := c.Call(ctx, "event.get", params, &records); err != nil {
		return nil, err
	}

	events := make([]model.RawEvent, 0, len(records))
	for _, r := range records {
		events = append(events, r.toModel())
	}
	return events, nil
}

func (r eventRecord) toModel() model.RawEvent {
	resolvedBy := r.REventID
	if resolvedBy == "0" {
		resolvedBy = ""
	}

	kind := model.KindResolution
	if r.Value == flexInt(model.KindAlert) {
		kind = model.KindAlert
	}

	acks := make([]model.Acknowledgement, 0, len(r.Acknowledges))
	for _, a := range r.Acknowledges {
		acks = append(acks, model.Acknowledgement{
			Clock:   int64(a.Clock),
			UserID:  a.UserID,
			Message: a.Message,
		})
	}

	return model.RawEvent{
		ID:               r.EventID,
		Clock:            int64(r.Clock),
		ResolvingEventID: resolvedBy,
		Kind:             kind,
		Acknowledgements: acks,
	}
}

type relatedEventRecord struct {
	EventID      string  `json:"eventid"`
	Clock        flexInt `json:"clock"`
	Value        flexInt `json:"value"`
	Acknowledged flexInt `json:"acknowledged"`
	Name         string  `json:"name"`
	Severity     flexInt `json:"severity"`
}

// FetchRelatedEvents returns the latest limit trigger events of triggerID, newest first,
// regardless of host or period.
func (c *Client) FetchRelatedEvents(ctx context.Context, triggerID int64, limit int) ([]model.RelatedEvent, error) {
	params := map[string]any{
		"output":    []string{"eventid", "clock", "value", "acknowledged", "name", "severity"},
		"source":    0,
		"object":    0,
		"objectids": idString(triggerID),
		"sortfield": []string{"clock"},
		"sortorder": "DESC",
		"limit":     limit,
	}

	var records []relatedEventRecord
	if err := c.Call(ctx, "event.get", params, &records); err != nil {
		return nil, err
	}

	events := make([]model.RelatedEvent, 0, len(records))
	for _, r := range records {
		kind := model.KindResolution
		if r.Value == flexInt(model.KindAlert) {
			kind = model.KindAlert
		}
		events = append(events, model.RelatedEvent{
			EventID:      r.EventID,
			Clock:        int64(r.Clock),
			Kind:         kind,
			Acknowledged: r.Acknowledged == 1,
			Name:         r.Name,
			Severity:     int(r.Severity),
		})
	}
	return events, nil
}

// FetchEventSeverity returns the severity of a single event, or ErrNotFound.
func (c *Client) FetchEventSeverity(ctx context.Context, eventID int64) (int, error) {
	params := map[string]any{
		"output":   []string{"eventid", "severity"},
		"eventids": idString(eventID),
	}

	var records []relatedEventRecord
	if err := c.Call(ctx, "event.get", params, &records); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
	}
	return int(records[0].Severity), nil
}

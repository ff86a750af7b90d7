package zabbix

import (
	"context"
	"fmt"

	"problem-analytics-service/internal/model"
)

type hostRecord struct {
	HostID string `json:"hostid"`
	Name   string `json:"name"`
}

type triggerRecord struct {
	TriggerID   flexInt `json:"triggerid"`
	Description string  `json:"description"`
	Priority    flexInt `json:"priority"`
	Hosts       []struct {
		HostID flexInt `json:"hostid"`
	} `json:"hosts"`
}

// FetchHostName returns the visible name of a host, or ErrNotFound.
func (c *Client) FetchHostName(ctx context.Context, hostID int64) (string, error) {
	params := map[string]any{
		"output":  []string{"hostid", "name"},
		"hostids": idString(hostID),
	}

	var hosts []hostRecord
	if err := c.Call(ctx, "host.get", params, &hosts); err != nil {
		return "", err
	}
	if len(hosts) == 0 {
		return "", fmt.Errorf("host %d: %w", hostID, ErrNotFound)
	}
	return hosts[0].Name, nil
}

// FetchTrigger returns the description, priority and hosts of a trigger, or ErrNotFound.
func (c *Client) FetchTrigger(ctx context.Context, triggerID int64) (model.Trigger, error) {
	params := map[string]any{
		"output":      []string{"triggerid", "description", "priority"},
		"triggerids":  idString(triggerID),
		"selectHosts": []string{"hostid"},
	}

	var triggers []triggerRecord
	if err := c.Call(ctx, "trigger.get", params, &triggers); err != nil {
		return model.Trigger{}, err
	}
	if len(triggers) == 0 {
		return model.Trigger{}, fmt.Errorf("trigger %d: %w", triggerID, ErrNotFound)
	}

	r := triggers[0]
	hostIDs := make([]int64, 0, len(r.Hosts))
	for _, h := range r.Hosts {
		hostIDs = append(hostIDs, int64(h.HostID))
	}
	return model.Trigger{
		TriggerID:   int64(r.TriggerID),
		Description: r.Description,
		Priority:    int(r.Priority),
		HostIDs:     hostIDs,
	}, nil
}

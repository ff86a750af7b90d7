package model

// EventKind mirrors the Zabbix event value: 1 for PROBLEM, 0 for OK.
type EventKind int

const (
	KindResolution EventKind = 0
	KindAlert      EventKind = 1
)

// RawEvent is one state transition of a trigger as returned by event.get.
type RawEvent struct {
	ID    string
	Clock int64
	// ResolvingEventID is empty while the problem is still open.
	ResolvingEventID string
	Kind             EventKind
	Acknowledgements []Acknowledgement
}

// IsAlert reports whether the event opened a problem.
func (e RawEvent) IsAlert() bool {
	return e.Kind == KindAlert
}

// Acknowledgement is a user annotation attached to a problem event.
type Acknowledgement struct {
	Clock   int64
	UserID  string
	Message string
}

// User is the subset of a Zabbix user needed to render a display name.
type User struct {
	UserID  string
	Alias   string
	Name    string
	Surname string
}

// Caller is the authenticated frontend user issuing a request.
type Caller struct {
	UserID   string
	Username string
	Type     int
}

// Trigger is the trigger metadata used for validation and severity fallback.
type Trigger struct {
	TriggerID   int64
	Description string
	// Priority is the trigger severity, 0 (not classified) to 5 (disaster).
	Priority int
	HostIDs  []int64
}

// BelongsTo reports whether the trigger is defined on hostID.
func (t Trigger) BelongsTo(hostID int64) bool {
	for _, id := range t.HostIDs {
		if id == hostID {
			return true
		}
	}
	return false
}

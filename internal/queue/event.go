package queue

// EventType identifies the action lifecycle change a stream message
// carries.
type EventType string

const (
	EventActionCreated EventType = "action_created"
	EventActionUpdated EventType = "action_updated"
)

func (t EventType) Valid() bool {
	switch t {
	case EventActionCreated, EventActionUpdated:
		return true
	}
	return false
}

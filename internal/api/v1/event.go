package v1

import "fmt"

// Host lifecycle events that may trigger identifier assignment.
const (
	EventPartCreated = "part_part.created"
	EventPartSaved   = "part_part.saved"

	ModelPart = "Part"
)

// Event is a host lifecycle notification.
type Event struct {
	// DeliveryID correlates log lines for one notification. Generated when empty.
	DeliveryID string `json:"delivery_id,omitempty"`

	// Name is the host event name, e.g. "part_part.created".
	Name string `json:"event"`

	// Model is the host model the event fired for. Only "Part" is processed.
	Model string `json:"model"`

	// ID is the primary key of the affected record.
	ID int64 `json:"id"`
}

// Validate ensures the event names what happened and to which record.
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("event is required")
	}
	if e.Model == "" {
		return fmt.Errorf("model is required")
	}
	if e.ID <= 0 {
		return fmt.Errorf("id must be > 0")
	}
	return nil
}

package amqp

import (
	"encoding/json"
	"time"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/events"
)

// ChangeMessage mirrors an events.Event onto the wire for out-of-process
// consumers. Consumers fetch current state through the API; the message only
// says what changed.
type ChangeMessage struct {
	OwnerID   string      `json:"owner_id"`
	Kind      events.Kind `json:"kind"`
	Op        string      `json:"op"`
	ID        string      `json:"id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewChangeMessage(ev events.Event) *ChangeMessage {
	return &ChangeMessage{
		OwnerID:   ev.OwnerID,
		Kind:      ev.Kind,
		Op:        ev.Op,
		ID:        ev.ID,
		Timestamp: ev.At,
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

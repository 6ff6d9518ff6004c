package amqp

import (
	"encoding/json"
	"time"
)

// StateChangedMessage announces that a transition was committed. It carries
// only the action name and revision; consumers fetch the snapshot itself
// from the primary store.
type StateChangedMessage struct {
	Action    string    `json:"action"`
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewStateChangedMessage creates a message for a committed transition.
func NewStateChangedMessage(action string, revision int64) *StateChangedMessage {
	return &StateChangedMessage{
		Action:    action,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *StateChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// StateChangedMessageFromJSON creates a message from JSON bytes
func StateChangedMessageFromJSON(data []byte) (*StateChangedMessage, error) {
	var msg StateChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

package amqp

import (
	"encoding/json"
	"time"
)

// SignalMessage is a fire-and-forget analytics event. Properties carry only
// coarse buckets (price ranges, counts), never raw values.
type SignalMessage struct {
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewSignalMessage creates a signal message stamped with the current time.
func NewSignalMessage(name string, properties map[string]string) *SignalMessage {
	return &SignalMessage{
		Name:       name,
		Properties: properties,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *SignalMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TripExportMessage asks the export worker to push one completed trip to the
// configured spreadsheet. Only the ID travels; the worker loads the trip from
// the database so the export always reflects current prices and rates.
type TripExportMessage struct {
	TripID    string    `json:"trip_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTripExportMessage creates an export message for a trip ID.
func NewTripExportMessage(tripID string) *TripExportMessage {
	return &TripExportMessage{TripID: tripID, Timestamp: time.Now()}
}

// ToJSON converts the message to JSON bytes.
func (m *TripExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TripExportMessageFromJSON creates a message from JSON bytes.
func TripExportMessageFromJSON(data []byte) (*TripExportMessage, error) {
	var msg TripExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

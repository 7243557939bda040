package amqp

import (
	"encoding/json"
	"time"
)

// TransactionExportMessage is the lightweight message queued when a
// transaction needs to be exported to the spreadsheet. It carries only
// the ID and version; the worker fetches the full transaction from the
// database.
type TransactionExportMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionExportMessage creates a new export message with just ID and version
func NewTransactionExportMessage(id, version int64) *TransactionExportMessage {
	return &TransactionExportMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionExportMessageFromJSON creates a message from JSON bytes
func TransactionExportMessageFromJSON(data []byte) (*TransactionExportMessage, error) {
	var msg TransactionExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GoalCompletedMessage is published when a deposit pushes a savings goal
// over its target.
type GoalCompletedMessage struct {
	GoalID    int64     `json:"goal_id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// NewGoalCompletedMessage creates a completion notification for a goal
func NewGoalCompletedMessage(goalID int64, name string) *GoalCompletedMessage {
	return &GoalCompletedMessage{
		GoalID:    goalID,
		Name:      name,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *GoalCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

package events

import "time"

const LeaveRequestDecidedTopic = "leave.request.decided.v1"

type LeaveRequestDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	LeaveID    string    `json:"leave_id"`
	Reference  string    `json:"reference"`
	EmployeeID string    `json:"employee_id"`
	Level      string    `json:"level"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

package events

import "time"

const LeaveRequestSubmittedTopic = "leave.request.submitted.v1"

type LeaveRequestSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	LeaveID     string    `json:"leave_id"`
	Reference   string    `json:"reference"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	HierarchyID string    `json:"hierarchy_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

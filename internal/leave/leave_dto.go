package leave

type SubmitLeaveRequest struct {
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" binding:"required,datetime=2006-01-02"`
	HalfDay       bool   `json:"half_day"`
	HalfDayPeriod string `json:"half_day_period" binding:"omitempty,oneof=AM PM"`
	Reason        string `json:"reason"`
}

type DecideRequest struct {
	// Either approval_id, or request_id plus the caller's role picked
	// up from the token, selects the approval to act on.
	ApprovalID string `json:"approval_id" binding:"omitempty,uuid"`
	RequestID  string `json:"request_id" binding:"omitempty,uuid"`
	Action     string `json:"action" binding:"required"`
	Comment    string `json:"comment"`
}

type ApprovalResponse struct {
	ID         string `json:"id"`
	Level      string `json:"level"`
	StepOrder  int    `json:"step_order"`
	Status     string `json:"status"`
	ApproverID string `json:"approver_id,omitempty"`
	ActorID    string `json:"actor_id,omitempty"`
	Comment    string `json:"comment,omitempty"`
	DecidedAt  string `json:"decided_at,omitempty"`
}

type LeaveRequestResponse struct {
	ID                       string             `json:"id"`
	Reference                string             `json:"reference"`
	EmployeeID               string             `json:"employee_id"`
	LeaveTypeID              string             `json:"leave_type_id"`
	HierarchyID              string             `json:"hierarchy_id"`
	StartDate                string             `json:"start_date"`
	EndDate                  string             `json:"end_date"`
	HalfDay                  bool               `json:"half_day"`
	HalfDayPeriod            string             `json:"half_day_period,omitempty"`
	RequestedDays            float64            `json:"requested_days"`
	ActualDays               float64            `json:"actual_days"`
	Reason                   string             `json:"reason,omitempty"`
	FlowMode                 string             `json:"flow_mode"`
	Status                   string             `json:"status"`
	CurrentStage             string             `json:"current_stage"`
	RequiresDirectorOverride bool               `json:"requires_director_override"`
	Warnings                 []string           `json:"warnings,omitempty"`
	Approvals                []ApprovalResponse `json:"approvals,omitempty"`
}

type PendingApprovalSummary struct {
	ApprovalID  string `json:"approval_id"`
	RequestID   string `json:"request_id"`
	Reference   string `json:"reference"`
	EmployeeID  string `json:"employee_id"`
	HierarchyID string `json:"hierarchy_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Level       string `json:"level"`
	StepOrder   int    `json:"step_order"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	HalfDay     bool   `json:"half_day"`
	FlowMode    string `json:"flow_mode"`
}

type DecideResponse struct {
	RequestID        string `json:"request_id"`
	ApprovalID       string `json:"approval_id"`
	NewRequestStatus string `json:"new_request_status"`
	CurrentStage     string `json:"current_stage"`
}

type HistoryResponse struct {
	Request   LeaveRequestResponse `json:"request"`
	Approvals []ApprovalResponse   `json:"approvals"`
}

package balance

type GrantBalanceRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	LeaveTypeID string  `json:"leave_type_id" binding:"required,uuid"`
	Days        float64 `json:"days" binding:"gte=0"`
}

type AdjustBalanceRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Note     string  `json:"note"`
}

type BalanceResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	Available   float64 `json:"available"`
}

type MovementResponse struct {
	ID        string  `json:"id"`
	RequestID string  `json:"request_id,omitempty"`
	Quantity  float64 `json:"quantity"`
	Reason    string  `json:"reason"`
	Note      string  `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
}

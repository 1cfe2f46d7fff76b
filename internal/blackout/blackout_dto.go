package blackout

type CreateBlackoutRequest struct {
	Name        string `json:"name" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	ScopeType   string `json:"scope_type" binding:"required"`
	ScopeKey    string `json:"scope_key"`
	EnforceMode string `json:"enforce_mode" binding:"required"`
}

type UpdateBlackoutRequest struct {
	Name        string `json:"name" binding:"required"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	ScopeType   string `json:"scope_type" binding:"required"`
	ScopeKey    string `json:"scope_key"`
	EnforceMode string `json:"enforce_mode" binding:"required"`
	Active      *bool  `json:"active"`
}

type BlackoutResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	ScopeType   string `json:"scope_type"`
	ScopeKey    string `json:"scope_key,omitempty"`
	EnforceMode string `json:"enforce_mode"`
	Active      bool   `json:"active"`
}

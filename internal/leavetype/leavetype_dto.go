package leavetype

type CreateLeaveTypeRequest struct {
	Name                     string  `json:"name" binding:"required"`
	Description              string  `json:"description"`
	RequiresManagerApproval  *bool   `json:"requires_manager_approval"`
	RequiresDirectorApproval bool    `json:"requires_director_approval"`
	RequiresHRApproval       *bool   `json:"requires_hr_approval"`
	FlowMode                 string  `json:"flow_mode"`
	MaxConsecutiveDays       int     `json:"max_consecutive_days" binding:"gte=0"`
	AllowHalfDay             *bool   `json:"allow_half_day"`
	DefaultAllowanceDays     float64 `json:"default_allowance_days" binding:"gte=0"`
}

type UpdateLeaveTypeRequest struct {
	Name                     string  `json:"name" binding:"required"`
	Description              string  `json:"description"`
	RequiresManagerApproval  bool    `json:"requires_manager_approval"`
	RequiresDirectorApproval bool    `json:"requires_director_approval"`
	RequiresHRApproval       bool    `json:"requires_hr_approval"`
	FlowMode                 string  `json:"flow_mode"`
	MaxConsecutiveDays       int     `json:"max_consecutive_days" binding:"gte=0"`
	AllowHalfDay             bool    `json:"allow_half_day"`
	DefaultAllowanceDays     float64 `json:"default_allowance_days" binding:"gte=0"`
	IsActive                 *bool   `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Description              string  `json:"description"`
	RequiresManagerApproval  bool    `json:"requires_manager_approval"`
	RequiresDirectorApproval bool    `json:"requires_director_approval"`
	RequiresHRApproval       bool    `json:"requires_hr_approval"`
	FlowMode                 string  `json:"flow_mode"`
	MaxConsecutiveDays       int     `json:"max_consecutive_days"`
	AllowHalfDay             bool    `json:"allow_half_day"`
	DefaultAllowanceDays     float64 `json:"default_allowance_days"`
	IsActive                 bool    `json:"is_active"`
}

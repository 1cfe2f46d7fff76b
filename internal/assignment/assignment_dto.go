package assignment

type CreateAssignmentRequest struct {
	HierarchyID string `json:"hierarchy_id" binding:"required,uuid"`
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	ManagerID   string `json:"manager_id" binding:"required,uuid"`
}

type AssignmentResponse struct {
	ID          string `json:"id"`
	HierarchyID string `json:"hierarchy_id"`
	EmployeeID  string `json:"employee_id"`
	ManagerID   string `json:"manager_id"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`
}

type ManagerCoverageResponse struct {
	HierarchyID         string               `json:"hierarchy_id"`
	ManagerID           string               `json:"manager_id"`
	Assignments         []AssignmentResponse `json:"assignments"`
	DelegationsReceived []DelegationResponse `json:"delegations_received"`
}

type CreateDelegationRequest struct {
	HierarchyID string `json:"hierarchy_id" binding:"required,uuid"`
	DelegatorID string `json:"delegator_id" binding:"required,uuid"`
	DelegateID  string `json:"delegate_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type DelegationResponse struct {
	ID          string `json:"id"`
	HierarchyID string `json:"hierarchy_id"`
	DelegatorID string `json:"delegator_id"`
	DelegateID  string `json:"delegate_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Active      bool   `json:"active"`
}

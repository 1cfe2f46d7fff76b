package hierarchy

type CreateHierarchyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateHierarchyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type HierarchyResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

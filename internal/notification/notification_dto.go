package notification

type CreateNotificationRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	Kind      string `json:"kind" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body"`
	Reference string `json:"reference"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	Reference string `json:"reference,omitempty"`
	ReadAt    string `json:"read_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

package dto

// swagger:model
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// swagger:model
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"required fields are missing"`
}

// swagger:model
type MarkAllReadResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"3 notifications marked as read"`
	Count   int64  `json:"count" example:"3"`
}

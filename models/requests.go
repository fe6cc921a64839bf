package models

import "time"

// RegisterRequest is the JSON body accepted by the registration endpoint.
// The plain-text password is hashed immediately at the service layer and
// never persisted or logged.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTaskRequest is the JSON body accepted by the task creation endpoint.
// OwnerID is deliberately absent: the owner is always taken from the
// authenticated request context, never from the client.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

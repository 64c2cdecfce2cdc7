package domain

import "time"

// User is an account. There is no soft delete: deactivation flips IsActive
// and the row, including its email, stays.
type User struct {
	ID          int64     `json:"id" db:"id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Email       string    `json:"email" db:"email"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest represents data needed to create a new user
type CreateUserRequest struct {
	DisplayName string
	Email       string
}

// UpdateUserRequest represents data for updating a user
type UpdateUserRequest struct {
	DisplayName *string
	Email       *string
}

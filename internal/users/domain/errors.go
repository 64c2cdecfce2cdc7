package domain

import "github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"

var (
	ErrUserNotFound = apperror.NotFound("user not found")
	ErrEmailTaken   = apperror.Conflict(apperror.CodeUserEmail, "user with that email already exists")
)

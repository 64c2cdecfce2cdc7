package domain

import "github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"

var ErrTaskNotFound = apperror.NotFound("task not found")

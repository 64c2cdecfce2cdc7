package domain

import "github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"

var (
	ErrProjectNotFound = apperror.NotFound("project not found")
	ErrProjectHasTasks = apperror.Conflict(apperror.CodeProjectHasTasks, "project has tasks and cannot be deleted")
)

package http

import (
	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/service"
)

// Handler serves task endpoints, both standalone and nested under projects.
type Handler struct {
	svc *service.TaskService
}

func New(svc *service.TaskService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Title          string          `json:"title" binding:"required,max=255"`
	Description    *string         `json:"description"`
	Status         domain.Status   `json:"status"`
	Priority       domain.Priority `json:"priority"`
	AssigneeUserID *int64          `json:"assignee_user_id"`
}

type updateReq struct {
	Title          *string          `json:"title" binding:"omitempty,max=255"`
	Description    *string          `json:"description"`
	Status         *string          `json:"status"`
	Priority       *domain.Priority `json:"priority"`
	AssigneeUserID *int64           `json:"assignee_user_id"`
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}

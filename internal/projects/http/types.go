package http

import (
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name        string        `json:"name" binding:"required,max=255"`
	Description *string       `json:"description"`
	Status      domain.Status `json:"status"`
}

type updateReq struct {
	Name        *string        `json:"name" binding:"omitempty,max=255"`
	Description *string        `json:"description"`
	Status      *domain.Status `json:"status"`
}

type statusReq struct {
	Status domain.Status `json:"status" binding:"required"`
}

type listQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

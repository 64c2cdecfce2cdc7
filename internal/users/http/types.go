package http

import "github.com/GoSim-25-26J-441/devboard-backend/internal/users/service"

type Handler struct {
	svc *service.UserService
}

func New(svc *service.UserService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Email       string `json:"email" binding:"required,email,max=320"`
}

type updateReq struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email,max=320"`
}

type listQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

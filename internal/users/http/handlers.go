package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/pagination"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/users/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	u, err := h.svc.Create(c.Request.Context(), &domain.CreateUserRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusCreated, u)
}

func (h *Handler) list(c *gin.Context) {
	q := listQuery{Page: 1, PerPage: pagination.DefaultPerPage}
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.BadRequest(c, "page and per_page must be integers")
		return
	}

	page, err := h.svc.List(c.Request.Context(), q.Page, q.PerPage)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.List(c, page.Items, respond.Paging{
		Limit:  page.PerPage,
		Offset: page.Offset(),
		Total:  page.Total,
	})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusOK, u)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	u, err := h.svc.Update(c.Request.Context(), id, &domain.UpdateUserRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusOK, u)
}

// deactivate answers DELETE. Users are never removed, only marked inactive.
func (h *Handler) deactivate(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	if _, err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/devboard-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/domain"
)

func (h *Handler) create(c *gin.Context) {
	projectID, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	t, err := h.svc.Create(c.Request.Context(), &domain.CreateTaskRequest{
		ProjectID:      projectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssigneeUserID: req.AssigneeUserID,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusCreated, t)
}

func (h *Handler) listByProject(c *gin.Context) {
	projectID, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.svc.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.List(c, items, respond.Paging{Limit: len(items), Offset: 0, Total: len(items)})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusOK, t)
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

	t, err := h.svc.Update(c.Request.Context(), id, &domain.UpdateTaskRequest{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssigneeUserID: req.AssigneeUserID,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusOK, t)
}

func (h *Handler) setStatus(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	t, err := h.svc.Update(c.Request.Context(), id, &domain.UpdateTaskRequest{Status: &req.Status})
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Data(c, http.StatusOK, t)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := respond.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

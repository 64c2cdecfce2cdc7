package http

import "github.com/gin-gonic/gin"

// Register attaches /api/tasks routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.PATCH("/:id/status", h.setStatus)
	rg.DELETE("/:id", h.delete)
}

// RegisterProjectSubroutes attaches the nested task routes to the projects
// group. The wildcard must stay ":id" to share the tree with project routes.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:id/tasks", h.create)
	rg.GET("/:id/tasks", h.listByProject)
}

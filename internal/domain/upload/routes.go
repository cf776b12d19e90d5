package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the file routes on r. POST / is kept as an alias of
// POST /files for clients of the original upload endpoint.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	r.POST("/", h.Upload)

	files := r.Group("/files")
	{
		files.POST("", h.Upload)
		files.GET("", h.List)
		files.GET("/:id", h.GetByID)
		files.GET("/:id/content", h.Content)
		files.PUT("/:id", h.Update)
		files.DELETE("/:id", h.Delete)
	}
}

package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the resolver endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	dt := rg.Group("/datetime")
	{
		dt.POST("/parse", h.Parse)
		dt.POST("/extract", h.Extract)
		dt.POST("/reminder", h.Reminder)
		dt.POST("/normalize", h.Normalize)
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handlers) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/info", h.HandleInfo)
		apiGroup.POST("/merge", h.HandleMerge)
		apiGroup.POST("/split/preview", h.HandleSplitPreview)
		apiGroup.POST("/split", h.HandleSplit)
		apiGroup.POST("/extract", h.HandleExtract)
		apiGroup.POST("/remove-pages", h.HandleRemovePages)
		apiGroup.GET("/results/:id/archive", h.HandleResultArchive)
		apiGroup.GET("/results/:id/files/:name", h.HandleResultFile)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_studio",
		})
	})
}

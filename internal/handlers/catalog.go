package handlers

import (
	"net/http"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only task catalog and reference values.
type CatalogHandler struct {
	catalog *models.TaskCatalog
}

func NewCatalogHandler(catalog *models.TaskCatalog) *CatalogHandler {
	if catalog == nil {
		catalog = models.DefaultTaskCatalog()
	}
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": h.catalog.Tasks})
}

func (h *CatalogHandler) ListBaselines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "baselines": analysis.NormativeBaselines()})
}

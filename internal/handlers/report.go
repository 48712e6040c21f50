// internal/handlers/report.go
package handlers

import (
	"errors"
	"net/http"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"
	"gaze-go/internal/repository"
	"gaze-go/internal/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	log      *zap.Logger
	analyzer *analysis.Analyzer
	store    repository.SessionStore
}

func NewReportHandler(log *zap.Logger, analyzer *analysis.Analyzer, store repository.SessionStore) *ReportHandler {
	return &ReportHandler{log: log, analyzer: analyzer, store: store}
}

// GetReport returns the JSON session report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, status := h.buildReport(c)
	if status != http.StatusOK {
		c.JSON(status, gin.H{"success": false, "error": http.StatusText(status)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": report})
}

// ShowReport renders the session report as an HTML page.
func (h *ReportHandler) ShowReport(c *gin.Context) {
	report, status := h.buildReport(c)
	if status != http.StatusOK {
		c.String(status, http.StatusText(status))
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := views.SessionReportPage(c.Param("session_id"), report).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("Failed to render report page", zap.Error(err), zap.String("session_id", c.Param("session_id")))
	}
}

func (h *ReportHandler) buildReport(c *gin.Context) (models.SessionReport, int) {
	sessionID := c.Param("session_id")

	record, err := h.store.GetSession(c.Request.Context(), sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return models.SessionReport{}, http.StatusNotFound
	}
	if err != nil {
		h.log.Error("Failed to load session", zap.Error(err), zap.String("session_id", sessionID))
		return models.SessionReport{}, http.StatusInternalServerError
	}

	return h.analyzer.GenerateReport(record), http.StatusOK
}

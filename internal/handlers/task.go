// internal/handlers/task.go
package handlers

import (
	"net/http"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"
	"gaze-go/internal/repository"
	"gaze-go/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionIDContextKey is where the router stores the cookie-backed session id.
const SessionIDContextKey = "session_id"

type TaskHandler struct {
	log      *zap.Logger
	analyzer *analysis.Analyzer
	store    repository.SessionStore
}

func NewTaskHandler(log *zap.Logger, analyzer *analysis.Analyzer, store repository.SessionStore) *TaskHandler {
	return &TaskHandler{log: log, analyzer: analyzer, store: store}
}

// SubmitTask analyses one task's gaze samples and records the result
// under the submitting session.
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	var submission models.TaskSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		h.log.Warn("Failed to bind task submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request data"})
		return
	}

	if submission.SessionID == "" {
		submission.SessionID = c.GetString(SessionIDContextKey)
	}
	if !utils.IsValidSessionID(submission.SessionID) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid session id"})
		return
	}

	fields := []zap.Field{
		zap.String("session_id", submission.SessionID),
		zap.String("task", submission.Task.String()),
		zap.Int("data_points", len(submission.Data)),
	}

	result, err := h.analyzer.ProcessTask(submission)
	if err != nil {
		if analysis.IsInvalidInput(err) {
			h.log.Warn("Rejected invalid gaze data", append(fields, zap.Error(err))...)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.log.Error("Failed to process task", append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to process task"})
		return
	}

	if err := h.store.SaveTask(c.Request.Context(), submission.SessionID, submission.UserInfo(), result); err != nil {
		h.log.Error("Failed to save task result", append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save task result"})
		return
	}

	if result.Failed() {
		h.log.Info("Task submitted without gaze data", fields...)
	} else {
		h.log.Info("Task processed", fields...)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

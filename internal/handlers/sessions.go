package handlers

import (
	"net/http"

	"gaze-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	log   *zap.Logger
	store repository.SessionStore
}

func NewSessionHandler(log *zap.Logger, store repository.SessionStore) *SessionHandler {
	return &SessionHandler{log: log, store: store}
}

func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.store.ListSessions(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}

package router

import (
	"errors"
	"net/http"

	"gaze-go/internal/config"
	"gaze-go/internal/handlers"
	"gaze-go/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionIDSessionKey = "session_id"

// SessionIDMiddleware gives every client a stable session id kept in the
// cookie session. Handlers use it when a submission omits sessionId.
func SessionIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		id, ok := session.Get(sessionIDSessionKey).(string)
		if !ok || !utils.IsValidSessionID(id) {
			id = utils.NewSessionID()
			session.Set(sessionIDSessionKey, id)
			if err := session.Save(); err != nil {
				c.AbortWithError(http.StatusInternalServerError, errors.New("failed to save session"))
				return
			}
		}

		c.Set(handlers.SessionIDContextKey, id)
		c.Next()
	}
}

// CORS adds the cross-origin headers the browser client needs and answers
// preflight requests directly.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "*"
		if conf := config.Get(); conf != nil && conf.Server.AllowedOrigins != "" {
			origin = conf.Server.AllowedOrigins
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"gaze-go/internal/analysis"
	"gaze-go/internal/config"
	"gaze-go/internal/handlers"
	"gaze-go/internal/models"
	"gaze-go/internal/repository"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer is built around.
type Dependencies struct {
	Analyzer *analysis.Analyzer
	Store    repository.SessionStore
	Catalog  *models.TaskCatalog
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error":   "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
	})
}

func Setup(log *zap.Logger, deps Dependencies) *gin.Engine {
	conf := config.Get().Server

	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORS())

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	store := cookie.NewStore([]byte(conf.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("gazesession", store))

	// Handlers and routes
	taskHandler := handlers.NewTaskHandler(log, deps.Analyzer, deps.Store)
	reportHandler := handlers.NewReportHandler(log, deps.Analyzer, deps.Store)
	sessionHandler := handlers.NewSessionHandler(log, deps.Store)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)

	submit := []gin.HandlerFunc{SessionIDMiddleware()}
	if conf.RateLimit > 0 {
		rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Minute,
			Limit: uint(conf.RateLimit),
		})
		submit = append(submit, ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
			ErrorHandler: errorHandler,
			KeyFunc:      keyFunc,
		}))
	}
	submit = append(submit, taskHandler.SubmitTask)

	api := router.Group("/api")
	{
		api.POST("/task", submit...)
		api.GET("/report/:session_id", reportHandler.GetReport)
		api.GET("/report/:session_id/html", reportHandler.ShowReport)
		api.GET("/sessions", sessionHandler.ListSessions)
		api.GET("/tasks", catalogHandler.ListTasks)
		api.GET("/baselines", catalogHandler.ListBaselines)
	}

	return router
}

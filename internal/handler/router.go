package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/handler/middleware"
	"github.com/makkenzo/wedding-invitation-api/internal/ierr"
	"github.com/makkenzo/wedding-invitation-api/internal/metrics"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Drafts         *draftmode.Manager
	AllowOrigins   []string
	AccessLog      bool

	Health  *HealthHandler
	Preview *PreviewHandler
	Content *ContentHandler
	RSVP    *RSVPHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	if d.AccessLog {
		router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC1123),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		}))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.Recovery(d.Logger))

	if len(d.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.Use(middleware.ErrorHandlerMiddleware(d.Logger))

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(ierr.ErrNotFound)
	})

	router.GET("/healthz", d.Health.Check)
	if d.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(d.MetricsHandler))
	}

	api := router.Group("/api")
	api.Use(middleware.DraftSession(d.Drafts, d.Logger))
	{
		api.GET("/preview", d.Preview.Preview)
		api.GET("/exit-preview", d.Preview.ExitPreview)

		api.GET("/dear-block", d.Content.DearBlock)
		api.GET("/invitation", d.Content.Invitation)

		api.POST("/rsvp", d.RSVP.Submit)
	}

	return router
}

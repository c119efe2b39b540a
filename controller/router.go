package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
	"github/itish2003/growthvision/services"
)

// NewRouter wires every HTTP route of the service.
func NewRouter(sessions *services.SessionRegistry, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "healthy",
			"service":  "Growthvision Pathum chat",
			"sessions": sessions.Len(),
		})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	sc := NewSessionController(sessions)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/about", GetAbout)

		apiV1.POST("/sessions", sc.CreateSession)
		apiV1.GET("/sessions/:id", sc.GetSession)
		apiV1.PUT("/sessions/:id/page", sc.SelectPage)

		apiV1.POST("/sessions/:id/messages", sc.SubmitQuery)
		apiV1.DELETE("/sessions/:id/messages", sc.ClearHistory)

		apiV1.PUT("/sessions/:id/ingestion/mode", sc.SelectIngestionMode)
		apiV1.POST("/sessions/:id/ingestion/file", sc.UploadFile)
		apiV1.POST("/sessions/:id/ingestion/text", sc.UploadText)
		apiV1.POST("/sessions/:id/ingestion/url", sc.UploadURL)
	}
	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	log := logger.For("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithField("method", c.Request.Method).
			WithField("path", c.FullPath()).
			WithField("status", c.Writer.Status()).
			WithField("elapsed", time.Since(start).String()).
			Debug("request")
	}
}

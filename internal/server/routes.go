package routes

import (
	"log/slog"
	"slices"

	"github.com/codewithudo/quidax-market-summary/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter crea el router de Gin con CORS, logging y recuperación de panics
func NewRouter(allowOrigins []string, logger *slog.Logger, summaries *middleware.SummaryHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// Configurar CORS
	config := cors.DefaultConfig()
	if len(allowOrigins) == 0 || slices.Contains(allowOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))

	RegisterRoutes(router, summaries)
	return router
}

func RegisterRoutes(router *gin.Engine, summaries *middleware.SummaryHandler) {
	router.GET("/health", summaries.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/summary", summaries.GetSummaries)
		v1.GET("/summary/:market", summaries.GetSummary)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"bommerge/internal/config"
	"bommerge/internal/handler"
	"bommerge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, mergeH *handler.MergeHandler, healthH *handler.HealthHandler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Uploads above this threshold spill to disk inside gin.
	r.MaxMultipartMemory = cfg.Merge.MaxFileSizeMB * 1024 * 1024

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// BOM merge routes
	bom := v1.Group("/bom")
	bom.POST("/merge", mergeH.Merge)
	bom.POST("/preview", mergeH.Preview)

	return r
}

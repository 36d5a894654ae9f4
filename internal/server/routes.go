// Package server configures the HTTP server and routes.
package server

import (
	"os"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/config"
	"github.com/fleveque/logo-fetch/internal/handler"
	"github.com/fleveque/logo-fetch/internal/middleware"
	"github.com/fleveque/logo-fetch/internal/service"
)

// Deps are the components the handlers need.
type Deps struct {
	LogoService *service.LogoService
	Archiver    *service.Archiver
	// Resolver names the LLM provider, "" when name search is used.
	Resolver string
}

// RegisterRoutes sets up all HTTP routes on the Gin engine.
// In Go, we pass dependencies explicitly: no DI container, no magic.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler(deps.Resolver)
	logoHandler := handler.NewLogoHandler(deps.LogoService, logger)
	downloadHandler := handler.NewDownloadHandler(deps.LogoService, deps.Archiver, cfg.Batch.MaxCompanies, logger)

	// The web UI is optional: serve it only when the directory exists.
	if dir := cfg.Web.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Use(static.Serve("/", static.LocalFile(dir, false)))
			logger.Info("serving web UI", zap.String("dir", dir))
		}
	}

	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	{
		api.GET("/logo", logoHandler.GetLogo)
		api.POST("/download-logos", downloadHandler.DownloadLogos)
		// Preflight requests are answered by the CORS middleware.
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}
}

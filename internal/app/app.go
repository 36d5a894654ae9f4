// Package app wires configured components together. Both binaries build
// their object graph here so the configuration flows into constructors in
// exactly one place.
package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/config"
	"github.com/fleveque/logo-fetch/internal/provider"
	"github.com/fleveque/logo-fetch/internal/resolver"
	"github.com/fleveque/logo-fetch/internal/service"
)

// ErrMissingBrandKey is returned when no brand.dev API key is configured.
var ErrMissingBrandKey = errors.New("missing brand.dev API key: set BRAND_DEV_API_KEY (or brand.api_key in config)")

// App holds the components shared by the HTTP server and the CLI.
type App struct {
	Resolver    *resolver.Resolver
	LogoService *service.LogoService
	Archiver    *service.Archiver
	Downloader  *provider.Downloader
	Processor   *service.ImageProcessor
}

// New builds the component graph from cfg.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg.Brand.APIKey == "" {
		return nil, ErrMissingBrandKey
	}

	res, err := resolver.FromConfig(cfg.LLM, logger.Named("resolver"))
	if err != nil {
		return nil, fmt.Errorf("configuring resolver: %w", err)
	}
	if res.Enabled() {
		logger.Info("domain resolution enabled", zap.String("provider", res.Provider()))
	} else {
		logger.Info("no LLM key configured, falling back to provider name search")
	}

	brand := provider.NewBrandDevClient(cfg.Brand.BaseURL, cfg.Brand.APIKey, cfg.Brand.Timeout, logger.Named("brand"))
	source := provider.NewLogoSource(brand)
	downloader := provider.NewDownloader(cfg.Download.Timeout, cfg.Download.UserAgent, cfg.Download.MaxBytes)

	return &App{
		Resolver:    res,
		LogoService: service.NewLogoService(res, source, logger.Named("service")),
		Archiver:    service.NewArchiver(downloader, cfg.Archive.CompressionLevel, logger.Named("archiver")),
		Downloader:  downloader,
		Processor:   service.NewImageProcessor(),
	}, nil
}

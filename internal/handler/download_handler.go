package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/service"
)

// noLogosMessage is the 422 error for batches without a single logo.
const noLogosMessage = "No logos found for any of the provided companies"

// ArchiveBuilder packages lookup results into a zip written to w.
type ArchiveBuilder interface {
	BuildArchive(ctx context.Context, results []model.CompanyLookupResult, w io.Writer) (*model.ArchiveOutcome, error)
}

// DownloadHandler looks up a batch of companies and returns the found
// logos back as a zip.
type DownloadHandler struct {
	logoService  *service.LogoService
	archiver     ArchiveBuilder
	maxCompanies int
	logger       *zap.Logger
}

// NewDownloadHandler creates a DownloadHandler. Requests with more than
// maxCompanies names are rejected.
func NewDownloadHandler(logoService *service.LogoService, archiver ArchiveBuilder, maxCompanies int, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		logoService:  logoService,
		archiver:     archiver,
		maxCompanies: maxCompanies,
		logger:       logger,
	}
}

type downloadRequest struct {
	Companies []string `json:"companies"`
	Mode      string   `json:"mode"`
}

// DownloadLogos handles POST /api/download-logos with
// {"companies": ["Stripe", "Notion"], "mode": "dark"}.
//
//	200: application/zip (Logos.zip), with _errors.txt if some failed
//	400: malformed body, empty or oversized list, bad mode
//	422: no company yielded a logo; JSON failure list
//	500: archive could not be produced
func (h *DownloadHandler) DownloadLogos(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Companies) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companies must be a non-empty array"})
		return
	}
	if len(req.Companies) > h.maxCompanies {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Maximum %d companies per request", h.maxCompanies),
		})
		return
	}
	mode, err := model.ParsePreferredMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	opts := service.LookupOptions{
		Preferences: model.SelectionPreferences{PreferredMode: mode, PreferSVG: true},
	}
	results := h.logoService.LookupMany(ctx, req.Companies, opts)

	// Checked before any zip header is set, so the 422 is plain JSON.
	if successes, failures := service.Partition(results); len(successes) == 0 {
		h.noLogos(c, failures)
		return
	}

	// The archive is finalized in memory so a failure can still be
	// reported as JSON instead of a truncated zip.
	var buf bytes.Buffer
	outcome, err := h.archiver.BuildArchive(ctx, results, &buf)
	if err != nil {
		h.logger.Error("building archive",
			zap.Int("companies", len(req.Companies)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create zip archive"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="Logos.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())

	h.logger.Info("logos archived",
		zap.Int("companies", len(req.Companies)),
		zap.Int("files", len(outcome.Files)),
		zap.Int("failures", len(outcome.Manifest)),
	)
}

func (h *DownloadHandler) noLogos(c *gin.Context, failures []model.ManifestEntry) {
	if failures == nil {
		failures = []model.ManifestEntry{}
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":    noLogosMessage,
		"failures": failures,
	})
}

package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/service"
)

// LogoHandler answers single-company lookups with the selected variant.
type LogoHandler struct {
	logoService *service.LogoService
	logger      *zap.Logger
}

// NewLogoHandler creates a new LogoHandler with the logo service.
func NewLogoHandler(logoService *service.LogoService, logger *zap.Logger) *LogoHandler {
	return &LogoHandler{
		logoService: logoService,
		logger:      logger,
	}
}

// GetLogo returns the best logo for a company as JSON.
// Route: GET /api/logo?company=Stripe&domain=stripe.com&mode=dark&svg=false
//
// company or domain is required; mode defaults to light, svg to true.
func (h *LogoHandler) GetLogo(c *gin.Context) {
	company := strings.TrimSpace(c.Query("company"))
	domain := strings.ToLower(strings.TrimSpace(c.Query("domain")))
	if company == "" && domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "company or domain is required",
		})
		return
	}
	if company == "" {
		company = domain
	}

	mode, err := model.ParsePreferredMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preferSVG := true
	if raw := c.Query("svg"); raw != "" {
		preferSVG, err = strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid svg: must be true or false",
			})
			return
		}
	}

	opts := service.LookupOptions{
		Preferences: model.SelectionPreferences{PreferredMode: mode, PreferSVG: preferSVG},
		Domain:      domain,
	}
	logo, err := h.logoService.GetLogo(c.Request.Context(), company, opts)
	if err != nil {
		h.logger.Warn("logo lookup failed",
			zap.String("company", company),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if logo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, model.CompanyLookupResult{Company: company, Logo: logo})
}

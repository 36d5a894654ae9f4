package provider

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fleveque/logo-fetch/internal/model"
)

// SourceError wraps any failure of the brand provider: transport errors,
// non-2xx responses, malformed payloads.
type SourceError struct {
	Query string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("fetching logos for %q: %v", e.Query, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// LogoSource fetches logo listings and normalizes them into LogoVariants.
// It keeps the provider's order; picking a winner is the selector's job.
type LogoSource struct {
	brand BrandProvider
}

// NewLogoSource creates a LogoSource backed by the given provider.
func NewLogoSource(brand BrandProvider) *LogoSource {
	return &LogoSource{brand: brand}
}

// FetchVariants lists the variants available for a domain. One provider
// call, no retries.
func (s *LogoSource) FetchVariants(ctx context.Context, domain string) ([]model.LogoVariant, error) {
	raw, err := s.brand.FetchByDomain(ctx, domain)
	if err != nil {
		return nil, &SourceError{Query: domain, Err: err}
	}
	return Normalize(raw), nil
}

// FetchVariantsByName lists the variants for a company name using the
// provider's own name search.
func (s *LogoSource) FetchVariantsByName(ctx context.Context, name string) ([]model.LogoVariant, error) {
	raw, err := s.brand.FetchByName(ctx, name)
	if err != nil {
		return nil, &SourceError{Query: name, Err: err}
	}
	return Normalize(raw), nil
}

// Normalize converts raw provider entries into LogoVariants. Entries without
// a URL are dropped, "icon" maps to KindIcon and everything else to
// KindWordmark.
func Normalize(raw []RawLogo) []model.LogoVariant {
	variants := make([]model.LogoVariant, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" {
			continue
		}

		v := model.LogoVariant{
			URL:    r.URL,
			Kind:   model.KindWordmark,
			Mode:   model.Mode(r.Mode),
			Format: FormatFromURL(r.URL),
		}
		if r.Type == "icon" {
			v.Kind = model.KindIcon
		}
		if r.Resolution != nil {
			v.Width = r.Resolution.Width
			v.Height = r.Resolution.Height
		}
		variants = append(variants, v)
	}
	return variants
}

// FormatFromURL returns the lowercased extension of the last path segment,
// without the dot, or "" when there is none. Query strings and fragments are
// ignored.
func FormatFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	ext := path.Ext(p)
	if len(ext) <= 1 {
		return ""
	}
	return strings.ToLower(ext[1:])
}

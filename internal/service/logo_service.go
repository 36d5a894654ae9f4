// Package service contains the core logic of the logo pipeline:
//
//	resolve: company name -> domain (LLM, or the provider's name search)
//	fetch:   domain -> normalized logo variants
//	select:  variants -> single best variant (PickBest)
//
// LookupMany and ListMany run the pipeline for many companies at once, and
// Archiver packages the results into a zip with an error manifest.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleveque/logo-fetch/internal/model"
)

// DomainResolver turns a company name into a website domain.
// *resolver.Resolver implements it.
type DomainResolver interface {
	Resolve(ctx context.Context, companyName, explicitDomain string) (string, error)
	Enabled() bool
}

// VariantSource lists logo variants. *provider.LogoSource implements it.
type VariantSource interface {
	FetchVariants(ctx context.Context, domain string) ([]model.LogoVariant, error)
	FetchVariantsByName(ctx context.Context, name string) ([]model.LogoVariant, error)
}

// Downloader fetches raw bytes. *provider.Downloader implements it.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// LookupOptions apply to every company of a lookup.
type LookupOptions struct {
	Preferences model.SelectionPreferences
	// Domain overrides resolution. Empty means resolve each company.
	Domain string
}

// LogoService runs the resolve -> fetch -> select pipeline.
// Go note: the dependencies are interfaces so tests can swap in fakes
// without any network access.
type LogoService struct {
	resolver DomainResolver
	source   VariantSource
	logger   *zap.Logger
}

// NewLogoService creates a service. resolver must not be nil; a resolver
// without an LLM (Enabled() == false) makes the service fall back to the
// provider's name search.
func NewLogoService(resolver DomainResolver, source VariantSource, logger *zap.Logger) *LogoService {
	return &LogoService{
		resolver: resolver,
		source:   source,
		logger:   logger,
	}
}

// GetLogo returns the best variant for one company, or nil when the
// provider has nothing for it. A nil logo with a nil error is "not found".
func (s *LogoService) GetLogo(ctx context.Context, company string, opts LookupOptions) (*model.LogoVariant, error) {
	variants, err := s.GetAllLogos(ctx, company, opts.Domain)
	if err != nil {
		return nil, err
	}
	return PickBest(variants, opts.Preferences), nil
}

// GetAllLogos returns every normalized variant for one company, in the
// provider's order.
func (s *LogoService) GetAllLogos(ctx context.Context, company, domain string) ([]model.LogoVariant, error) {
	if domain == "" && !s.resolver.Enabled() {
		s.logger.Debug("no LLM configured, using provider name search",
			zap.String("company", company),
		)
		return s.source.FetchVariantsByName(ctx, company)
	}

	resolved, err := s.resolver.Resolve(ctx, company, domain)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolved domain",
		zap.String("company", company),
		zap.String("domain", resolved),
	)

	return s.source.FetchVariants(ctx, resolved)
}

// LookupMany runs GetLogo for every company concurrently and returns one
// result per input, in input order. A failing company never affects the
// others: its error (or panic) is recorded in its own result.
//
// Go note: each goroutine writes only results[i], so no mutex is needed.
// A plain errgroup.Group (not WithContext) is used because one company's
// failure must not cancel the rest.
func (s *LogoService) LookupMany(ctx context.Context, companies []string, opts LookupOptions) []model.CompanyLookupResult {
	results := make([]model.CompanyLookupResult, len(companies))

	var g errgroup.Group
	for i, company := range companies {
		g.Go(func() error {
			results[i] = s.lookupOne(ctx, company, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ListMany is the all-variants counterpart of LookupMany.
func (s *LogoService) ListMany(ctx context.Context, companies []string, domain string) []model.CompanyVariants {
	results := make([]model.CompanyVariants, len(companies))

	var g errgroup.Group
	for i, company := range companies {
		g.Go(func() error {
			results[i] = s.listOne(ctx, company, domain)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *LogoService) lookupOne(ctx context.Context, company string, opts LookupOptions) (result model.CompanyLookupResult) {
	result.Company = company
	defer func() {
		if r := recover(); r != nil {
			result.Logo = nil
			result.Error = panicMessage(r)
			s.logger.Error("logo lookup panicked",
				zap.String("company", company),
				zap.Any("panic", r),
			)
		}
	}()

	logo, err := s.GetLogo(ctx, company, opts)
	if err != nil {
		result.Error = errorMessage(err)
		s.logger.Warn("logo lookup failed",
			zap.String("company", company),
			zap.Error(err),
		)
		return result
	}
	if logo == nil {
		s.logger.Info("no logo found", zap.String("company", company))
	}
	result.Logo = logo
	return result
}

func (s *LogoService) listOne(ctx context.Context, company, domain string) (result model.CompanyVariants) {
	result.Company = company
	defer func() {
		if r := recover(); r != nil {
			result.Variants = nil
			result.Error = panicMessage(r)
			s.logger.Error("logo listing panicked",
				zap.String("company", company),
				zap.Any("panic", r),
			)
		}
	}()

	variants, err := s.GetAllLogos(ctx, company, domain)
	if err != nil {
		result.Error = errorMessage(err)
		s.logger.Warn("logo listing failed",
			zap.String("company", company),
			zap.Error(err),
		)
		return result
	}
	result.Variants = variants
	return result
}

// errorMessage never returns "", which would read as "not found".
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}

func panicMessage(r any) string {
	return fmt.Sprintf("panic: %v", r)
}

// Package resolver turns a company name into a canonical website domain.
// An explicit domain short-circuits the lookup; otherwise an LLM is asked and
// the domain is extracted defensively from its free-text answer.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/config"
	"github.com/fleveque/logo-fetch/internal/llm"
)

// ErrNoClient is returned when a lookup is needed but no LLM is configured.
var ErrNoClient = errors.New("no LLM provider configured for domain resolution")

// ResolutionError means the LLM answer did not contain anything that looks
// like a domain. It keeps the company and the raw answer for debugging.
type ResolutionError struct {
	Company string
	Raw     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve domain for %q: %s", e.Company, e.Raw)
}

// Resolver resolves company names with a single LLM client. There are no
// retries and no fallbacks: one call per Resolve.
type Resolver struct {
	client llm.Client
	logger *zap.Logger
}

// New creates a Resolver. client may be nil, in which case Enabled is false
// and Resolve only succeeds with an explicit domain.
func New(client llm.Client, logger *zap.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// FromConfig picks the first provider in llm.provider_order that has an API
// key. The order is a config change, not a code change.
func FromConfig(cfg config.LLMConfig, logger *zap.Logger) (*Resolver, error) {
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "anthropic":
			if cfg.Anthropic.APIKey != "" {
				return New(llm.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model, cfg.Anthropic.BaseURL), logger), nil
			}
		case "openai":
			if cfg.OpenAI.APIKey != "" {
				return New(llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), logger), nil
			}
		default:
			return nil, fmt.Errorf("unknown LLM provider %q", name)
		}
	}
	return New(nil, logger), nil
}

// Enabled reports whether name lookups are possible.
func (r *Resolver) Enabled() bool {
	return r.client != nil
}

// Provider names the backing LLM, or "" when disabled.
func (r *Resolver) Provider() string {
	if r.client == nil {
		return ""
	}
	return r.client.ProviderName()
}

// Resolve returns explicitDomain unchanged when it is set. Otherwise it asks
// the LLM once and extracts a domain from the answer.
func (r *Resolver) Resolve(ctx context.Context, companyName string, explicitDomain string) (string, error) {
	if explicitDomain != "" {
		return explicitDomain, nil
	}
	if r.client == nil {
		return "", ErrNoClient
	}

	text, err := r.client.LookupDomain(ctx, companyName)
	if err != nil {
		return "", fmt.Errorf("resolving domain for %q via %s: %w", companyName, r.client.ProviderName(), err)
	}

	domain, ok := ExtractDomain(text)
	if !ok {
		return "", &ResolutionError{Company: companyName, Raw: text}
	}

	r.logger.Debug("resolved company domain",
		zap.String("company", companyName),
		zap.String("domain", domain),
		zap.String("provider", r.client.ProviderName()),
	)
	return domain, nil
}

// ExtractDomain trims and lowercases text, strips a leading http:// or
// https:// scheme and drops everything from the first "/". The result must
// be non-empty and contain a ".".
func ExtractDomain(text string) (string, bool) {
	domain := strings.ToLower(strings.TrimSpace(text))

	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(domain, scheme) {
			domain = strings.TrimPrefix(domain, scheme)
			break
		}
	}

	if i := strings.Index(domain, "/"); i >= 0 {
		domain = domain[:i]
	}

	if domain == "" || !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}

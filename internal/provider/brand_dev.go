package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BrandDevClient queries the brand.dev REST API. The API key is forwarded as
// a bearer token; nothing else about authentication is handled here.
type BrandDevClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewBrandDevClient creates a client for the given API base URL
// (e.g. "https://api.brand.dev/v1").
func NewBrandDevClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *BrandDevClient {
	return &BrandDevClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// brandResponse is the envelope brand.dev wraps results in. Only the logos
// sub-list is consumed.
type brandResponse struct {
	Status string `json:"status"`
	Brand  *struct {
		Domain string    `json:"domain"`
		Title  string    `json:"title"`
		Logos  []RawLogo `json:"logos"`
	} `json:"brand"`
}

// FetchByDomain returns the logo listing for a website domain.
func (b *BrandDevClient) FetchByDomain(ctx context.Context, domain string) ([]RawLogo, error) {
	return b.retrieve(ctx, "/brand/retrieve", url.Values{"domain": {domain}})
}

// FetchByName returns the logo listing for a company name, letting the
// provider do its own name matching.
func (b *BrandDevClient) FetchByName(ctx context.Context, name string) ([]RawLogo, error) {
	return b.retrieve(ctx, "/brand/retrieve-by-name", url.Values{"name": {name}})
}

func (b *BrandDevClient) retrieve(ctx context.Context, path string, query url.Values) ([]RawLogo, error) {
	endpoint := b.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "logo-fetch/1.0")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling brand.dev: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("brand.dev returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope brandResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding brand.dev response: %w", err)
	}

	if envelope.Brand == nil {
		b.logger.Debug("brand.dev response without brand", zap.String("query", query.Encode()))
		return nil, nil
	}
	return envelope.Brand.Logos, nil
}

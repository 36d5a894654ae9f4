// Package provider talks to the outside world: the brand-data provider that
// lists logo assets for a company, and plain HTTP downloads of image bytes.
package provider

import "context"

// RawLogo is one logo entry as the brand provider returns it, before
// normalization. Missing fields are left at their zero value / nil.
type RawLogo struct {
	URL        string         `json:"url"`
	Type       string         `json:"type"`
	Mode       string         `json:"mode"`
	Resolution *RawResolution `json:"resolution"`
}

// RawResolution carries the optional pixel size of a RawLogo.
type RawResolution struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
}

// BrandProvider is the brand-data capability the logo source needs. It has
// two query modes; both return the provider's logo listing verbatim.
//
// Keeping it an interface lets tests substitute fixture data for live calls.
type BrandProvider interface {
	FetchByDomain(ctx context.Context, domain string) ([]RawLogo, error)
	FetchByName(ctx context.Context, name string) ([]RawLogo, error)
}

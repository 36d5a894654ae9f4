// Package model defines the core data types for logo lookup and packaging.
// Struct tags (`json:"..."`) tell encoding/json how to render these types in
// CLI --json output and HTTP responses.
package model

import "fmt"

// Kind distinguishes a wordmark (logo including the company name) from a
// square icon. The string values match the brand provider's type tags.
type Kind string

const (
	KindWordmark Kind = "logo"
	KindIcon     Kind = "icon"
)

// Mode is the visual theme a variant is designed for. The empty Mode means
// the provider did not say.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeOpaque Mode = "has_opaque_background"
)

// ParsePreferredMode validates a user-supplied preferred mode. Only light and
// dark can be preferred; an empty string means the default (light).
func ParsePreferredMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeLight, nil
	case ModeLight, ModeDark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be light or dark", s)
	}
}

// DefaultExtension is used for file names when a variant's format is unknown.
const DefaultExtension = "svg"

// LogoVariant is one candidate image for a company.
// URL is never empty: entries without a URL are dropped at ingestion.
// Optional fields use zero values ("" / nil) for "absent".
type LogoVariant struct {
	URL    string `json:"url"`
	Kind   Kind   `json:"type"`
	Mode   Mode   `json:"mode,omitempty"`
	Format string `json:"format,omitempty"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

// Extension returns the variant's format, or DefaultExtension when unknown.
func (v *LogoVariant) Extension() string {
	if v.Format == "" {
		return DefaultExtension
	}
	return v.Format
}

// SelectionPreferences configures how the selector picks among variants.
type SelectionPreferences struct {
	PreferredMode Mode `json:"mode"`
	PreferSVG     bool `json:"prefer_svg"`
}

// DefaultPreferences returns light mode with SVG preferred.
func DefaultPreferences() SelectionPreferences {
	return SelectionPreferences{PreferredMode: ModeLight, PreferSVG: true}
}

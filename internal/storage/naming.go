package storage

import (
	"fmt"
	"strings"
)

// fallbackName is used when a company name sanitizes to nothing.
const fallbackName = "logo"

// SanitizeName makes a company name safe to use as a single path element.
// Only path separators are replaced; everything else is kept as typed.
func SanitizeName(company string) string {
	name := strings.TrimSpace(company)
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return fallbackName
	}
	return name
}

// Namer hands out unique file names within one archive or directory.
// Names are compared case-insensitively so "Acme" and "acme" cannot
// overwrite each other on case-insensitive filesystems or zip extractors.
// A Namer is not safe for concurrent use.
type Namer struct {
	used map[string]struct{}
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]struct{})}
}

// Name returns "<base>.<ext>" for the sanitized base, or "<base>-N.<ext>"
// with the smallest N >= 2 that has not been handed out yet.
func (n *Namer) Name(base, ext string) string {
	base = SanitizeName(base)

	name := base + "." + ext
	for i := 2; n.taken(name); i++ {
		name = fmt.Sprintf("%s-%d.%s", base, i, ext)
	}
	n.used[strings.ToLower(name)] = struct{}{}
	return name
}

// Reserve marks a name as used without generating it, e.g. the manifest.
func (n *Namer) Reserve(name string) {
	n.used[strings.ToLower(name)] = struct{}{}
}

func (n *Namer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

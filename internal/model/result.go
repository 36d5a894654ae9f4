package model

// ReasonNotFound is reported for companies whose lookup completed without
// finding a logo.
const ReasonNotFound = "Not found"

// CompanyLookupResult is the outcome of resolve -> fetch -> select for one
// company. Logo and Error are never both set. A nil Logo with an empty Error
// means "not found", which is not an error.
type CompanyLookupResult struct {
	Company string       `json:"company"`
	Logo    *LogoVariant `json:"logo"`
	Error   string       `json:"error,omitempty"`
}

// Found reports whether a logo was selected.
func (r *CompanyLookupResult) Found() bool {
	return r.Logo != nil
}

// Reason describes why the result has no logo: the error message, or
// ReasonNotFound.
func (r *CompanyLookupResult) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return ReasonNotFound
}

// CompanyVariants is the "all variants" counterpart of CompanyLookupResult.
type CompanyVariants struct {
	Company  string        `json:"company"`
	Variants []LogoVariant `json:"logos"`
	Error    string        `json:"error,omitempty"`
}

// ManifestEntry names a company that did not yield a usable file.
type ManifestEntry struct {
	Company string `json:"company"`
	Reason  string `json:"reason"`
}

// Line renders the entry the way it appears in the error manifest.
func (e ManifestEntry) Line() string {
	return e.Company + ": " + e.Reason
}

// ArchiveOutcome summarizes a built archive. The payload itself is streamed
// to the writer handed to the archiver.
type ArchiveOutcome struct {
	Files    []string        `json:"files"`
	Manifest []ManifestEntry `json:"manifest,omitempty"`
}

package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/storage"
)

// ManifestName is the archive entry listing companies without a file.
const ManifestName = "_errors.txt"

// NoUsableResultsError means not a single company had a logo, so there is
// nothing to archive.
type NoUsableResultsError struct {
	Failures []model.ManifestEntry
}

func (e *NoUsableResultsError) Error() string {
	return fmt.Sprintf("no logos found for any of the %d provided companies", len(e.Failures))
}

// Partition splits lookup results into those with a logo and manifest
// entries for the rest, both in input order.
func Partition(results []model.CompanyLookupResult) ([]model.CompanyLookupResult, []model.ManifestEntry) {
	var successes []model.CompanyLookupResult
	var failures []model.ManifestEntry
	for _, r := range results {
		if r.Found() {
			successes = append(successes, r)
			continue
		}
		failures = append(failures, model.ManifestEntry{Company: r.Company, Reason: r.Reason()})
	}
	return successes, failures
}

// Archiver downloads selected logos and packages them into a zip.
type Archiver struct {
	downloader Downloader
	level      int
	logger     *zap.Logger
}

// NewArchiver creates an Archiver writing Deflate at compressionLevel.
func NewArchiver(downloader Downloader, compressionLevel int, logger *zap.Logger) *Archiver {
	return &Archiver{
		downloader: downloader,
		level:      compressionLevel,
		logger:     logger,
	}
}

// BuildArchive streams a zip of every found logo to w, named
// "<company>.<ext>", plus ManifestName when anything failed.
//
// With zero found logos it returns *NoUsableResultsError and writes nothing.
// A failed download does not abort the archive: the company moves to the
// manifest after the lookup failures. Downloads run concurrently but
// entries are appended in input order, and the container is finalized
// only after the last entry.
func (a *Archiver) BuildArchive(ctx context.Context, results []model.CompanyLookupResult, w io.Writer) (*model.ArchiveOutcome, error) {
	successes, failures := Partition(results)
	if len(successes) == 0 {
		return nil, &NoUsableResultsError{Failures: failures}
	}

	payloads := make([][]byte, len(successes))
	downloadErrs := make([]error, len(successes))

	var g errgroup.Group
	for i, r := range successes {
		g.Go(func() error {
			payloads[i], downloadErrs[i] = a.downloader.Download(ctx, r.Logo.URL)
			return nil
		})
	}
	_ = g.Wait()

	archive := storage.NewZipArchive(w, a.level)
	namer := storage.NewNamer()
	namer.Reserve(ManifestName)

	outcome := &model.ArchiveOutcome{}
	for i, r := range successes {
		if err := downloadErrs[i]; err != nil {
			a.logger.Warn("logo download failed",
				zap.String("company", r.Company),
				zap.String("url", r.Logo.URL),
				zap.Error(err),
			)
			failures = append(failures, model.ManifestEntry{Company: r.Company, Reason: errorMessage(err)})
			continue
		}

		name := namer.Name(r.Company, r.Logo.Extension())
		if err := archive.Add(name, payloads[i]); err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, name)
	}

	if len(failures) > 0 {
		if err := archive.Add(ManifestName, []byte(ManifestText(failures))); err != nil {
			return nil, err
		}
	}

	if err := archive.Close(); err != nil {
		return nil, err
	}

	outcome.Manifest = failures
	a.logger.Info("archive built",
		zap.Int("entries", archive.Entries()),
		zap.Int("files", len(outcome.Files)),
		zap.Int("failures", len(failures)),
	)
	return outcome, nil
}

// ManifestText renders entries one per line as "<company>: <reason>".
func ManifestText(entries []model.ManifestEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	return strings.Join(lines, "\n")
}

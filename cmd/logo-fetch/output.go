package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/service"
	"github.com/fleveque/logo-fetch/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// maxParallelDownloads bounds concurrent downloads in directory mode.
const maxParallelDownloads = 8

func printJSON(w io.Writer, listings []model.CompanyVariants) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listings)
}

// printURLs prints one URL per line, prefixed with the company when more
// than one company was requested. Errors go to stderr; "not found" is not
// an error and goes to stdout.
func printURLs(stdout, stderr io.Writer, listings []model.CompanyVariants, prefix bool) {
	for _, l := range listings {
		switch {
		case l.Error != "":
			fmt.Fprintf(stderr, "%s: %s\n", l.Company, errorStyle.Render("Error - "+l.Error))
		case len(l.Variants) == 0:
			fmt.Fprintf(stdout, "%s: %s\n", l.Company, mutedStyle.Render("not found"))
		default:
			for _, v := range l.Variants {
				if prefix {
					fmt.Fprintf(stdout, "%s: %s\n", l.Company, v.URL)
				} else {
					fmt.Fprintln(stdout, v.URL)
				}
			}
		}
	}
}

func writeZip(ctx context.Context, stdout, stderr io.Writer, archiver *service.Archiver, results []model.CompanyLookupResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	outcome, err := archiver.BuildArchive(ctx, results, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing %s: %w", path, closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		var noUsable *service.NoUsableResultsError
		if errors.As(err, &noUsable) {
			printFailures(stderr, noUsable.Failures)
		}
		return err
	}

	for _, name := range outcome.Files {
		fmt.Fprintf(stdout, "  Added %s\n", name)
	}
	printFailures(stderr, outcome.Manifest)
	fmt.Fprintln(stdout, okStyle.Render(fmt.Sprintf("\nDone! %s saved to %s", pluralLogos(len(outcome.Files)), path)))
	return nil
}

func printFailures(w io.Writer, failures []model.ManifestEntry) {
	for _, f := range failures {
		fmt.Fprintf(w, "  %s\n", errorStyle.Render("Could not get "+f.Line()))
	}
}

func pluralLogos(n int) string {
	if n == 1 {
		return "1 logo"
	}
	return fmt.Sprintf("%d logos", n)
}

// dirDownloader saves variants into an output directory, optionally
// converting them to PNG first.
type dirDownloader struct {
	downloader service.Downloader
	processor  *service.ImageProcessor
	raster     service.RasterOptions
	logger     *zap.Logger
}

type downloadTask struct {
	company string
	base    string
	variant model.LogoVariant
}

func (d *dirDownloader) run(ctx context.Context, stdout, stderr io.Writer, listings []model.CompanyVariants, outDir string, all bool) error {
	var tasks []downloadTask
	for _, l := range listings {
		switch {
		case l.Error != "":
			fmt.Fprintf(stderr, "  %s\n", errorStyle.Render(fmt.Sprintf("Could not find %s: %s", l.Company, l.Error)))
			continue
		case len(l.Variants) == 0:
			fmt.Fprintf(stderr, "  %s\n", errorStyle.Render("Could not find a logo for "+l.Company))
			continue
		}

		variants := l.Variants
		if !all {
			variants = variants[:1]
		}
		for _, v := range variants {
			tasks = append(tasks, downloadTask{
				company: l.Company,
				base:    variantFileBase(l.Company, v, len(variants)),
				variant: v,
			})
		}
	}
	if len(tasks) == 0 {
		return nil
	}

	out, err := storage.NewOutputDir(outDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, titleStyle.Render("Saving to "+out.Path()+"/"))

	payloads := make([][]byte, len(tasks))
	errs := make([]error, len(tasks))
	var g errgroup.Group
	g.SetLimit(maxParallelDownloads)
	for i, t := range tasks {
		g.Go(func() error {
			payloads[i], errs[i] = d.downloader.Download(ctx, t.variant.URL)
			return nil
		})
	}
	_ = g.Wait()

	saved := 0
	for i, t := range tasks {
		if errs[i] != nil {
			d.logger.Warn("download failed", zap.String("company", t.company), zap.String("url", t.variant.URL), zap.Error(errs[i]))
			fmt.Fprintf(stderr, "  %s\n", errorStyle.Render(fmt.Sprintf("Failed to download %s: %v", t.company, errs[i])))
			continue
		}

		data, ext, err := d.processor.Process(payloads[i], t.variant.Extension(), d.raster)
		if err != nil {
			fmt.Fprintf(stderr, "  %s\n", errorStyle.Render(fmt.Sprintf("Failed to convert %s: %v", t.company, err)))
			continue
		}

		path, err := out.Write(t.base, ext, data)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  Saved %s\n", path)
		saved++
	}

	if saved > 0 {
		fmt.Fprintln(stdout, okStyle.Render(fmt.Sprintf("\nDone! %s saved to %s/", pluralLogos(saved), out.Path())))
	}
	return nil
}

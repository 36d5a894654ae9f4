// Package main provides the logo-fetch CLI: look up company logos and
// download them into a folder or a zip.
//
// Run with: go run ./cmd/logo-fetch "Stripe, Notion" --dark
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleveque/logo-fetch/internal/app"
	"github.com/fleveque/logo-fetch/internal/config"
	"github.com/fleveque/logo-fetch/internal/model"
	"github.com/fleveque/logo-fetch/internal/service"
	"github.com/fleveque/logo-fetch/internal/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	dark     bool
	noSVG    bool
	all      bool
	urlOnly  bool
	asJSON   bool
	verbose  bool
	domain   string
	outDir   string
	zipPath  string
	pngWidth int
	bg       string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "logo-fetch <companies>",
		Short: "Download high-quality company logos with the company name",
		Long: `Download high-quality company logos with the company name.

Companies are given as a comma-separated list. The best wordmark is picked
for each one (light mode and SVG preferred) and saved to Logos-<timestamp>/.

Requires BRAND_DEV_API_KEY (environment or .env file). Set ANTHROPIC_API_KEY
or OPENAI_API_KEY to resolve company names to domains with an LLM; without
one, brand.dev's own name search is used. --domain skips the lookup.`,
		Example: `  logo-fetch Stripe
  logo-fetch "Stripe, Notion, Vercel"
  logo-fetch Stripe --dark
  logo-fetch Stripe --all
  logo-fetch --domain stripe.com
  logo-fetch "Stripe, Notion" --zip logos.zip`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.dark, "dark", false, "Get the dark mode version of the logo (default: light)")
	f.BoolVar(&opts.noSVG, "no-svg", false, "Do not prefer SVG over other formats")
	f.BoolVar(&opts.all, "all", false, "Download all available variants (light, dark, icon, ...)")
	f.BoolVar(&opts.urlOnly, "url", false, "Just print the logo URL (don't download the file)")
	f.BoolVar(&opts.asJSON, "json", false, "Print full details as JSON (don't download)")
	f.StringVar(&opts.domain, "domain", "", "Use a specific website domain instead of looking it up")
	f.StringVar(&opts.outDir, "out", "", "Output directory (default: Logos-<timestamp>)")
	f.StringVar(&opts.zipPath, "zip", "", "Write a zip archive to this file instead of a directory")
	f.IntVar(&opts.pngWidth, "png-width", 0, "Convert downloads to PNG of this width in pixels")
	f.StringVar(&opts.bg, "bg", "", "Flatten transparent areas onto this hex color (implies PNG)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log lookups and downloads to stderr")

	cmd.MarkFlagsMutuallyExclusive("zip", "all")
	cmd.MarkFlagsMutuallyExclusive("zip", "url")
	cmd.MarkFlagsMutuallyExclusive("zip", "json")
	cmd.MarkFlagsMutuallyExclusive("zip", "out")
	cmd.MarkFlagsMutuallyExclusive("zip", "png-width")
	cmd.MarkFlagsMutuallyExclusive("zip", "bg")

	return cmd
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string, opts options) error {
	domain := strings.ToLower(strings.TrimSpace(opts.domain))
	companies := parseCompanies(args, domain)
	if len(companies) == 0 {
		return errors.New(`please provide a company name, e.g. logo-fetch "Stripe" (see --help)`)
	}
	if opts.pngWidth < 0 {
		return fmt.Errorf("invalid --png-width %d: must be positive", opts.pngWidth)
	}
	if opts.bg != "" {
		if err := service.ValidateHexColor(opts.bg); err != nil {
			return fmt.Errorf("invalid --bg: %w", err)
		}
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(os.Getenv("LOGO_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	components, err := app.New(cfg, logger)
	if err != nil {
		if errors.Is(err, app.ErrMissingBrandKey) {
			return errors.New("missing BRAND_DEV_API_KEY: set it in your environment or in a .env file (get a free key at https://www.brand.dev)")
		}
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prefs := model.SelectionPreferences{
		PreferredMode: model.ModeLight,
		PreferSVG:     !opts.noSVG,
	}
	if opts.dark {
		prefs.PreferredMode = model.ModeDark
	}

	fmt.Fprintln(stdout, mutedStyle.Render(lookingUp(companies)))

	if opts.zipPath != "" {
		results := components.LogoService.LookupMany(ctx, companies, service.LookupOptions{Preferences: prefs, Domain: domain})
		return writeZip(ctx, stdout, stderr, components.Archiver, results, opts.zipPath)
	}

	var listings []model.CompanyVariants
	if opts.all {
		listings = components.LogoService.ListMany(ctx, companies, domain)
	} else {
		results := components.LogoService.LookupMany(ctx, companies, service.LookupOptions{Preferences: prefs, Domain: domain})
		listings = bestAsListings(results)
	}

	switch {
	case opts.asJSON:
		return printJSON(stdout, listings)
	case opts.urlOnly:
		printURLs(stdout, stderr, listings, len(companies) > 1)
		return nil
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = storage.TimestampedDir(storage.DirPrefix, time.Now())
	}
	dl := &dirDownloader{
		downloader: components.Downloader,
		processor:  components.Processor,
		raster:     service.RasterOptions{Width: opts.pngWidth, Background: opts.bg},
		logger:     logger,
	}
	return dl.run(ctx, stdout, stderr, listings, outDir, opts.all)
}

// parseCompanies joins the positional args with spaces and splits on
// commas, so both `logo-fetch Stripe, Notion` and `logo-fetch "Stripe,
// Notion"` work. With no names, an explicit domain doubles as the name.
func parseCompanies(args []string, domain string) []string {
	raw := strings.Join(args, " ")
	if strings.TrimSpace(raw) == "" {
		raw = domain
	}

	var companies []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			companies = append(companies, name)
		}
	}
	return companies
}

func lookingUp(companies []string) string {
	if len(companies) == 1 {
		return fmt.Sprintf("Looking up %s...", companies[0])
	}
	return fmt.Sprintf("Looking up %d companies...", len(companies))
}

// bestAsListings reshapes single-logo results so every output mode can
// treat both lookup kinds alike.
func bestAsListings(results []model.CompanyLookupResult) []model.CompanyVariants {
	listings := make([]model.CompanyVariants, len(results))
	for i, r := range results {
		listings[i] = model.CompanyVariants{Company: r.Company, Error: r.Error, Variants: []model.LogoVariant{}}
		if r.Logo != nil {
			listings[i].Variants = []model.LogoVariant{*r.Logo}
		}
	}
	return listings
}

// variantFileBase names a download. With several variants per company each
// file gets a "-<type>-<mode>" suffix, "default" standing in for no mode.
func variantFileBase(company string, v model.LogoVariant, variantCount int) string {
	if variantCount <= 1 {
		return company
	}
	mode := string(v.Mode)
	if mode == "" {
		mode = "default"
	}
	return fmt.Sprintf("%s-%s-%s", company, v.Kind, mode)
}

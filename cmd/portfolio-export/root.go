package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/portfolio/internal/app/bootstrap"
	"github.com/dalemusser/portfolio/internal/app/system/deployenv"
	"github.com/dalemusser/portfolio/internal/app/system/formrelay"
	"github.com/dalemusser/portfolio/internal/app/system/sitegen"
	"github.com/dalemusser/portfolio/internal/app/system/viewdata"
	"github.com/dalemusser/portfolio/internal/domain/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type exportFlags struct {
	contentPath string
	postsPath   string
	publicDir   string
	outDir      string

	relayURL  string
	accessKey string
	fromName  string
	baseURL   string

	pretty      bool
	precompress bool
	concurrency int
	verbose     bool
}

func newRootCmd() *cobra.Command {
	f := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "portfolio-export",
		Short: "Render the portfolio as static files",
		Long: `portfolio-export renders every enabled page of the portfolio into a
directory that any static host can serve.

Disabled pages are not written, so the host answers them with 404.html.
The contact form posts directly to the form relay. Under GitHub Actions
(GITHUB_ACTIONS=true with REPO_NAME set) links and assets are prefixed
with /<repo>.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runExport(ctx, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.contentPath, "content", "", "YAML content file (blank uses built-in content)")
	fl.StringVar(&f.postsPath, "posts", "", "directory with blog/ and work/ posts (blank uses built-in posts)")
	fl.StringVar(&f.publicDir, "public", "public", "static assets directory copied into the output")
	fl.StringVarP(&f.outDir, "out", "o", "out", "output directory")
	fl.StringVar(&f.relayURL, "relay-url", formrelay.DefaultURL, "form relay endpoint the contact form posts to")
	fl.StringVar(&f.accessKey, "access-key", os.Getenv("PORTFOLIO_FORM_ACCESS_KEY"), "form relay access key (default $PORTFOLIO_FORM_ACCESS_KEY)")
	fl.StringVar(&f.fromName, "from-name", formrelay.DefaultFromName, "sender name on relayed messages")
	fl.StringVar(&f.baseURL, "base-url", "", "public origin for canonical links, e.g. https://example.com")
	fl.BoolVar(&f.pretty, "pretty", false, "indent the generated HTML")
	fl.BoolVar(&f.precompress, "precompress", false, "write .gz and .br next to compressible files")
	fl.IntVarP(&f.concurrency, "concurrency", "c", sitegen.DefaultConcurrency, "pages rendered in parallel")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func runExport(ctx context.Context, f *exportFlags) error {
	logger, err := newLogger(f.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	env, err := deployenv.Parse()
	if err != nil {
		return err
	}
	deploy := env.Resolve()

	site, posts, routes, err := bootstrap.LoadContent(f.contentPath, f.postsPath)
	if err != nil {
		return err
	}
	if f.accessKey == "" && site.Newsletter.Display {
		logger.Warn("no relay access key; the exported contact form will be rejected by the relay")
	}

	if err := bootstrap.BootTemplates(false, logger); err != nil {
		return err
	}

	view := &viewdata.Env{
		Site:    site,
		Routes:  routes,
		Deploy:  deploy,
		BaseURL: f.baseURL,
		Static:  true,
		Relay: viewdata.RelayTarget{
			URL:       f.relayURL,
			AccessKey: f.accessKey,
			FromName:  f.fromName,
		},
	}

	var all []models.Post
	for _, k := range models.PostKinds {
		all = append(all, posts.List(k)...)
	}

	logger.Info("exporting site",
		zap.String("out", f.outDir),
		zap.String("base_path", deploy.BasePath))

	_, err = sitegen.Export(ctx, sitegen.Options{
		Handler:     bootstrap.NewExportHandler(view, posts, logger),
		Paths:       sitegen.Paths(routes, all),
		PublicDir:   f.publicDir,
		OutDir:      f.outDir,
		Pretty:      f.pretty,
		Precompress: f.precompress,
		Concurrency: f.concurrency,
		Log:         logger,
	})
	return err
}

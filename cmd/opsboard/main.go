package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
	"github.com/goliatone/go-opsboard/pkg/config"
	"github.com/goliatone/go-opsboard/pkg/telemetry"
)

type globals struct {
	Config    string   `type:"path" help:"YAML configuration file."`
	Seed      uint64   `help:"Seed for the mock data provider (0 keeps the configured seed)."`
	Range     string   `help:"Reporting window: 7d, 30d, 90d or 12m."`
	LogLevel  string   `name:"log-level" help:"Log level: debug, info, warn, error."`
	LogFormat string   `name:"log-format" help:"Log format: json or console."`
	Manifest  []string `type:"existingfile" help:"Page manifest to load (repeatable)."`
	OutputDir string   `name:"output-dir" type:"path" help:"Directory export artifacts are written to."`
}

type cli struct {
	Globals globals `embed:""`

	Pages    pagesCmd    `cmd:"" help:"List the dashboard pages and their widgets."`
	Table    tableCmd    `cmd:"" help:"Print the visible page of a grid widget."`
	Series   seriesCmd   `cmd:"" help:"Print the visible series of a chart widget."`
	Export   exportCmd   `cmd:"" help:"Export the visible data of a widget to a file."`
	Render   renderCmd   `cmd:"" help:"Render a dashboard page to HTML."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget definition to a page manifest."`
}

func main() {
	var root cli
	kctx := kong.Parse(&root,
		kong.Name("opsboard"),
		kong.Description("Operations dashboard: browse, derive and export fulfilment data."),
		kong.UsageOnError(),
	)
	a, err := newApp(root.Globals, os.Stdout)
	kctx.FatalIfErrorf(err)
	defer a.close()
	kctx.FatalIfErrorf(kctx.Run(a))
}

// app carries the collaborators every subcommand needs.
type app struct {
	cfg       config.Config
	rng       provider.DateRange
	logger    *zap.Logger
	registry  *prometheus.Registry
	recorder  telemetry.Recorder
	formatter dataview.Formatter
	pages     *dashboard.Registry
	sink      *export.Sink
	service   *dashboard.Service
	out       io.Writer
}

func newApp(g globals, out io.Writer) (*app, error) {
	cfg := config.Default()
	if g.Config != "" {
		loaded, err := config.Load(g.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if g.Seed != 0 {
		cfg.Seed = g.Seed
	}
	if g.Range != "" {
		cfg.DefaultRange = g.Range
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Logging.Format = g.LogFormat
	}
	if g.OutputDir != "" {
		cfg.OutputDir = g.OutputDir
	}
	cfg.Manifests = append(cfg.Manifests, g.Manifest...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("opsboard: %w", err)
	}

	rng, err := provider.ParseDateRange(cfg.DefaultRange)
	if err != nil {
		return nil, err
	}
	logger, err := telemetry.NewLogger(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := dataview.ParseFormatter(cfg.Locale)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := telemetry.NewMetrics(registry)
	if err != nil {
		return nil, err
	}
	recorder := telemetry.Multi{telemetry.NewZapTelemetry(logger), metrics}

	pages, err := dashboard.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, path := range cfg.Manifests {
		doc, err := pages.LoadManifestFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("manifest loaded", zap.String("path", path), zap.Int("pages", len(doc.Pages)), zap.Int("widgets", len(doc.Widgets)))
	}

	var mockOpts []provider.MockOption
	if cfg.Seed != 0 {
		mockOpts = append(mockOpts, provider.WithSeed(cfg.Seed))
	}
	sink := export.NewSink(
		export.WithStore(export.NewDirStore(cfg.OutputDir)),
		export.WithFormatter(formatter),
		export.WithLogger(logger.Named("export")),
	)
	service, err := dashboard.NewService(dashboard.Options{
		Registry:  pages,
		Provider:  provider.NewMockProvider(mockOpts...),
		Exporter:  sink,
		Telemetry: recorder,
		Formatter: &formatter,
		PageSize:  cfg.PageSize,
		Humanize:  cfg.Export.HumanizeHeaders(),
	})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		rng:       rng,
		logger:    logger,
		registry:  registry,
		recorder:  recorder,
		formatter: formatter,
		pages:     pages,
		sink:      sink,
		service:   service,
		out:       out,
	}, nil
}

func (a *app) baseContext() context.Context {
	return telemetry.WithLogger(context.Background(), a.logger)
}

// mount loads a page for the configured reporting window.
func (a *app) mount(ctx context.Context, page string) (*dashboard.PageView, error) {
	return a.service.Mount(ctx, dashboard.MountRequest{Page: page, Range: a.rng})
}

// close logs the event counters gathered during the run and flushes the logger.
func (a *app) close() {
	families, err := a.registry.Gather()
	if err == nil {
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				fields := []zap.Field{zap.String("metric", mf.GetName()), zap.Float64("value", m.GetCounter().GetValue())}
				for _, lp := range m.GetLabel() {
					fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
				}
				a.logger.Debug("counter", fields...)
			}
		}
	}
	_ = a.logger.Sync()
}

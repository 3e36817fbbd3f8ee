package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/provider"
)

type scaffoldCmd struct {
	ManifestPath string   `name:"manifest-path" required:"" type:"path" help:"Path to the page manifest YAML file to update."`
	Page         string   `required:"" help:"Page the widget is attached to."`
	Code         string   `required:"" help:"Fully-qualified widget code (e.g. warehouse.dock_doors)."`
	Title        string   `help:"Display title (derived from the code when empty)."`
	Dataset      string   `required:"" help:"Dataset served by the provider."`
	Kind         string   `default:"grid" enum:"grid,chart" help:"Widget kind: grid or chart."`
	ChartType    string   `name:"chart-type" default:"bar" help:"Chart type for chart widgets."`
	XKey         string   `name:"x-key" help:"X axis field for chart widgets."`
	DataKey      []string `name:"data-key" help:"Series field for chart widgets (repeatable)."`
	SearchField  []string `name:"search-field" help:"Searchable field for grid widgets (repeatable)."`
	PageSize     int      `name:"page-size" help:"Rows per page for grid widgets."`
	Overwrite    bool     `help:"Replace an existing manifest entry with the same code."`
}

func (cmd *scaffoldCmd) Run(a *app) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("opsboard: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.pageKnown(a.pages, doc) {
		return fmt.Errorf("%w: %s", dashboard.ErrUnknownPage, cmd.Page)
	}

	entry := dashboard.ManifestWidget{Page: cmd.Page, Definition: cmd.definition()}
	if err := dashboard.NewSpecValidator().Validate(entry.Definition); err != nil {
		return err
	}

	idx := slices.IndexFunc(doc.Widgets, func(w dashboard.ManifestWidget) bool {
		return w.Page == cmd.Page && w.Definition.Code == cmd.Code
	})
	switch {
	case idx >= 0 && !cmd.Overwrite:
		return fmt.Errorf("opsboard: manifest already defines widget %s (use --overwrite to replace)", cmd.Code)
	case idx >= 0:
		doc.Widgets[idx] = entry
	default:
		doc.Widgets = append(doc.Widgets, entry)
	}

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s to page %s in %s\n", cmd.Code, cmd.Page, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("opsboard: widget code %s must contain at least one '.' segment", cmd.Code)
	}
	if !slices.Contains(provider.NewMockProvider().Datasets(), cmd.Dataset) {
		return fmt.Errorf("%w: %s", provider.ErrUnknownDataset, cmd.Dataset)
	}
	return nil
}

func (cmd *scaffoldCmd) pageKnown(pages *dashboard.Registry, doc *dashboard.PageManifestDocument) bool {
	if _, ok := pages.Page(cmd.Page); ok {
		return true
	}
	return slices.ContainsFunc(doc.Pages, func(p dashboard.PageDefinition) bool { return p.Code == cmd.Page })
}

func (cmd *scaffoldCmd) definition() dashboard.WidgetDefinition {
	title := cmd.Title
	if title == "" {
		title = deriveTitle(cmd.Code)
	}
	def := dashboard.WidgetDefinition{
		Code:    cmd.Code,
		Kind:    dashboard.WidgetKind(cmd.Kind),
		Title:   title,
		Dataset: cmd.Dataset,
	}
	if def.Kind == dashboard.KindChart {
		def.Chart = &dashboard.ChartSpec{
			Type:     dashboard.ChartType(cmd.ChartType),
			XAxisKey: cmd.XKey,
			DataKeys: cmd.DataKey,
		}
		return def
	}
	def.Grid = &dashboard.GridSpec{SearchFields: cmd.SearchField, PageSize: cmd.PageSize}
	return def
}

func loadOrInitManifest(path string) (*dashboard.PageManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.PageManifestDocument{
				Version: dashboard.ManifestVersion,
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("opsboard: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.PageManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("opsboard: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("opsboard: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("opsboard: write manifest: %w", err)
	}
	return encoder.Close()
}

// deriveTitle turns "warehouse.dock_doors" into "Dock Doors".
func deriveTitle(code string) string {
	parts := strings.Split(code, ".")
	slug := strings.TrimSpace(parts[len(parts)-1])
	if slug == "" {
		slug = code
	}
	return strcase.ToCase(slug, strcase.TitleCase, ' ')
}

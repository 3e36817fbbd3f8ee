package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PageManifestDocument models a YAML manifest describing pages and extra widgets.
type PageManifestDocument struct {
	Version string           `json:"version" yaml:"version"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Pages   []PageDefinition `json:"pages,omitempty" yaml:"pages,omitempty"`
	Widgets []ManifestWidget `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Source  string           `json:"-" yaml:"-"`
}

// ManifestWidget attaches a widget definition to an already registered page.
type ManifestWidget struct {
	Page       string           `json:"page" yaml:"page"`
	Definition WidgetDefinition `json:"definition" yaml:"definition"`
}

// LoadManifestFile reads a manifest from disk, registers it against the registry, and returns the document.
func (r *Registry) LoadManifestFile(path string) (*PageManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers pages first, then widgets, from a decoded manifest.
func (r *Registry) LoadManifestDocument(doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, page := range doc.Pages {
		if err := r.RegisterPage(page); err != nil {
			return fmt.Errorf("dashboard: register page %s from %s: %w", page.Code, doc.Source, err)
		}
	}
	for _, widget := range doc.Widgets {
		if err := r.RegisterWidget(widget.Page, widget.Definition); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", widget.Definition.Code, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*PageManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader. Unknown fields are rejected.
func DecodeManifest(r io.Reader) (*PageManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PageManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *PageManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	pages := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		if page.Code == "" {
			return fmt.Errorf("dashboard: manifest page at index %d is missing code", idx)
		}
		if page.Title == "" {
			return fmt.Errorf("dashboard: manifest page %s missing title", page.Code)
		}
		if _, exists := pages[page.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates page code %s", page.Code)
		}
		pages[page.Code] = struct{}{}
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Page == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing page", idx)
		}
		if widget.Definition.Code == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing definition.code", idx)
		}
		key := widget.Page + "/" + widget.Definition.Code
		if _, exists := seen[key]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s on page %s", widget.Definition.Code, widget.Page)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (doc *PageManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Pages {
		for j := range doc.Pages[i].Widgets {
			defaultGrid(&doc.Pages[i].Widgets[j])
		}
	}
	for i := range doc.Widgets {
		defaultGrid(&doc.Widgets[i].Definition)
	}
}

// defaultGrid gives grid widgets without a grid section an empty spec: all
// fields searchable, the service page size.
func defaultGrid(def *WidgetDefinition) {
	if def.Kind == KindGrid && def.Grid == nil {
		def.Grid = &GridSpec{}
	}
}

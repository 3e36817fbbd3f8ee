package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-opsboard/components/dataview"
)

var (
	// ErrExportUnavailable indicates the encoder for a format could not be loaded.
	// The displayed data is unaffected and the next export retries the load.
	ErrExportUnavailable = errors.New("export: unavailable")
	// ErrUnknownFormat indicates a format with no registered loader.
	ErrUnknownFormat = errors.New("export: unknown format")
	// ErrEmptyStem indicates a request without a filename stem.
	ErrEmptyStem = errors.New("export: filename stem required")
)

// Format names an artifact encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the built-in formats.
var Formats = []Format{FormatXLSX, FormatCSV, FormatJSON}

// ParseFormat validates a format name. Empty selects xlsx.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Column is one exported column. Key is the record field used for lookups,
// Label is the header text.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Table is the encoder input: ordered columns and one value row per record.
type Table struct {
	Columns []Column
	Rows    [][]dataview.Value
}

// Encoder serializes a table into one artifact format.
type Encoder interface {
	Format() Format
	Extension() string
	ContentType() string
	Encode(ctx context.Context, buf *bytes.Buffer, table Table) error
}

// Loader produces an encoder on demand. A failing loader surfaces as ErrExportUnavailable.
type Loader func() (Encoder, error)

// Request describes one export. Records must be the caller's visible snapshot.
type Request struct {
	Records  []dataview.Record
	Fields   []string
	Stem     string
	Format   Format
	Humanize bool
}

// Artifact describes a stored export.
type Artifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	Columns     []Column  `json:"columns"`
	Rows        int       `json:"rows"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Result carries the outcome of an asynchronous export.
type Result struct {
	Artifact Artifact
	Err      error
}

// Option configures a Sink.
type Option func(*Sink)

// WithStore sets where artifacts are written.
func WithStore(store Store) Option {
	return func(s *Sink) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock sets the time source used for filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLoader registers or replaces the loader for a format.
func WithLoader(format Format, loader Loader) Option {
	return func(s *Sink) {
		if loader != nil {
			s.loaders[format] = loader
		}
	}
}

// WithFormatter sets the display formatter used by text encoders.
func WithFormatter(f dataview.Formatter) Option {
	return func(s *Sink) {
		s.formatter = f
	}
}

// WithLogger sets the sink logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Sink turns visible snapshots into stored spreadsheet artifacts.
type Sink struct {
	mu        sync.Mutex
	loaders   map[Format]Loader
	encoders  map[Format]Encoder
	store     Store
	now       func() time.Time
	formatter dataview.Formatter
	logger    *zap.Logger
}

// NewSink builds a sink with the built-in xlsx, csv and json encoders and an in-memory store.
func NewSink(opts ...Option) *Sink {
	sink := &Sink{
		loaders:   map[Format]Loader{},
		encoders:  map[Format]Encoder{},
		store:     NewMemoryStore(),
		now:       time.Now,
		formatter: dataview.DefaultFormatter(),
		logger:    zap.NewNop(),
	}
	sink.loaders[FormatXLSX] = func() (Encoder, error) { return NewXLSXEncoder(), nil }
	sink.loaders[FormatCSV] = func() (Encoder, error) { return NewCSVEncoder(sink.formatter), nil }
	sink.loaders[FormatJSON] = func() (Encoder, error) { return NewJSONEncoder(), nil }
	for _, opt := range opts {
		if opt != nil {
			opt(sink)
		}
	}
	return sink
}

// Store returns the artifact store.
func (s *Sink) Store() Store { return s.store }

// Export copies the request snapshot, encodes it and stores the artifact.
func (s *Sink) Export(ctx context.Context, req Request) (Artifact, error) {
	return s.export(ctx, snapshot(req))
}

// ExportAsync copies the snapshot immediately and exports it on a new goroutine.
// The channel receives exactly one result and is then closed.
func (s *Sink) ExportAsync(ctx context.Context, req Request) <-chan Result {
	req = snapshot(req)
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		artifact, err := s.export(ctx, req)
		out <- Result{Artifact: artifact, Err: err}
	}()
	return out
}

func (s *Sink) export(ctx context.Context, req Request) (Artifact, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	if strings.TrimSpace(req.Stem) == "" {
		return Artifact{}, ErrEmptyStem
	}
	format := req.Format
	if format == "" {
		format = FormatXLSX
	}
	encoder, err := s.encoder(format)
	if err != nil {
		s.logger.Warn("export encoder unavailable", zap.String("format", string(format)), zap.Error(err))
		return Artifact{}, err
	}

	table := BuildTable(req.Records, req.Fields, req.Humanize)
	var buf bytes.Buffer
	if err := encoder.Encode(ctx, &buf, table); err != nil {
		return Artifact{}, fmt.Errorf("export: encode %s: %w", format, err)
	}

	createdAt := s.now()
	name := FileName(req.Stem, encoder.Extension(), createdAt)
	location, err := s.store.Put(ctx, name, buf.Bytes())
	if err != nil {
		return Artifact{}, fmt.Errorf("export: store %s: %w", name, err)
	}

	artifact := Artifact{
		ID:          uuid.NewString(),
		Name:        name,
		Location:    location,
		Format:      format,
		ContentType: encoder.ContentType(),
		Columns:     table.Columns,
		Rows:        len(table.Rows),
		Size:        buf.Len(),
		CreatedAt:   createdAt.UTC(),
	}
	s.logger.Debug("export written",
		zap.String("name", name),
		zap.String("format", string(format)),
		zap.Int("rows", artifact.Rows),
		zap.Int("bytes", artifact.Size),
	)
	return artifact, nil
}

// encoder returns the cached encoder for format, loading it on first use.
// A failed load is not cached so the next export retries it.
func (s *Sink) encoder(format Format) (Encoder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enc, ok := s.encoders[format]; ok {
		return enc, nil
	}
	loader, ok := s.loaders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	enc, err := loader()
	if err != nil {
		return nil, fmt.Errorf("%w: %s encoder: %w", ErrExportUnavailable, format, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %s encoder missing", ErrExportUnavailable, format)
	}
	s.encoders[format] = enc
	return enc, nil
}

// BuildTable lays out records as columns in declared field order followed by
// any undeclared keys in first-seen order. Missing values stay missing.
func BuildTable(records []dataview.Record, fields []string, humanize bool) Table {
	keys := dataview.MergeKeys(fields, records)
	columns := make([]Column, len(keys))
	for i, key := range keys {
		label := key
		if humanize {
			label = HumanizeLabel(key)
		}
		columns[i] = Column{Key: key, Label: label}
	}
	rows := make([][]dataview.Value, len(records))
	for r, rec := range records {
		row := make([]dataview.Value, len(keys))
		for c, key := range keys {
			row[c] = rec.Get(key)
		}
		rows[r] = row
	}
	return Table{Columns: columns, Rows: rows}
}

func snapshot(req Request) Request {
	req.Records = dataview.CloneRecords(req.Records)
	req.Fields = append([]string(nil), req.Fields...)
	return req
}

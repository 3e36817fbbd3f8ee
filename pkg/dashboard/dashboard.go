package dashboard

import (
	core "github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// PageView is a mounted page.
type PageView = core.PageView

// MountRequest selects the page and reporting window to mount.
type MountRequest = core.MountRequest

// ExportRequest selects the widget and format to export.
type ExportRequest = core.ExportRequest

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// NewMockService wires the seeded mock provider and an in-memory export
// store, the setup used by demos and tests.
func NewMockService(seed uint64) (*Service, *export.MemoryStore, error) {
	store := export.NewMemoryStore()
	svc, err := core.NewService(Options{
		Provider: provider.NewMockProvider(provider.WithSeed(seed)),
		Exporter: export.NewSink(export.WithStore(store)),
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, store, nil
}

package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownPage indicates a page code that is not registered.
	ErrUnknownPage = errors.New("dashboard: unknown page")
	// ErrUnknownWidget indicates a widget code missing from the mounted page.
	ErrUnknownWidget = errors.New("dashboard: unknown widget")
	// ErrInvalidWidget indicates a widget definition that failed validation.
	ErrInvalidWidget = errors.New("dashboard: invalid widget")
	// ErrWidgetKind indicates an operation the widget kind does not support.
	ErrWidgetKind = errors.New("dashboard: operation not supported by widget kind")
)

// PageHook lets packages register pages or widgets during init().
type PageHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PageHook
)

// RegisterPageHook registers a hook executed against new registries.
func RegisterPageHook(h PageHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithValidator overrides the widget definition validator.
func WithValidator(v DefinitionValidator) RegistryOption {
	return func(r *Registry) {
		if v == nil {
			v = noopDefinitionValidator{}
		}
		r.validator = v
	}
}

// WithoutDefaults skips registering the built-in operations pages.
func WithoutDefaults() RegistryOption {
	return func(r *Registry) {
		r.skipDefaults = true
	}
}

// Registry stores the page catalogue discoverable via defaults, hooks or manifests.
type Registry struct {
	mu           sync.RWMutex
	pages        map[string]PageDefinition
	validator    DefinitionValidator
	skipDefaults bool
}

// NewRegistry builds a registry seeded with the default pages and applies global hooks.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	reg := &Registry{
		pages:     map[string]PageDefinition{},
		validator: NewSpecValidator(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	if !reg.skipDefaults {
		for _, page := range DefaultPages() {
			if err := reg.RegisterPage(page); err != nil {
				return nil, err
			}
		}
	}
	if err := reg.ApplyHooks(); err != nil {
		return nil, err
	}
	return reg, nil
}

// ApplyHooks executes registered page hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPage validates and stores a page, replacing any page with the same code.
func (r *Registry) RegisterPage(page PageDefinition) error {
	if page.Code == "" {
		return fmt.Errorf("dashboard: page code is required")
	}
	seen := make(map[string]struct{}, len(page.Widgets))
	for _, widget := range page.Widgets {
		if _, dup := seen[widget.Code]; dup {
			return fmt.Errorf("dashboard: page %s duplicates widget %s", page.Code, widget.Code)
		}
		seen[widget.Code] = struct{}{}
		if err := r.validator.Validate(widget); err != nil {
			return fmt.Errorf("dashboard: page %s: %w", page.Code, err)
		}
	}
	page.Widgets = append([]WidgetDefinition(nil), page.Widgets...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[page.Code] = page
	return nil
}

// RegisterWidget appends a widget to an existing page, replacing one with the same code.
func (r *Registry) RegisterWidget(pageCode string, widget WidgetDefinition) error {
	if err := r.validator.Validate(widget); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	page, ok := r.pages[pageCode]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPage, pageCode)
	}
	widgets := make([]WidgetDefinition, 0, len(page.Widgets)+1)
	replaced := false
	for _, existing := range page.Widgets {
		if existing.Code == widget.Code {
			widgets = append(widgets, widget)
			replaced = true
			continue
		}
		widgets = append(widgets, existing)
	}
	if !replaced {
		widgets = append(widgets, widget)
	}
	page.Widgets = widgets
	r.pages[pageCode] = page
	return nil
}

// Page fetches a page definition by code.
func (r *Registry) Page(code string) (PageDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[code]
	return page, ok
}

// Pages returns all registered pages ordered by Order, then Code.
func (r *Registry) Pages() []PageDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pages := make([]PageDefinition, 0, len(r.pages))
	for _, page := range r.pages {
		pages = append(pages, page)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Order != pages[j].Order {
			return pages[i].Order < pages[j].Order
		}
		return pages[i].Code < pages[j].Code
	})
	return pages
}

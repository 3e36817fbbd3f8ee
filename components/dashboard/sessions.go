package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/provider"
)

// ErrUnknownMount indicates a mount id with no live page view.
var ErrUnknownMount = errors.New("dashboard: unknown mount")

// AlertView is the derived state of an alert widget.
type AlertView struct {
	Count     int
	Names     []string
	Remaining int
}

// Active reports whether any record matched the alert condition.
func (a AlertView) Active() bool { return a.Count > 0 }

// Message renders the alert text, e.g. "2 items at critical stock levels: A, B".
func (a AlertView) Message(noun string) string {
	if a.Count == 0 {
		return ""
	}
	msg := fmt.Sprintf("%d %s: %s", a.Count, noun, strings.Join(a.Names, ", "))
	if a.Remaining > 0 {
		msg += fmt.Sprintf(" and %d more", a.Remaining)
	}
	return msg
}

// ListItem is one ranked row of a list widget.
type ListItem struct {
	Rank     int
	Label    string
	Value    string
	Detail   string
	Badge    string
	Progress float64
	Bar      bool
}

// WidgetView holds the live derivation state of one mounted widget.
// Table is set for grids, Chart for charts.
type WidgetView struct {
	Definition WidgetDefinition
	Table      *dataview.TableSession
	Chart      *dataview.ChartSession

	mu    sync.RWMutex
	alert AlertView
	list  []ListItem
}

// Alert returns the alert state of an alert widget.
func (w *WidgetView) Alert() AlertView {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := w.alert
	out.Names = append([]string(nil), w.alert.Names...)
	return out
}

// Items returns the ranked rows of a list widget.
func (w *WidgetView) Items() []ListItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]ListItem(nil), w.list...)
}

func (w *WidgetView) setDerived(alert AlertView, list []ListItem) {
	w.mu.Lock()
	w.alert = alert
	w.list = list
	w.mu.Unlock()
}

// PageView is a mounted page: KPIs plus one live WidgetView per widget.
type PageView struct {
	ID        string
	Page      PageDefinition
	MountedAt time.Time
	Widgets   []*WidgetView

	mu      sync.RWMutex
	dateRng provider.DateRange
	kpis    []provider.KPI
}

// Range returns the reporting window the page was last loaded with.
func (p *PageView) Range() provider.DateRange {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dateRng
}

// KPIs returns the page summary tiles.
func (p *PageView) KPIs() []provider.KPI {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]provider.KPI(nil), p.kpis...)
}

func (p *PageView) setLoaded(r provider.DateRange, kpis []provider.KPI) {
	p.mu.Lock()
	p.dateRng = r
	p.kpis = kpis
	p.mu.Unlock()
}

// Widget looks up a mounted widget by code.
func (p *PageView) Widget(code string) (*WidgetView, error) {
	for _, w := range p.Widgets {
		if w.Definition.Code == code {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %s on page %s", ErrUnknownWidget, code, p.Page.Code)
}

// SessionStore keeps mounted page views in memory keyed by a uuid mount id.
type SessionStore struct {
	mu    sync.RWMutex
	views map[string]*PageView
	newID func() string
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		views: make(map[string]*PageView),
		newID: uuid.NewString,
	}
}

// Put stores a view, assigning a mount id when it has none, and returns the id.
func (s *SessionStore) Put(view *PageView) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view.ID == "" {
		view.ID = s.newID()
	}
	s.views[view.ID] = view
	return view.ID
}

// Get returns the view mounted under id.
func (s *SessionStore) Get(id string) (*PageView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMount, id)
	}
	return view, nil
}

// Delete discards the view mounted under id.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMount, id)
	}
	delete(s.views, id)
	return nil
}

// IDs returns the live mount ids in sorted order.
func (s *SessionStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live mounts.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

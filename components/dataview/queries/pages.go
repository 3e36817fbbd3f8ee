package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-opsboard/components/dashboard"
)

// PagesInput is the empty input of PagesQuery.
type PagesInput struct{}

type pageCatalogue interface {
	Pages() []dashboard.PageDefinition
}

// PagesQuery lists the registered pages in navigation order.
type PagesQuery struct {
	registry pageCatalogue
}

// NewPagesQuery builds the query.
func NewPagesQuery(registry pageCatalogue) *PagesQuery {
	return &PagesQuery{registry: registry}
}

var _ gocommand.Querier[PagesInput, []dashboard.PageDefinition] = (*PagesQuery)(nil)

// Query returns the catalogue.
func (q *PagesQuery) Query(context.Context, PagesInput) ([]dashboard.PageDefinition, error) {
	if q.registry == nil {
		return nil, errMissingService
	}
	return q.registry.Pages(), nil
}

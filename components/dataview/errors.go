package dataview

import "errors"

var (
	// ErrInvalidPage indicates a negative page index.
	ErrInvalidPage = errors.New("dataview: page index must be >= 0")
	// ErrInvalidPageSize indicates a non-positive page size.
	ErrInvalidPageSize = errors.New("dataview: page size must be > 0")
	// ErrUnknownFilter indicates a filter key the chart does not declare.
	ErrUnknownFilter = errors.New("dataview: unknown filter")
	// ErrUnknownOption indicates a filter value outside the declared options.
	ErrUnknownOption = errors.New("dataview: unknown filter option")
	// ErrUnknownVariant indicates an unsupported chart variant.
	ErrUnknownVariant = errors.New("dataview: unknown chart variant")
	// ErrUnknownScope indicates an unsupported snapshot scope.
	ErrUnknownScope = errors.New("dataview: unknown snapshot scope")
)

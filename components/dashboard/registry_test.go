package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/provider"
)

func withHooks(t *testing.T, hooks ...PageHook) {
	t.Helper()
	globalHookMu.Lock()
	saved := globalHooks
	globalHooks = append([]PageHook(nil), hooks...)
	globalHookMu.Unlock()
	t.Cleanup(func() {
		globalHookMu.Lock()
		globalHooks = saved
		globalHookMu.Unlock()
	})
}

func TestRegistryPagesAreOrdered(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	pages := reg.Pages()
	codes := make([]string, len(pages))
	for i, page := range pages {
		codes[i] = page.Code
	}
	assert.Equal(t, []string{
		provider.PageOverview,
		provider.PageWarehouse,
		provider.PageCustomerService,
		provider.PageReturns,
		provider.PageInventory,
	}, codes)
}

func TestRegistryWithoutDefaults(t *testing.T) {
	reg, err := NewRegistry(WithoutDefaults())
	require.NoError(t, err)
	assert.Empty(t, reg.Pages())

	err = reg.RegisterWidget(provider.PageOverview, WidgetDefinition{Code: "x", Kind: KindGrid, Title: "X", Dataset: "carriers", Grid: &GridSpec{}})
	assert.ErrorIs(t, err, ErrUnknownPage)
}

func TestRegistryHooksRunOnNewRegistries(t *testing.T) {
	withHooks(t, func(reg *Registry) error {
		return reg.RegisterPage(PageDefinition{
			Code:  "dock",
			Title: "Dock",
			Order: 5,
			Widgets: []WidgetDefinition{
				{Code: "dock.carriers", Kind: KindGrid, Title: "Carriers", Dataset: provider.DatasetCarriers, Grid: &GridSpec{}},
			},
		})
	})

	reg, err := NewRegistry()
	require.NoError(t, err)
	pages := reg.Pages()
	require.NotEmpty(t, pages)
	assert.Equal(t, "dock", pages[0].Code)
}

func TestRegistryHookErrorFailsConstruction(t *testing.T) {
	boom := errors.New("boom")
	withHooks(t, func(*Registry) error { return boom })

	_, err := NewRegistry()
	assert.ErrorIs(t, err, boom)
}

func TestRegistryRegisterWidgetReplacesInPlace(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	before, _ := reg.Page(provider.PageReturns)
	replacement := before.Widgets[0]
	replacement.Title = "RMA Trend (replaced)"
	require.NoError(t, reg.RegisterWidget(provider.PageReturns, replacement))

	after, _ := reg.Page(provider.PageReturns)
	require.Len(t, after.Widgets, len(before.Widgets))
	assert.Equal(t, "RMA Trend (replaced)", after.Widgets[0].Title)
	assert.Equal(t, "RMA Activity Trend", before.Widgets[0].Title, "registered pages are copied")
}

func TestRegistryRejectsDuplicateAndInvalidWidgets(t *testing.T) {
	reg, err := NewRegistry(WithoutDefaults())
	require.NoError(t, err)

	grid := WidgetDefinition{Code: "w", Kind: KindGrid, Title: "W", Dataset: "carriers", Grid: &GridSpec{}}
	err = reg.RegisterPage(PageDefinition{Code: "p", Title: "P", Widgets: []WidgetDefinition{grid, grid}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget")

	err = reg.RegisterPage(PageDefinition{Code: "p", Title: "P", Widgets: []WidgetDefinition{{Code: "bad", Kind: KindChart, Title: "Bad", Dataset: "carriers"}}})
	assert.ErrorIs(t, err, ErrInvalidWidget)

	require.Error(t, reg.RegisterPage(PageDefinition{Title: "No code"}))
}

func TestRegistryWithValidatorOverride(t *testing.T) {
	reg, err := NewRegistry(WithoutDefaults(), WithValidator(nil))
	require.NoError(t, err)
	err = reg.RegisterPage(PageDefinition{Code: "p", Title: "P", Widgets: []WidgetDefinition{{Code: "loose", Kind: "gauge"}}})
	assert.NoError(t, err)
}

func TestPageDefinitionWidgetLookup(t *testing.T) {
	page := inventoryPage()
	def, ok := page.Widget("inventory.health")
	require.True(t, ok)
	assert.Equal(t, ChartScatter, def.Chart.Type)
	assert.True(t, def.Exportable())

	alert, _ := page.Widget("inventory.critical_alert")
	assert.False(t, alert.Exportable())

	_, ok = page.Widget("inventory.none")
	assert.False(t, ok)
}

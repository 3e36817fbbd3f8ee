package dataview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueStringUsesRawForm(t *testing.T) {
	assert.Equal(t, "1200", IntValue(1200).String())
	assert.Equal(t, "98.5", NumberValue(98.5).String())
	assert.Equal(t, "critical", LabelValue("critical").String())
	assert.Equal(t, "", MissingValue().String())
}

func TestValueOfConvertsLooseInput(t *testing.T) {
	cases := []struct {
		name string
		in   any
		kind Kind
		want string
	}{
		{name: "nil", in: nil, kind: KindMissing, want: ""},
		{name: "string", in: "Zone A", kind: KindString, want: "Zone A"},
		{name: "int", in: 42, kind: KindNumber, want: "42"},
		{name: "float", in: 1.25, kind: KindNumber, want: "1.25"},
		{name: "json number", in: json.Number("7"), kind: KindNumber, want: "7"},
		{name: "bool", in: true, kind: KindString, want: "true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := ValueOf(tc.in)
			assert.Equal(t, tc.kind, v.Kind())
			assert.Equal(t, tc.want, v.String())
		})
	}
}

func TestOptionalValues(t *testing.T) {
	csat := 4.5
	assert.True(t, OptionalNumber(nil).IsMissing())
	assert.Equal(t, "4.5", OptionalNumber(&csat).String())
	status := "busy"
	assert.True(t, OptionalLabel(nil).IsEmpty())
	assert.Equal(t, KindLabel, OptionalLabel(&status).Kind())
}

func TestMissingAndEmptyAreEquivalent(t *testing.T) {
	assert.True(t, MissingValue().IsEmpty())
	assert.True(t, StringValue("").IsEmpty())
	assert.False(t, IntValue(0).IsEmpty())
	f := DefaultFormatter()
	assert.Equal(t, f.Display(MissingValue()), f.Display(StringValue("")))
}

func TestFormatterDisplayGroupsThousands(t *testing.T) {
	f := DefaultFormatter()
	assert.Equal(t, "1,200", f.Display(IntValue(1200)))
	assert.Equal(t, "1,234.5", f.Display(NumberValue(1234.5)))
	assert.Equal(t, "42", f.Display(IntValue(42)))
	assert.Equal(t, "Defective", f.Display(StringValue("Defective")))
}

func TestParseFormatter(t *testing.T) {
	f, err := ParseFormatter("de-DE")
	require.NoError(t, err)
	assert.Equal(t, "1.200", f.Display(IntValue(1200)))

	f, err = ParseFormatter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, f.Locale())

	_, err = ParseFormatter("not a locale!")
	require.Error(t, err)
}

package dataview

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind classifies the value held by a record field.
type Kind int

const (
	// KindMissing marks an absent optional field.
	KindMissing Kind = iota
	// KindString holds free text.
	KindString
	// KindNumber holds a numeric measurement.
	KindNumber
	// KindLabel holds a value drawn from a small closed set (status, priority, shift).
	KindLabel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindLabel:
		return "label"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Value is a typed record cell. The zero value is a missing value.
type Value struct {
	kind Kind
	text string
	num  float64
}

// StringValue wraps free text.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// NumberValue wraps a numeric measurement.
func NumberValue(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// IntValue wraps an integer measurement.
func IntValue(n int) Value {
	return NumberValue(float64(n))
}

// LabelValue wraps an enumerated label.
func LabelValue(s string) Value {
	return Value{kind: KindLabel, text: s}
}

// MissingValue returns the value used for absent optional fields.
func MissingValue() Value {
	return Value{}
}

// OptionalNumber returns a number value, or a missing value when n is nil.
func OptionalNumber(n *float64) Value {
	if n == nil {
		return MissingValue()
	}
	return NumberValue(*n)
}

// OptionalLabel returns a label value, or a missing value when s is nil.
func OptionalLabel(s *string) Value {
	if s == nil {
		return MissingValue()
	}
	return LabelValue(*s)
}

// ValueOf converts loosely typed input (manifest fixtures, decoded JSON) into a Value.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return MissingValue()
	case Value:
		return val
	case string:
		return StringValue(val)
	case float64:
		return NumberValue(val)
	case float32:
		return NumberValue(float64(val))
	case int:
		return NumberValue(float64(val))
	case int64:
		return NumberValue(float64(val))
	case int32:
		return NumberValue(float64(val))
	case uint:
		return NumberValue(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(val.String())
	case bool:
		return StringValue(strconv.FormatBool(val))
	case fmt.Stringer:
		return StringValue(val.String())
	default:
		return StringValue(fmt.Sprint(val))
	}
}

// Kind reports the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the field was absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric value. ok is false for non-numeric values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return math.NaN(), false
	}
	return v.num, true
}

// Raw returns the underlying Go value: string, float64, or nil when missing.
func (v Value) Raw() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString, KindLabel:
		return v.text
	default:
		return nil
	}
}

// String returns the plain stringification used for exact matching.
// Numbers use their shortest decimal form, missing values are empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString, KindLabel:
		return v.text
	default:
		return ""
	}
}

// IsEmpty reports whether the value stringifies to nothing.
// Missing and present-but-empty fields are indistinguishable here.
func (v Value) IsEmpty() bool {
	return v.kind != KindNumber && v.text == ""
}

// Formatter renders values for display using locale-aware number grouping.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// DefaultLocale is used when no locale is configured.
var DefaultLocale = language.AmericanEnglish

var defaultFormatter = NewFormatter(DefaultLocale)

// NewFormatter builds a formatter for the given locale.
func NewFormatter(tag language.Tag) Formatter {
	return Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// ParseFormatter builds a formatter from a BCP 47 locale string, falling back to DefaultLocale.
func ParseFormatter(locale string) (Formatter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return defaultFormatter, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return defaultFormatter, fmt.Errorf("dataview: parse locale %q: %w", locale, err)
	}
	return NewFormatter(tag), nil
}

// DefaultFormatter returns the en-US formatter.
func DefaultFormatter() Formatter {
	return defaultFormatter
}

// Locale returns the formatter locale.
func (f Formatter) Locale() language.Tag {
	if f.printer == nil {
		return DefaultLocale
	}
	return f.tag
}

// Display returns the string shown to users and used for search and export.
// Numbers get thousands separators, at most three fraction digits.
func (f Formatter) Display(v Value) string {
	switch v.kind {
	case KindNumber:
		printer := f.printer
		if printer == nil {
			printer = defaultFormatter.printer
		}
		return printer.Sprint(number.Decimal(v.num))
	case KindString, KindLabel:
		return v.text
	default:
		return ""
	}
}

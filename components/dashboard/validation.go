package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefinitionValidator checks widget definitions before they are registered.
type DefinitionValidator interface {
	Validate(def WidgetDefinition) error
}

// SpecValidator validates widget definitions against a JSON schema per widget kind.
type SpecValidator struct {
	mu       sync.RWMutex
	schemas  map[WidgetKind]map[string]any
	compiled map[WidgetKind]*jsonschema.Schema
}

// NewSpecValidator builds a validator for the built-in widget kinds backed by jsonschema v5.
func NewSpecValidator() *SpecValidator {
	return &SpecValidator{
		schemas: map[WidgetKind]map[string]any{
			KindChart: chartWidgetSchema(),
			KindGrid:  gridWidgetSchema(),
			KindAlert: alertWidgetSchema(),
			KindList:  listWidgetSchema(),
		},
		compiled: make(map[WidgetKind]*jsonschema.Schema),
	}
}

// Validate ensures the definition satisfies the schema of its kind.
func (v *SpecValidator) Validate(def WidgetDefinition) error {
	schema, err := v.schemaFor(def.Kind)
	if err != nil {
		return err
	}
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("dashboard: marshal widget %s: %w", def.Code, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("dashboard: normalize widget %s: %w", def.Code, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidWidget, def.Code, err)
	}
	return nil
}

func (v *SpecValidator) schemaFor(kind WidgetKind) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[kind]
	raw, known := v.schemas[kind]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidWidget, kind)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", kind, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(kind) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", kind, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", kind, err)
	}
	v.mu.Lock()
	v.compiled[kind] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopDefinitionValidator struct{}

func (noopDefinitionValidator) Validate(WidgetDefinition) error { return nil }

func nonEmptyString() map[string]any {
	return map[string]any{"type": "string", "minLength": 1}
}

func widgetSchema(kind WidgetKind, specKey string, spec map[string]any) map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"code", "kind", "title", "dataset", specKey},
		"properties": map[string]any{
			"code":    nonEmptyString(),
			"kind":    map[string]any{"const": string(kind)},
			"title":   nonEmptyString(),
			"dataset": nonEmptyString(),
			specKey:   spec,
		},
	}
}

func chartWidgetSchema() map[string]any {
	option := map[string]any{
		"type":     "object",
		"required": []string{"value"},
		"properties": map[string]any{
			"value": map[string]any{"type": "string"},
			"label": map[string]any{"type": "string"},
		},
	}
	filter := map[string]any{
		"type":     "object",
		"required": []string{"key"},
		"properties": map[string]any{
			"key":     nonEmptyString(),
			"label":   map[string]any{"type": "string"},
			"options": map[string]any{"type": []string{"array", "null"}, "items": option},
		},
	}
	keys := map[string]any{"type": "array", "minItems": 1, "items": nonEmptyString()}
	spec := map[string]any{
		"type":     "object",
		"required": []string{"type"},
		"properties": map[string]any{
			"type":    map[string]any{"enum": []string{"bar", "line", "area", "pie", "scatter"}},
			"filters": map[string]any{"type": "array", "items": filter},
			"height":  map[string]any{"type": "integer", "minimum": 0},
		},
		"allOf": []any{
			map[string]any{
				"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"enum": []string{"bar", "line", "area"}}}},
				"then": map[string]any{"required": []string{"x_axis_key", "data_keys"}, "properties": map[string]any{"data_keys": keys}},
			},
			map[string]any{
				"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": "pie"}}},
				"then": map[string]any{"required": []string{"value_key", "label_key"}},
			},
			map[string]any{
				"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": "scatter"}}},
				"then": map[string]any{"required": []string{"x_axis_key", "y_axis_key"}},
			},
		},
	}
	return widgetSchema(KindChart, "chart", spec)
}

func gridWidgetSchema() map[string]any {
	column := map[string]any{
		"type":       "object",
		"required":   []string{"field"},
		"properties": map[string]any{"field": nonEmptyString(), "header": map[string]any{"type": "string"}},
	}
	spec := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"columns":       map[string]any{"type": "array", "items": column},
			"search_fields": map[string]any{"type": "array", "items": nonEmptyString()},
			"page_size":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"export":        map[string]any{"type": "boolean"},
		},
	}
	return widgetSchema(KindGrid, "grid", spec)
}

func alertWidgetSchema() map[string]any {
	spec := map[string]any{
		"type":     "object",
		"required": []string{"field", "value", "name_field"},
		"properties": map[string]any{
			"field":      nonEmptyString(),
			"value":      map[string]any{"type": "string"},
			"name_field": nonEmptyString(),
			"max":        map[string]any{"type": "integer", "minimum": 0},
			"subject":    map[string]any{"type": "string"},
		},
	}
	return widgetSchema(KindAlert, "alert", spec)
}

func listWidgetSchema() map[string]any {
	spec := map[string]any{
		"type":     "object",
		"required": []string{"label_field", "value_field"},
		"properties": map[string]any{
			"label_field":  nonEmptyString(),
			"value_field":  nonEmptyString(),
			"progress_max": map[string]any{"type": "number", "minimum": 0},
			"limit":        map[string]any{"type": "integer", "minimum": 0},
		},
	}
	return widgetSchema(KindList, "list", spec)
}

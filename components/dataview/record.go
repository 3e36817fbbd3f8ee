package dataview

// IDField is the conventional identity field of a record.
const IDField = "id"

// Field is a single key/value pair of a record.
type Field struct {
	Key   string
	Value Value
}

// NewField pairs a key with a value.
func NewField(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Record is an ordered, immutable mapping from field name to value.
// Records within one collection share the same field set; optional fields
// may be present as missing values.
type Record struct {
	fields []Field
}

// NewRecord builds a record preserving field order. A repeated key replaces the
// earlier value in place.
func NewRecord(fields ...Field) Record {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		replaced := false
		for i := range out {
			if out[i].Key == f.Key {
				out[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, f)
		}
	}
	return Record{fields: out}
}

// RecordFromMap builds a record from a loosely typed map using the given key order.
// Keys present in values but not in order are ignored.
func RecordFromMap(order []string, values map[string]any) Record {
	fields := make([]Field, 0, len(order))
	for _, key := range order {
		v, ok := values[key]
		if !ok {
			fields = append(fields, NewField(key, MissingValue()))
			continue
		}
		fields = append(fields, NewField(key, ValueOf(v)))
	}
	return NewRecord(fields...)
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the ordered fields.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Lookup returns the value for key and whether the key is declared on the record.
func (r Record) Lookup(key string) (Value, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return MissingValue(), false
}

// Get returns the value for key, or a missing value.
func (r Record) Get(key string) Value {
	v, _ := r.Lookup(key)
	return v
}

// Has reports whether key is declared and not missing.
func (r Record) Has(key string) bool {
	v, ok := r.Lookup(key)
	return ok && !v.IsMissing()
}

// With returns a copy of the record with key set to value.
func (r Record) With(key string, value Value) Record {
	out := make([]Field, len(r.fields), len(r.fields)+1)
	copy(out, r.fields)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return Record{fields: out}
		}
	}
	return Record{fields: append(out, NewField(key, value))}
}

// ID returns the record's own identity when it carries a non-empty id field.
func (r Record) ID() (string, bool) {
	v, ok := r.Lookup(IDField)
	if !ok || v.IsMissing() || v.IsEmpty() {
		return "", false
	}
	return v.String(), true
}

// Map returns the record as a map of raw values. Missing values map to nil.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		out[f.Key] = f.Value.Raw()
	}
	return out
}

// KeysOf returns the union of field names across records in first-seen order.
func KeysOf(records []Record) []string {
	return MergeKeys(nil, records)
}

// MergeKeys starts from declared and appends keys found in records that were not declared.
func MergeKeys(declared []string, records []Record) []string {
	seen := make(map[string]struct{}, len(declared))
	keys := make([]string, 0, len(declared))
	for _, key := range declared {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, rec := range records {
		for _, f := range rec.fields {
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// CloneRecords copies the slice header so callers can hold a snapshot.
// Records are immutable, so a shallow copy is sufficient.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	return append([]Record(nil), records...)
}

package dataview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordPreservesFieldOrder(t *testing.T) {
	rec := NewRecord(
		NewField("zone", StringValue("A")),
		NewField("capacity", IntValue(100)),
		NewField("zone", StringValue("B")),
	)
	assert.Equal(t, []string{"zone", "capacity"}, rec.Keys())
	assert.Equal(t, "B", rec.Get("zone").String())
}

func TestRecordWithDoesNotMutateOriginal(t *testing.T) {
	rec := NewRecord(NewField("status", LabelValue("ok")))
	next := rec.With("status", LabelValue("critical")).With("note", StringValue("x"))

	assert.Equal(t, "ok", rec.Get("status").String())
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, "critical", next.Get("status").String())
	assert.Equal(t, []string{"status", "note"}, next.Keys())
}

func TestRecordID(t *testing.T) {
	id, ok := NewRecord(NewField("id", StringValue("RMA-1"))).ID()
	assert.True(t, ok)
	assert.Equal(t, "RMA-1", id)

	_, ok = NewRecord(NewField("id", StringValue(""))).ID()
	assert.False(t, ok)

	_, ok = NewRecord(NewField("name", StringValue("x"))).ID()
	assert.False(t, ok)
}

func TestRecordFromMapMarksAbsentKeysMissing(t *testing.T) {
	rec := RecordFromMap([]string{"name", "csat"}, map[string]any{"name": "Ana", "extra": 1})
	assert.Equal(t, []string{"name", "csat"}, rec.Keys())
	assert.True(t, rec.Get("csat").IsMissing())
	assert.False(t, rec.Has("csat"))
	assert.True(t, rec.Has("name"))
}

func TestMergeKeysUnionInFirstSeenOrder(t *testing.T) {
	records := []Record{
		NewRecord(NewField("name", StringValue("a")), NewField("calls", IntValue(1))),
		NewRecord(NewField("name", StringValue("b")), NewField("csat", NumberValue(4.2))),
	}
	assert.Equal(t, []string{"name", "calls", "csat"}, KeysOf(records))
	assert.Equal(t, []string{"status", "name", "calls", "csat"}, MergeKeys([]string{"status", "name"}, records))
}

package dataview

import "fmt"

func inventoryRecords() []Record {
	statuses := []string{"ok", "low", "critical", "ok", "ok", "overstock", "critical", "low", "ok", "ok"}
	categories := []string{"Hardware", "Tools", "Hardware", "Electrical", "Plumbing", "Tools", "Electrical", "Hardware", "Tools", "Plumbing"}
	out := make([]Record, len(statuses))
	for i := range statuses {
		out[i] = NewRecord(
			NewField("sku", StringValue(fmt.Sprintf("SKU-%04d", 1000+i))),
			NewField("name", StringValue(fmt.Sprintf("Item %d", i+1))),
			NewField("category", LabelValue(categories[i])),
			NewField("currentStock", IntValue(100+i*250)),
			NewField("reorderPoint", IntValue(200)),
			NewField("status", LabelValue(statuses[i])),
		)
	}
	return out
}

func rmaRecords() []Record {
	reasons := []string{"Defective", "Wrong Item", "Damaged in Transit", "Not as Described", "Changed Mind", "defect on arrival"}
	out := make([]Record, 24)
	for i := range out {
		out[i] = NewRecord(
			NewField("id", StringValue(fmt.Sprintf("RMA-%05d", 10000+i))),
			NewField("orderId", StringValue(fmt.Sprintf("ORD-%06d", 500000+i))),
			NewField("reason", StringValue(reasons[i%len(reasons)])),
			NewField("value", NumberValue(float64(50+i*75))),
		)
	}
	return out
}

func keysOf(records []Record, key string) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Get(key).String()
	}
	return out
}

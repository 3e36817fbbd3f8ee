package export

import "github.com/ettle/strcase"

// HumanizeLabel turns a field key into a header label: "reorderPoint" becomes
// "Reorder Point". It only affects display text, lookups keep the key.
func HumanizeLabel(key string) string {
	if key == "" {
		return ""
	}
	return strcase.ToCase(key, strcase.TitleCase, ' ')
}

// HumanizeLabels maps HumanizeLabel over keys.
func HumanizeLabels(keys []string) []string {
	out := make([]string, len(keys))
	for i, key := range keys {
		out[i] = HumanizeLabel(key)
	}
	return out
}

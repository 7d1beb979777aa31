package models

// ExportRecord is one fully flattened CSV row. Keys keep the order they
// were first set in; setting an existing key overwrites its value but
// keeps its original position, matching how the legacy exporter built
// rows as plain objects.
type ExportRecord struct {
	keys   []string
	values map[string]string
}

func NewExportRecord() ExportRecord {
	return ExportRecord{values: make(map[string]string)}
}

func (r *ExportRecord) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key, or "" when the record has no such
// column. Missing columns are a normal state for heterogeneous rows.
func (r ExportRecord) Get(key string) string {
	return r.values[key]
}

func (r ExportRecord) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the column names in first-set order.
func (r ExportRecord) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r ExportRecord) Len() int {
	return len(r.keys)
}

package bson

import "sync"

// schemaRegistry is the process-wide, thread-safe map from an opaque
// schema id to its expected field order, used solely to parameterize the
// ordered matcher (spec §4.8). It is distinct from any one document's
// own field index.
type schemaRegistry struct {
	mu    sync.RWMutex
	order map[string][]string
}

var globalSchemas = &schemaRegistry{order: make(map[string][]string)}

// RegisterSchema records fieldOrder under id, last write wins. Called
// directly by applications that already know their schema, and
// internally by the partial parser's auto-learn path.
func RegisterSchema(id string, fieldOrder []string) {
	owned := make([]string, len(fieldOrder))
	copy(owned, fieldOrder)

	globalSchemas.mu.Lock()
	globalSchemas.order[id] = owned
	globalSchemas.mu.Unlock()
}

// GetSchemaFieldOrder returns the field order registered under id, and
// whether one exists.
func GetSchemaFieldOrder(id string) ([]string, bool) {
	globalSchemas.mu.RLock()
	defer globalSchemas.mu.RUnlock()
	order, ok := globalSchemas.order[id]
	return order, ok
}

// ClearSchemas empties the registry. Applications that don't want stale
// learned schemas outliving a reload call this at shutdown or reset
// points; nothing does it automatically.
func ClearSchemas() {
	globalSchemas.mu.Lock()
	globalSchemas.order = make(map[string][]string)
	globalSchemas.mu.Unlock()
}

package dialect

import (
	"sort"
	"strings"
	"sync"
)

// Global dialect registry. Dialect implementations register themselves in
// their init() functions; lookups at parse time are read-only.
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

// Register expands the dialect and stores it under its lowercased name.
// Expansion errors are returned so broken definitions fail at startup.
func Register(d *Dialect) error {
	expanded, err := d.Expand()
	if err != nil {
		return err
	}
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = expanded
	return nil
}

// MustRegister is Register for init() functions; it panics on error.
func MustRegister(d *Dialect) {
	if err := Register(d); err != nil {
		panic(err)
	}
}

// Get returns an expanded dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

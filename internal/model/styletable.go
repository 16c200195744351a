package model

import (
	"fmt"
	"sort"
	"strings"
)

// StyleTable maps style-table keys to concrete layout style names for one
// document, e.g. paragraph -> "Normal". Tables are caller-supplied; the
// resolver never invents a default for a missing key.
type StyleTable map[StyleKey]string

// RequiredKeys lists the keys a complete style table defines
func RequiredKeys() []StyleKey {
	return []StyleKey{KeyHeading, KeySectionHeader, KeyParagraph, KeyNumbered, KeyWherefore}
}

// Validate reports every required key the table is missing. A nil error means
// any classifiable draft can be projected against this table.
func (t StyleTable) Validate() error {
	var missing []string
	for _, k := range RequiredKeys() {
		if t[k] == "" {
			missing = append(missing, string(k))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("style table missing keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Clone returns an independent copy of the table
func (t StyleTable) Clone() StyleTable {
	out := make(StyleTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Fingerprint returns a canonical textual form of the table, stable across
// map iteration order. Used for cache keys.
func (t StyleTable) Fingerprint() string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + t[StyleKey(k)]
	}
	return strings.Join(parts, ";")
}

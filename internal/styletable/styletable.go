// Package styletable loads, saves and derives the per-document style tables
// the resolver consumes.
package styletable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caselith/lexfmt/internal/model"
)

// Builtin returns the conventional Word style names, used when the caller
// supplies no table of its own
func Builtin() model.StyleTable {
	return model.StyleTable{
		model.KeyHeading:       "Heading 1",
		model.KeySectionHeader: "Heading 2",
		model.KeyParagraph:     "Normal",
		model.KeyNumbered:      "List Number",
		model.KeyWherefore:     "Heading 2",
	}
}

// Load reads a style table from a YAML file mapping style keys to style
// names. Unknown keys are rejected; missing keys are not, because a partial
// table is legal until a draft actually needs the absent entry.
func Load(path string) (model.StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style table: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse style table %s: %w", path, err)
	}

	valid := make(map[string]bool)
	for _, k := range model.RequiredKeys() {
		valid[string(k)] = true
	}

	table := make(model.StyleTable, len(raw))
	for k, v := range raw {
		if !valid[k] {
			return nil, fmt.Errorf("style table %s: unknown key %q", path, k)
		}
		table[model.StyleKey(k)] = v
	}
	return table, nil
}

// Save writes a style table as YAML
func Save(path string, table model.StyleTable) error {
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[string(k)] = v
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal style table: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write style table: %w", err)
	}
	return nil
}

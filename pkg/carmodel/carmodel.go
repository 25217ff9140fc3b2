package carmodel

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Table maps the carModel id used in session result files to a display name.
// It is loaded once at startup and read-only afterwards.
type Table struct {
	names map[int]string
}

// Default returns the built-in table of ACC car models.
func Default() *Table {
	names := make(map[int]string, len(builtin))
	for id, name := range builtin {
		names[id] = name
	}
	return &Table{names: names}
}

// Lookup resolves a carModel id. An unknown id means the table is stale and
// is reported as an error rather than dropped.
func (t *Table) Lookup(carModel int) (string, error) {
	name, ok := t.names[carModel]
	if !ok {
		return "", fmt.Errorf("unknown car model id %d: %w", carModel, ErrUnknownCarModel)
	}
	return name, nil
}

// IDs returns all known carModel ids in ascending order.
func (t *Table) IDs() []int {
	ids := make([]int, 0, len(t.names))
	for id := range t.names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (t *Table) Len() int {
	return len(t.names)
}

// MergeFile reads a yaml file of carModel id to name pairs and merges it into
// the table. Entries for known ids overwrite the built-in name, so the table
// can follow game updates without a new build.
func (t *Table) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read car model file %s: %w", path, err)
	}
	extra := map[int]string{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("could not parse car model file %s: %w", path, err)
	}
	for id, name := range extra {
		t.names[id] = name
	}
	return nil
}

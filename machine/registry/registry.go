// Package registry lets each machine package self-register at init() time,
// in the style of database/sql drivers, so a front-end can discover every
// linked-in machine by name without importing each one explicitly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/patsoffice/arcadecore/machine"
	"github.com/patsoffice/arcadecore/rom"
)

// Factory constructs a Machine from a loaded ROM set.
type Factory func(set *rom.Set) (machine.Machine, error)

// Entry describes one front-end-selectable machine.
type Entry struct {
	// Name is the CLI/front-end selector, e.g. "joust".
	Name string
	// RomName is the MAME ROM set name used to locate a ZIP, e.g. "joust".
	RomName string
	Create  Factory
}

var (
	mu      sync.Mutex
	entries = map[string]Entry{}
)

// Register adds e to the registry. It panics on a duplicate name, since
// that can only happen from a programming mistake at init() time.
func Register(e Entry) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := entries[e.Name]; exists {
		panic(fmt.Sprintf("registry: duplicate machine name %q", e.Name))
	}
	entries[e.Name] = e
}

// All returns every registered machine, sorted by name.
func All() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Find looks up a registered machine by name.
func Find(name string) (Entry, bool) {
	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[name]
	return e, ok
}

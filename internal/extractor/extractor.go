// Package extractor defines the contract document parsers implement to
// feed the grading engine, with a registry of named implementations
// selected by configuration. Implementations are compiled in and chosen by
// name; there is no runtime loading of external artifacts.
package extractor

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/specgrade/specgrade/internal/groundtruth"
)

// Extractor turns a raw document into chunks and entities.
type Extractor interface {
	Extract(r io.Reader, name string) (*groundtruth.Document, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]func() Extractor{}
)

// Register makes an extractor constructor available under a name. It
// panics on duplicate registration, which indicates a wiring bug.
func Register(name string, fn func() Extractor) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("extractor %q registered twice", name))
	}
	registry[name] = fn
}

// New returns a fresh extractor instance by name.
func New(name string) (Extractor, error) {
	mu.RLock()
	fn, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown extractor %q (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the registered extractor names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

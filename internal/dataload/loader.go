// internal/dataload/loader.go
package dataload

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Loader reads a JSON data file once and caches the decoded value for the
// process lifetime. Reset drops the cache (test/administrative use).
type Loader[T any] struct {
	path   string
	mu     sync.Mutex
	cached *T
}

func New[T any](path string) *Loader[T] {
	return &Loader[T]{path: path}
}

// Path returns the backing file path.
func (l *Loader[T]) Path() string {
	return l.path
}

func (l *Loader[T]) Load() (*T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read data file %s: %w", l.path, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode data file %s: %w", l.path, err)
	}

	l.cached = &v
	return l.cached, nil
}

func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

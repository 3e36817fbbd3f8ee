package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidName indicates an artifact name that is not a single path segment.
var ErrInvalidName = errors.New("export: invalid artifact name")

// Store persists encoded artifacts. Writing an existing name replaces it.
type Store interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// DirStore writes artifacts into a local directory.
type DirStore struct {
	dir  string
	perm os.FileMode
}

// NewDirStore returns a store rooted at dir. The directory is created on first write.
func NewDirStore(dir string) *DirStore {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &DirStore{dir: dir, perm: 0o644}
}

// Dir returns the output directory.
func (s *DirStore) Dir() string { return s.dir }

// Put writes data to dir/name and returns the file path.
func (s *DirStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, s.perm); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

// MemoryStore keeps artifacts in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: map[string][]byte{}}
}

// Put stores a copy of data under name.
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validName(name); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return "memory://" + name, nil
}

// Get returns the stored bytes for name.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Names lists stored artifact names in lexical order.
func (s *MemoryStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

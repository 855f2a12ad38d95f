// Package preview serves the component workbench: named prop sets loaded
// from YAML files, reloaded when the files change, with connected preview
// pages told to refresh over a websocket.
package preview

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/happyplace/internal/props"
)

// Fixture is one named set of props for a component. A fixture file holds
// one or more YAML documents.
type Fixture struct {
	ID          string    `yaml:"-" json:"id"`
	File        string    `yaml:"-" json:"file"`
	Component   string    `yaml:"component" json:"component"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Props       props.Map `yaml:"props" json:"props"`
}

// IsFixtureFile reports whether name looks like a fixture file.
func IsFixtureFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return (ext == ".yaml" || ext == ".yml") && !strings.HasPrefix(filepath.Base(name), ".")
}

// LoadFile reads every fixture document in path.
func LoadFile(path string) ([]Fixture, error) {
	f, err := os.Open(path) // #nosec G304 -- fixture directory is operator supplied
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dec := yaml.NewDecoder(f)
	var out []Fixture
	for doc := 1; ; doc++ {
		var fx Fixture
		err := dec.Decode(&fx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", filepath.Base(path), doc, err)
		}
		fx.Component = strings.ToLower(strings.TrimSpace(fx.Component))
		if fx.Component == "" {
			continue
		}
		fx.ID = base + "-" + strconv.Itoa(doc)
		fx.File = filepath.Base(path)
		if fx.Title == "" {
			fx.Title = fx.Component
		}
		if fx.Props == nil {
			fx.Props = props.Map{}
		}
		out = append(out, fx)
	}
	return out, nil
}

// LoadDir reads every fixture file in dir, ordered by file name. A missing
// directory yields no fixtures.
func LoadDir(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []Fixture
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !IsFixtureFile(e.Name()) {
			continue
		}
		fixtures, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, fixtures...)
	}
	return out, errors.Join(errs...)
}

// Store holds the fixtures of one directory and swaps them on Reload.
type Store struct {
	dir      string
	mu       sync.RWMutex
	fixtures []Fixture
}

// NewStore loads dir. Files that fail to parse are reported in the error
// while the rest are kept.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	return s, s.Reload()
}

// Dir returns the watched directory.
func (s *Store) Dir() string { return s.dir }

// Reload re-reads the directory.
func (s *Store) Reload() error {
	fixtures, err := LoadDir(s.dir)
	s.mu.Lock()
	s.fixtures = fixtures
	s.mu.Unlock()
	return err
}

// All returns every fixture.
func (s *Store) All() []Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Fixture(nil), s.fixtures...)
}

// ForComponent returns the fixtures of one component.
func (s *Store) ForComponent(name string) []Fixture {
	name = strings.ToLower(name)
	var out []Fixture
	for _, fx := range s.All() {
		if fx.Component == name {
			out = append(out, fx)
		}
	}
	return out
}

// Get finds a fixture by id.
func (s *Store) Get(id string) (Fixture, bool) {
	for _, fx := range s.All() {
		if fx.ID == id {
			return fx, true
		}
	}
	return Fixture{}, false
}

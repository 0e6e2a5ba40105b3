// Package entity holds the ordered (name, codepoint) tables that entitygen
// compiles into decision procedures.
package entity

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyName        = errors.New("entity name is empty")
	ErrInvalidCodepoint = errors.New("codepoint is outside the unicode range")
)

// Entity is a named symbolic identifier paired with a single codepoint.
type Entity struct {
	Name      string `yaml:"name"`
	Codepoint uint32 `yaml:"codepoint"`
}

func (e Entity) String() string {
	return fmt.Sprintf("%s(%d)", e.Name, e.Codepoint)
}

// Table is an ordered entity list. Declaration order decides the order
// of the emitted branches, so it is never sorted.
type Table []Entity

// DuplicateError reports a name declared more than once.
type DuplicateError struct {
	Name   string
	First  int // index of the first declaration
	Second int // index of the colliding declaration
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("entity %q declared at %d and again at %d", e.Name, e.First, e.Second)
}

// Check returns every problem found in the table, in declaration order.
func (t Table) Check() []error {
	var problems []error
	seen := make(map[string]int, len(t))

	for i, e := range t {
		if e.Name == "" {
			problems = append(problems, fmt.Errorf("entry %d: %w", i, ErrEmptyName))
		}
		if e.Codepoint > utf8.MaxRune {
			problems = append(problems, fmt.Errorf("entry %d (%s): %w", i, e.Name, ErrInvalidCodepoint))
		}
		if first, ok := seen[e.Name]; ok {
			problems = append(problems, &DuplicateError{Name: e.Name, First: first, Second: i})
			continue
		}
		seen[e.Name] = i
	}

	return problems
}

// Validate joins the result of Check into a single error.
func (t Table) Validate() error {
	return errors.Join(t.Check()...)
}

// Names returns the entity names in declaration order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

// tableFile is the on-disk layout of an entity table.
type tableFile struct {
	Entities Table `yaml:"entities"`
}

// Decode reads a YAML entity table. File order is preserved.
func Decode(r io.Reader) (Table, error) {
	var f tableFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, nil
		}
		return nil, fmt.Errorf("failed to decode entity table: %w", err)
	}

	return f.Entities, nil
}

// Encode writes the table in the layout Decode accepts.
func Encode(w io.Writer, t Table) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(tableFile{Entities: t}); err != nil {
		return fmt.Errorf("failed to encode entity table: %w", err)
	}
	return encoder.Close()
}

// LoadFile reads the entity table stored at path.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

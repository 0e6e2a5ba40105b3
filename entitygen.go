// Package entitygen compiles an ordered entity table into a decision
// procedure that resolves a candidate character run to the codepoint of
// the entity it names.
//
// The table is turned into a prefix trie, single-path runs are collapsed,
// and the remaining branches are emitted as nested conditionals in the
// order the entities were declared.
package entitygen

import (
	"errors"
	"fmt"
	"io"

	"github.com/gnolang/entitygen/entity"
	"github.com/gnolang/entitygen/internal/decision"
	"github.com/gnolang/entitygen/internal/emit"
	"github.com/gnolang/entitygen/internal/trie"
)

// Backend selects the writer used to render the procedure.
type Backend string

const (
	// BackendText renders through a text/template Syntax.
	BackendText Backend = "text"
	// BackendGo renders a complete Go source file.
	BackendGo Backend = "go"
)

// Options controls a single generation run.
type Options struct {
	Backend Backend
	// Syntax is used by BackendText.
	Syntax emit.Syntax
	// Go is used by BackendGo.
	Go emit.GoOptions
	// Strict emits a procedure that rejects names outside the table.
	// Without it, characters inside collapsed runs are never compared.
	Strict bool
}

// DefaultOptions renders the generic text syntax.
func DefaultOptions() Options {
	syntax, _ := emit.Preset(emit.PresetGeneric)
	return Options{
		Backend: BackendText,
		Syntax:  syntax,
		Go:      emit.DefaultGoOptions,
	}
}

// Stats describes a finished run.
type Stats struct {
	Entities int
	Nodes    int
	Branches int
	Leaves   int
}

// Generate compiles table and writes the procedure to w. On error nothing
// is written.
func Generate(table entity.Table, opts Options, w io.Writer) (Stats, error) {
	var stats Stats

	if err := checkTable(table); err != nil {
		return stats, err
	}

	t, err := trie.Build(table)
	if err != nil {
		return stats, fmt.Errorf("failed to build trie: %w", err)
	}

	out, err := newWriter(opts, w)
	if err != nil {
		return stats, err
	}

	counter := decision.HandlerFunc(func(e decision.Event) error {
		switch e.Kind {
		case decision.Guard, decision.If, decision.ElseIf, decision.Else:
			stats.Branches++
		case decision.Leaf:
			stats.Leaves++
		}
		return out.Handle(e)
	})

	if err := decision.Walk(t, decision.Options{Strict: opts.Strict}, counter); err != nil {
		return Stats{}, fmt.Errorf("failed to emit procedure: %w", err)
	}
	if err := out.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to write procedure: %w", err)
	}

	stats.Entities = len(table)
	stats.Nodes = t.Len()
	return stats, nil
}

// Resolver resolves candidates in-process, exactly as the emitted
// procedure would.
type Resolver struct {
	prog *decision.Program
}

// NewResolver compiles table into a Resolver.
func NewResolver(table entity.Table, strict bool) (*Resolver, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	t, err := trie.Build(table)
	if err != nil {
		return nil, fmt.Errorf("failed to build trie: %w", err)
	}

	prog, err := decision.Compile(t, decision.Options{Strict: strict})
	if err != nil {
		return nil, err
	}
	return &Resolver{prog: prog}, nil
}

// Resolve returns the codepoint word resolves to.
func (r *Resolver) Resolve(word string) (uint32, bool) {
	return r.prog.ResolveString(word)
}

// checkTable rejects duplicates and invalid codepoints. An empty name is
// allowed: it matches the empty candidate.
func checkTable(table entity.Table) error {
	var problems []error
	for _, err := range table.Check() {
		if errors.Is(err, entity.ErrEmptyName) {
			continue
		}
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

func newWriter(opts Options, w io.Writer) (emit.Writer, error) {
	switch opts.Backend {
	case BackendText, "":
		return emit.NewTextWriter(w, opts.Syntax)
	case BackendGo:
		return emit.NewGoWriter(w, opts.Go)
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

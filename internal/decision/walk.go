// Package decision turns an entity trie into an ordered stream of
// conditional events, collapsing single-path runs on the way.
package decision

import (
	"fmt"

	"github.com/gnolang/entitygen/internal/trie"
)

// Options tunes the emitted procedure.
type Options struct {
	// Strict makes the procedure reject candidates outside the table:
	// comparisons are bounds-checked, chains have no bare else and leaves
	// compare the whole candidate with the entity name.
	Strict bool
}

// Event is one step of the decision procedure.
type Event struct {
	Kind Kind
	// Depth is the character index compared by the event. For a Guard it
	// is the candidate length being matched.
	Depth int
	// Level is the block nesting of the event.
	Level     int
	Char      rune
	Codepoint uint32
	// Name is the full entity name, set on leaves.
	Name   string
	Strict bool
}

func (e Event) String() string {
	switch e.Kind {
	case Guard:
		return fmt.Sprintf("%d:guard len==%d", e.Level, e.Depth)
	case If, ElseIf:
		return fmt.Sprintf("%d:%s [%d]==%q", e.Level, e.Kind, e.Depth, e.Char)
	case Leaf:
		return fmt.Sprintf("%d:leaf %d", e.Level, e.Codepoint)
	default:
		return fmt.Sprintf("%d:%s", e.Level, e.Kind)
	}
}

// Handler consumes the event stream.
type Handler interface {
	Handle(Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event) error

func (f HandlerFunc) Handle(e Event) error { return f(e) }

type walker struct {
	t    *trie.Trie
	opts Options
	h    Handler
}

// Walk traverses t depth first and feeds the events to h. The stream is
// fully determined by t, so equal tables yield equal streams.
func Walk(t *trie.Trie, opts Options, h Handler) error {
	w := walker{t: t, opts: opts, h: h}
	return w.node(trie.Root, 0, 0)
}

func (w *walker) node(idx trie.NodeIndex, depth, level int) error {
	if w.t.IsLeaf(idx) {
		return w.leaf(idx, level)
	}

	children := w.t.Children(idx)
	if len(children) == 1 {
		// single path: no comparison for this depth
		return w.node(children[0].Child, depth+1, level)
	}

	if term, ok := w.t.Terminal(idx); ok {
		if err := w.emit(Event{Kind: Guard, Depth: depth, Level: level, Strict: w.opts.Strict}); err != nil {
			return err
		}
		if err := w.node(term, depth+1, level+1); err != nil {
			return err
		}
		if err := w.emit(Event{Kind: End, Level: level}); err != nil {
			return err
		}
	}

	// The guard always comes first. Arm kinds follow the position among all
	// children, so arms inserted after the terminal continue its chain.
	for i, e := range children {
		if e.Key.Terminal {
			continue
		}
		ev := Event{
			Kind:   branchKind(i, len(children), w.opts.Strict),
			Depth:  depth,
			Level:  level,
			Char:   e.Key.Char,
			Strict: w.opts.Strict,
		}
		if ev.Kind == Else {
			ev.Char = 0
		}
		if err := w.emit(ev); err != nil {
			return err
		}
		if err := w.node(e.Child, depth+1, level+1); err != nil {
			return err
		}
		if err := w.emit(Event{Kind: End, Level: level}); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) leaf(idx trie.NodeIndex, level int) error {
	codepoint, name := w.t.Leaf(idx)
	return w.emit(Event{
		Kind:      Leaf,
		Level:     level,
		Codepoint: codepoint,
		Name:      name,
		Strict:    w.opts.Strict,
	})
}

func (w *walker) emit(e Event) error {
	return w.h.Handle(e)
}

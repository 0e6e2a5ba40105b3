package decision

import (
	"fmt"

	"github.com/gnolang/entitygen/internal/trie"
)

// arm is one conditional block of a statement.
type arm struct {
	head Event
	body []*stmt
}

// stmt is either a leaf or a chain of arms, headed by an If or a Guard.
type stmt struct {
	leaf *Event
	arms []*arm
}

// open reports whether the statement is a chain that can take another arm.
func (s *stmt) open() bool {
	if len(s.arms) == 0 {
		return false
	}
	return s.arms[len(s.arms)-1].head.Kind != Else
}

// Program is a recorded event stream that can be executed in-process.
// It runs the procedure exactly as generated code would, except that a
// read past the end of the candidate is a miss instead of a crash.
type Program struct {
	events []Event
	body   []*stmt
}

// Compile walks t and records the resulting procedure.
func Compile(t *trie.Trie, opts Options) (*Program, error) {
	r := &recorder{}
	r.stack = []*[]*stmt{&r.prog.body}
	if err := Walk(t, opts, r); err != nil {
		return nil, err
	}
	if len(r.stack) != 1 {
		return nil, fmt.Errorf("unbalanced event stream: %d blocks left open", len(r.stack)-1)
	}
	return &r.prog, nil
}

// Events returns the recorded stream.
func (p *Program) Events() []Event { return p.events }

// Count returns how many events of kind k were recorded.
func (p *Program) Count(k Kind) int {
	n := 0
	for _, e := range p.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Resolve runs the procedure on word.
func (p *Program) Resolve(word []rune) (codepoint uint32, ok bool) {
	return run(p.body, word)
}

// ResolveString is Resolve for a string candidate.
func (p *Program) ResolveString(word string) (uint32, bool) {
	return p.Resolve([]rune(word))
}

func run(body []*stmt, word []rune) (uint32, bool) {
	for _, s := range body {
		if s.leaf != nil {
			if s.leaf.Strict && string(word) != s.leaf.Name {
				continue
			}
			return s.leaf.Codepoint, true
		}

		for _, a := range s.arms {
			if !matches(a.head, word) {
				continue
			}
			if cp, ok := run(a.body, word); ok {
				return cp, true
			}
			break
		}
	}
	return 0, false
}

func matches(e Event, word []rune) bool {
	switch e.Kind {
	case Guard:
		return len(word) == e.Depth
	case If, ElseIf:
		return e.Depth < len(word) && word[e.Depth] == e.Char
	case Else:
		return true
	default:
		return false
	}
}

type recorder struct {
	prog  Program
	stack []*[]*stmt
}

func (r *recorder) Handle(e Event) error {
	r.prog.events = append(r.prog.events, e)
	current := r.stack[len(r.stack)-1]

	switch e.Kind {
	case Leaf:
		leaf := e
		*current = append(*current, &stmt{leaf: &leaf})
	case Guard, If:
		a := &arm{head: e}
		*current = append(*current, &stmt{arms: []*arm{a}})
		r.stack = append(r.stack, &a.body)
	case ElseIf, Else:
		n := len(*current)
		if n == 0 || !(*current)[n-1].open() {
			return fmt.Errorf("%s without a preceding if at level %d", e.Kind, e.Level)
		}
		a := &arm{head: e}
		last := (*current)[n-1]
		last.arms = append(last.arms, a)
		r.stack = append(r.stack, &a.body)
	case End:
		if len(r.stack) == 1 {
			return fmt.Errorf("end without an open block at level %d", e.Level)
		}
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

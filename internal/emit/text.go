package emit

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/gnolang/entitygen/internal/decision"
)

// TextWriter renders events line by line through a Syntax.
type TextWriter struct {
	w      io.Writer
	syntax Syntax
	tmpl   *compiled
	buf    bytes.Buffer

	// pending is the End waiting to see whether the chain continues.
	pending *decision.Event
}

var _ Writer = (*TextWriter)(nil)

// NewTextWriter returns a writer that flushes to w on Close.
func NewTextWriter(w io.Writer, syntax Syntax) (*TextWriter, error) {
	tmpl, err := syntax.compile()
	if err != nil {
		return nil, err
	}
	return &TextWriter{w: w, syntax: syntax, tmpl: tmpl}, nil
}

func (tw *TextWriter) Handle(e decision.Event) error {
	if tw.pending != nil {
		end := *tw.pending
		tw.pending = nil
		if !(e.Kind.Continues() && e.Level == end.Level) {
			if err := tw.line(tw.tmpl.close, end); err != nil {
				return err
			}
		}
	}

	switch e.Kind {
	case decision.Guard:
		return tw.line(tw.tmpl.guard, e)
	case decision.If:
		return tw.line(tw.tmpl.ifArm, e)
	case decision.ElseIf:
		return tw.line(tw.tmpl.elseIf, e)
	case decision.Else:
		return tw.line(tw.tmpl.elseArm, e)
	case decision.Leaf:
		return tw.line(tw.tmpl.leaf, e)
	case decision.End:
		tw.pending = &e
		return nil
	default:
		return fmt.Errorf("unexpected event %s", e.Kind)
	}
}

func (tw *TextWriter) line(tmpl *template.Template, e decision.Event) error {
	tw.buf.WriteString(strings.Repeat(tw.syntax.Indent, e.Level))
	if err := tmpl.Execute(&tw.buf, e); err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl.Name(), err)
	}
	tw.buf.WriteByte('\n')
	return nil
}

// Close writes the trailing close, if any, and flushes the buffered text.
func (tw *TextWriter) Close() error {
	if tw.pending != nil {
		end := *tw.pending
		tw.pending = nil
		if err := tw.line(tw.tmpl.close, end); err != nil {
			return err
		}
	}
	_, err := tw.buf.WriteTo(tw.w)
	return err
}

package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/gnolang/entitygen/internal/decision"
)

// GoOptions names the pieces of the generated Go file.
type GoOptions struct {
	Package string
	Func    string
	// Type is the result type. Constructor builds it from an int codepoint.
	// Both may be qualified as "import/path.Name".
	Type        string
	Constructor string
}

// DefaultGoOptions yields a self-contained file resolving to runes.
var DefaultGoOptions = GoOptions{
	Package:     "entities",
	Func:        "lookup",
	Type:        "rune",
	Constructor: "rune",
}

const wordParam = "word"

// goFrame collects the statements of one open block.
type goFrame struct {
	head  decision.Event
	stmts []jen.Code
	// chain is the last if statement, extended in place by else arms.
	chain *jen.Statement
}

// GoWriter renders the stream as a complete, gofmt'd Go file.
type GoWriter struct {
	w     io.Writer
	opts  GoOptions
	stack []*goFrame
}

var _ Writer = (*GoWriter)(nil)

// NewGoWriter returns a writer that renders the file to w on Close.
func NewGoWriter(w io.Writer, opts GoOptions) (*GoWriter, error) {
	if opts.Package == "" || opts.Func == "" || opts.Type == "" || opts.Constructor == "" {
		return nil, errors.New("go backend: package, func, type and constructor are required")
	}
	return &GoWriter{
		w:     w,
		opts:  opts,
		stack: []*goFrame{{}},
	}, nil
}

func (gw *GoWriter) top() *goFrame { return gw.stack[len(gw.stack)-1] }

func (gw *GoWriter) Handle(e decision.Event) error {
	switch e.Kind {
	case decision.Guard, decision.If, decision.ElseIf, decision.Else:
		gw.stack = append(gw.stack, &goFrame{head: e})
	case decision.Leaf:
		f := gw.top()
		f.stmts = append(f.stmts, gw.leaf(e))
		f.chain = nil
	case decision.End:
		if len(gw.stack) == 1 {
			return fmt.Errorf("go backend: end without an open block at level %d", e.Level)
		}
		closed := gw.top()
		gw.stack = gw.stack[:len(gw.stack)-1]
		return gw.attach(gw.top(), closed)
	default:
		return fmt.Errorf("go backend: unexpected event %s", e.Kind)
	}
	return nil
}

// attach adds a finished block to its parent.
func (gw *GoWriter) attach(parent, block *goFrame) error {
	head := block.head
	switch head.Kind {
	case decision.Guard:
		st := jen.If(jen.Len(jen.Id(wordParam)).Op("==").Lit(head.Depth)).Block(block.stmts...)
		parent.stmts = append(parent.stmts, st)
		parent.chain = st
	case decision.If:
		st := jen.If(gw.compare(head)).Block(block.stmts...)
		parent.stmts = append(parent.stmts, st)
		parent.chain = st
	case decision.ElseIf, decision.Else:
		if parent.chain == nil {
			return fmt.Errorf("go backend: %s without a preceding if at level %d", head.Kind, head.Level)
		}
		if head.Kind == decision.ElseIf {
			parent.chain.Else().If(gw.compare(head)).Block(block.stmts...)
		} else {
			parent.chain.Else().Block(block.stmts...)
			parent.chain = nil
		}
	}
	return nil
}

func (gw *GoWriter) compare(e decision.Event) *jen.Statement {
	cmp := jen.Id(wordParam).Index(jen.Lit(e.Depth)).Op("==").LitRune(e.Char)
	if !e.Strict {
		return cmp
	}
	return jen.Len(jen.Id(wordParam)).Op(">").Lit(e.Depth).Op("&&").Add(cmp)
}

func (gw *GoWriter) leaf(e decision.Event) jen.Code {
	ret := jen.Return(qualified(gw.opts.Constructor).Call(jen.Lit(int(e.Codepoint))), jen.True())
	if !e.Strict {
		return ret
	}
	return jen.If(jen.String().Call(jen.Id(wordParam)).Op("==").Lit(e.Name)).Block(ret)
}

// Close renders the file. Nothing is written if the stream is unbalanced
// or the source fails to format.
func (gw *GoWriter) Close() error {
	if len(gw.stack) != 1 {
		return fmt.Errorf("go backend: %d blocks left open", len(gw.stack)-1)
	}

	body := append(gw.stack[0].stmts, jen.Return())

	f := jen.NewFile(gw.opts.Package)
	f.HeaderComment("Code generated by entitygen. DO NOT EDIT.")
	f.Commentf("%s resolves word to the symbol it names. ok is false when no entity matched.", gw.opts.Func)
	f.Func().Id(gw.opts.Func).
		Params(jen.Id(wordParam).Index().Rune()).
		Params(jen.Id("sym").Add(qualified(gw.opts.Type)), jen.Id("ok").Bool()).
		Block(body...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return fmt.Errorf("go backend: %w", err)
	}
	_, err := buf.WriteTo(gw.w)
	return err
}

// qualified turns "path/to/pkg.Name" into a qualified identifier.
func qualified(id string) *jen.Statement {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return jen.Id(id)
	}
	return jen.Qual(id[:i], id[i+1:])
}

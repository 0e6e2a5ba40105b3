package emit

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/entitygen/entity"
	"github.com/gnolang/entitygen/internal/decision"
	"github.com/gnolang/entitygen/internal/trie"
)

var comparisonTable = entity.Table{
	{"gt", 62},
	{"ge", 8805},
	{"geq", 8805},
	{"ggt", 8811},
}

func render(t *testing.T, table entity.Table, opts decision.Options, newWriter func(*bytes.Buffer) (Writer, error)) string {
	t.Helper()

	tr, err := trie.Build(table)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := newWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, decision.Walk(tr, opts, w))
	require.NoError(t, w.Close())
	return buf.String()
}

func textWriter(preset string) func(*bytes.Buffer) (Writer, error) {
	return func(buf *bytes.Buffer) (Writer, error) {
		s, err := Preset(preset)
		if err != nil {
			return nil, err
		}
		return NewTextWriter(buf, s)
	}
}

func goWriter(opts GoOptions) func(*bytes.Buffer) (Writer, error) {
	return func(buf *bytes.Buffer) (Writer, error) {
		return NewGoWriter(buf, opts)
	}
}

func TestTextWriterGeneric(t *testing.T) {
	t.Parallel()

	expected := `if word[1] == 't' {
    build_symbol(62)
} else if word[1] == 'e' {
    if len(word) == 2 {
        build_symbol(8805)
    } else {
        build_symbol(8805)
    }
} else {
    build_symbol(8811)
}
`
	got := render(t, comparisonTable, decision.Options{}, textWriter(PresetGeneric))
	assert.Equal(t, expected, got)
}

func TestTextWriterGenericStrict(t *testing.T) {
	t.Parallel()

	expected := `if len(word) > 1 && word[1] == 't' {
    if word == "gt" { build_symbol(62) }
} else if len(word) > 1 && word[1] == 'e' {
    if len(word) == 2 {
        if word == "ge" { build_symbol(8805) }
    } else if len(word) > 2 && word[2] == 'q' {
        if word == "geq" { build_symbol(8805) }
    }
} else if len(word) > 1 && word[1] == 'g' {
    if word == "ggt" { build_symbol(8811) }
}
`
	got := render(t, comparisonTable, decision.Options{Strict: true}, textWriter(PresetGeneric))
	assert.Equal(t, expected, got)
}

func TestTextWriterRust(t *testing.T) {
	t.Parallel()

	got := render(t, comparisonTable, decision.Options{}, textWriter(PresetRust))
	assert.Contains(t, got, "if word[1] == 't' as u32 {\n    Entity::new_character(62)\n}")
	assert.Contains(t, got, "    if word.len() == 2 {\n        Entity::new_character(8805)\n    } else {\n        Entity::new_character(8805)\n    }\n")

	strict := render(t, comparisonTable, decision.Options{Strict: true}, textWriter(PresetRust))
	assert.Contains(t, strict, "if word == &[103, 101, 113][..] { Entity::new_character(8805) }")
}

func TestTextWriterTerminalPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		table    entity.Table
		expected string
	}{
		{
			name:  "terminal first with a lone arm",
			table: entity.Table{{"a", 1}, {"ab", 2}},
			expected: `if len(word) == 1 {
    build_symbol(1)
} else {
    build_symbol(2)
}
`,
		},
		{
			name:  "terminal first",
			table: entity.Table{{"a", 1}, {"ab", 2}, {"ac", 3}},
			expected: `if len(word) == 1 {
    build_symbol(1)
} else if word[1] == 'b' {
    build_symbol(2)
} else {
    build_symbol(3)
}
`,
		},
		{
			name:  "terminal in the middle",
			table: entity.Table{{"ab", 2}, {"a", 1}, {"ac", 3}},
			expected: `if len(word) == 1 {
    build_symbol(1)
}
if word[1] == 'b' {
    build_symbol(2)
} else {
    build_symbol(3)
}
`,
		},
		{
			name:  "terminal last",
			table: entity.Table{{"ab", 2}, {"ac", 3}, {"a", 1}},
			expected: `if len(word) == 1 {
    build_symbol(1)
}
if word[1] == 'b' {
    build_symbol(2)
} else if word[1] == 'c' {
    build_symbol(3)
}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := render(t, tt.table, decision.Options{}, textWriter(PresetGeneric))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTextWriterSingleLeaf(t *testing.T) {
	t.Parallel()

	got := render(t, entity.Table{{"Chi", 935}}, decision.Options{}, textWriter(PresetGeneric))
	assert.Equal(t, "build_symbol(935)\n", got)
}

func TestTextWriterCollapsedRunHasNoComparison(t *testing.T) {
	t.Parallel()

	got := render(t, entity.Default(), decision.Options{}, textWriter(PresetGeneric))
	assert.Contains(t, got, "} else if word[0] == 'C' {\n    build_symbol(935)\n}")
	assert.NotContains(t, got, "word[1] == 'h' {\n    build_symbol(935)")
}

func TestTextWriterDeterministic(t *testing.T) {
	t.Parallel()

	first := render(t, entity.Default(), decision.Options{}, textWriter(PresetGeneric))
	second := render(t, entity.Default(), decision.Options{}, textWriter(PresetGeneric))
	assert.Equal(t, first, second)
}

func TestTextWriterIndentFollowsLevel(t *testing.T) {
	t.Parallel()

	s, err := Preset(PresetGeneric)
	require.NoError(t, err)
	s = s.Merge(Syntax{Indent: "\t"})

	got := render(t, comparisonTable, decision.Options{}, func(buf *bytes.Buffer) (Writer, error) {
		return NewTextWriter(buf, s)
	})
	assert.Contains(t, got, "} else {\n\tbuild_symbol(8811)\n}")
	assert.Contains(t, got, "\tif len(word) == 2 {\n\t\tbuild_symbol(8805)\n\t} else {\n")
}

func TestSyntaxErrors(t *testing.T) {
	t.Parallel()

	_, err := Preset("cobol")
	assert.ErrorContains(t, err, "generic, rust")

	s, err := Preset(PresetGeneric)
	require.NoError(t, err)

	_, err = NewTextWriter(&bytes.Buffer{}, s.Merge(Syntax{Leaf: "{{.Codepoint"}))
	assert.ErrorContains(t, err, "leaf template")

	_, err = NewTextWriter(&bytes.Buffer{}, Syntax{Indent: "  "})
	assert.ErrorContains(t, err, "guard template is empty")
}

func TestTextWriterNoPartialOutput(t *testing.T) {
	t.Parallel()

	tr, err := trie.Build(entity.Default())
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := NewTextWriter(&buf, presets[PresetGeneric])
	require.NoError(t, err)

	errStop := errors.New("stop")
	n := 0
	err = decision.Walk(tr, decision.Options{}, decision.HandlerFunc(func(e decision.Event) error {
		if n++; n > 10 {
			return errStop
		}
		return w.Handle(e)
	}))
	assert.ErrorIs(t, err, errStop)
	assert.Zero(t, buf.Len())
}

func TestGoWriter(t *testing.T) {
	t.Parallel()

	got := render(t, comparisonTable, decision.Options{}, goWriter(DefaultGoOptions))

	assert.True(t, strings.HasPrefix(got, "// Code generated by entitygen. DO NOT EDIT.\n"))
	assert.Contains(t, got, "package entities\n")
	assert.Contains(t, got, "func lookup(word []rune) (sym rune, ok bool) {\n")
	assert.Contains(t, got, "\tif word[1] == 't' {\n\t\treturn rune(62), true\n\t} else if word[1] == 'e' {\n")
	assert.Contains(t, got, "\t\tif len(word) == 2 {\n\t\t\treturn rune(8805), true\n\t\t} else {\n\t\t\treturn rune(8805), true\n\t\t}\n")
	assert.Contains(t, got, "\t} else {\n\t\treturn rune(8811), true\n\t}\n\treturn\n}\n")
}

func TestGoWriterGuardOpensChain(t *testing.T) {
	t.Parallel()

	got := render(t, entity.Table{{"a", 1}, {"ab", 2}, {"ac", 3}}, decision.Options{}, goWriter(DefaultGoOptions))
	assert.Contains(t, got, "\tif len(word) == 1 {\n\t\treturn rune(1), true\n\t} else if word[1] == 'b' {\n\t\treturn rune(2), true\n\t} else {\n\t\treturn rune(3), true\n\t}\n\treturn\n}\n")
}

func TestGoWriterStrict(t *testing.T) {
	t.Parallel()

	got := render(t, comparisonTable, decision.Options{Strict: true}, goWriter(DefaultGoOptions))
	assert.Contains(t, got, "if len(word) > 1 && word[1] == 'g' {")
	assert.Contains(t, got, "\t\t} else if len(word) > 2 && word[2] == 'q' {\n")
	assert.Contains(t, got, "if string(word) == \"geq\" {\n\t\t\t\treturn rune(8805), true")
	assert.NotContains(t, got, "} else {")
}

func TestGoWriterQualifiedNames(t *testing.T) {
	t.Parallel()

	opts := GoOptions{
		Package:     "markup",
		Func:        "resolveEntity",
		Type:        "example.com/math/symbol.Symbol",
		Constructor: "example.com/math/symbol.Character",
	}
	got := render(t, entity.Table{{"Chi", 935}}, decision.Options{}, goWriter(opts))

	assert.Contains(t, got, "\"example.com/math/symbol\"")
	assert.Contains(t, got, "func resolveEntity(word []rune) (sym symbol.Symbol, ok bool) {")
	assert.Contains(t, got, "return symbol.Character(935), true")
}

func TestGoWriterRequiresNames(t *testing.T) {
	t.Parallel()

	_, err := NewGoWriter(&bytes.Buffer{}, GoOptions{Package: "x"})
	assert.Error(t, err)
}

func TestGoWriterUnbalanced(t *testing.T) {
	t.Parallel()

	w, err := NewGoWriter(&bytes.Buffer{}, DefaultGoOptions)
	require.NoError(t, err)

	assert.Error(t, w.Handle(decision.Event{Kind: decision.End}))
	require.NoError(t, w.Handle(decision.Event{Kind: decision.If, Char: 'a'}))
	assert.ErrorContains(t, w.Close(), "1 blocks left open")
}

package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// Syntax describes the host language as text/template snippets. Each
// snippet is executed with the decision.Event being rendered.
//
// ElseIf and Else start with the text closing the previous arm, since
// the writer never emits Close between arms of one chain.
type Syntax struct {
	Indent string `yaml:"indent"`
	Guard  string `yaml:"guard"`
	If     string `yaml:"if"`
	ElseIf string `yaml:"else_if"`
	Else   string `yaml:"else"`
	Close  string `yaml:"close"`
	Leaf   string `yaml:"leaf"`
}

const (
	PresetGeneric = "generic"
	PresetRust    = "rust"
)

var presets = map[string]Syntax{
	PresetGeneric: {
		Indent: "    ",
		Guard:  "if len(word) == {{.Depth}} {",
		If:     "if {{if .Strict}}len(word) > {{.Depth}} && {{end}}word[{{.Depth}}] == {{char .Char}} {",
		ElseIf: "} else if {{if .Strict}}len(word) > {{.Depth}} && {{end}}word[{{.Depth}}] == {{char .Char}} {",
		Else:   "} else {",
		Close:  "}",
		Leaf:   "{{if .Strict}}if word == {{quote .Name}} { {{end}}build_symbol({{.Codepoint}}){{if .Strict}} }{{end}}",
	},
	PresetRust: {
		Indent: "    ",
		Guard:  "if word.len() == {{.Depth}} {",
		If:     "if {{if .Strict}}word.len() > {{.Depth}} && {{end}}word[{{.Depth}}] == {{char .Char}} as u32 {",
		ElseIf: "} else if {{if .Strict}}word.len() > {{.Depth}} && {{end}}word[{{.Depth}}] == {{char .Char}} as u32 {",
		Else:   "} else {",
		Close:  "}",
		Leaf:   "{{if .Strict}}if word == &{{codes .Name}}[..] { {{end}}Entity::new_character({{.Codepoint}}){{if .Strict}} }{{end}}",
	},
}

// Preset returns a built-in syntax by name.
func Preset(name string) (Syntax, error) {
	s, ok := presets[name]
	if !ok {
		return Syntax{}, fmt.Errorf("unknown syntax preset %q (available: %s)", name, strings.Join(Presets(), ", "))
	}
	return s, nil
}

// Presets lists the built-in syntax names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns s with every non-empty field of override applied.
func (s Syntax) Merge(override Syntax) Syntax {
	pick := func(base, o string) string {
		if o != "" {
			return o
		}
		return base
	}
	return Syntax{
		Indent: pick(s.Indent, override.Indent),
		Guard:  pick(s.Guard, override.Guard),
		If:     pick(s.If, override.If),
		ElseIf: pick(s.ElseIf, override.ElseIf),
		Else:   pick(s.Else, override.Else),
		Close:  pick(s.Close, override.Close),
		Leaf:   pick(s.Leaf, override.Leaf),
	}
}

var funcMap = template.FuncMap{
	"char":  strconv.QuoteRune,
	"quote": strconv.Quote,
	"codes": codes,
}

// codes renders name as a list of codepoints, e.g. "[103, 101]".
func codes(name string) string {
	parts := make([]string, 0, len(name))
	for _, r := range name {
		parts = append(parts, strconv.Itoa(int(r)))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// compiled holds the parsed snippets of a Syntax.
type compiled struct {
	guard, ifArm, elseIf, elseArm, close, leaf *template.Template
}

func (s Syntax) compile() (*compiled, error) {
	var c compiled
	for _, field := range []struct {
		name string
		text string
		dst  **template.Template
	}{
		{"guard", s.Guard, &c.guard},
		{"if", s.If, &c.ifArm},
		{"else_if", s.ElseIf, &c.elseIf},
		{"else", s.Else, &c.elseArm},
		{"close", s.Close, &c.close},
		{"leaf", s.Leaf, &c.leaf},
	} {
		if field.text == "" {
			return nil, fmt.Errorf("syntax: %s template is empty", field.name)
		}
		tmpl, err := template.New(field.name).Funcs(funcMap).Option("missingkey=error").Parse(field.text)
		if err != nil {
			return nil, fmt.Errorf("syntax: %s template: %w", field.name, err)
		}
		*field.dst = tmpl
	}
	return &c, nil
}

package textfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"

	"nfa2dfa/internal/automaton"
)

// EpsilonToken spells an ε-transition in definition files.
const EpsilonToken = "h"

// Definition files are line oriented, so newlines are tokens and only
// horizontal whitespace is elided.
var definitionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Space", Pattern: `[ \t\r\f\v]+`},
	{Name: "Word", Pattern: `[^\s]+`},
})

type definitionFile struct {
	Lines []*definitionLine `parser:"@@*"`
}

type definitionLine struct {
	Pos    lexer.Position
	Tokens []string `parser:"@Word* EOL"`
}

var definitionParser = participle.MustBuild[definitionFile](
	participle.Lexer(definitionLexer),
	participle.Elide("Space"),
)

// Parse reads the text definition format:
//
//	line 1: states
//	line 2: initial state(s)
//	line 3: final states (may be empty)
//	then:   origin symbol destination, one per line, "h" for ε
func Parse(r io.Reader) (*automaton.Automaton, error) {
	return parseNamed("input", r)
}

// LoadAutomaton picks the YAML reader for .yaml/.yml files and the text format otherwise.
func LoadAutomaton(path string) (*automaton.Automaton, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAMLFile(path)
	default:
		return ParseFile(path)
	}
}

// ParseFile reads a text definition from path.
func ParseFile(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := parseNamed(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func parseNamed(name string, r io.Reader) (*automaton.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	src := string(data)
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	file, err := definitionParser.ParseString(name, src)
	if err != nil {
		return nil, automaton.Invalid(0, "%v", err)
	}
	return buildDefinition(file.Lines)
}

func buildDefinition(lines []*definitionLine) (*automaton.Automaton, error) {
	headers := []string{"state", "initial-state", "final-state"}
	if len(lines) == 0 || len(lines[0].Tokens) == 0 {
		return nil, automaton.Invalid(1, "no states declared")
	}
	if len(lines) < len(headers) {
		return nil, automaton.Invalid(len(lines)+1, "missing %s line", headers[len(lines)])
	}
	states, initial, finals := lines[0], lines[1], lines[2]
	if len(initial.Tokens) == 0 {
		return nil, automaton.Invalid(initial.Pos.Line, "no initial state")
	}

	b := automaton.NewBuilder()
	if err := b.AddStates(toStates(states.Tokens)...); err != nil {
		return nil, automaton.AtLine(err, states.Pos.Line)
	}
	if err := b.SetInitial(toStates(initial.Tokens)...); err != nil {
		return nil, automaton.AtLine(err, initial.Pos.Line)
	}
	if err := b.AddFinals(toStates(finals.Tokens)...); err != nil {
		return nil, automaton.AtLine(err, finals.Pos.Line)
	}
	for _, l := range lines[3:] {
		if len(l.Tokens) == 0 {
			continue
		}
		if len(l.Tokens) != 3 {
			return nil, automaton.Invalid(l.Pos.Line, "transition needs origin, symbol and destination, got %d fields", len(l.Tokens))
		}
		sym, err := parseSymbol(l.Tokens[1])
		if err != nil {
			return nil, automaton.AtLine(err, l.Pos.Line)
		}
		if err := b.AddTransition(automaton.State(l.Tokens[0]), sym, automaton.State(l.Tokens[2])); err != nil {
			return nil, automaton.AtLine(err, l.Pos.Line)
		}
	}
	return b.Build()
}

// parseSymbol maps a symbol token to a single rune. Words are consumed rune by
// rune, so longer tokens could never match.
func parseSymbol(tok string) (automaton.Symbol, error) {
	if tok == EpsilonToken {
		return automaton.Epsilon, nil
	}
	tok = norm.NFC.String(tok)
	if utf8.RuneCountInString(tok) != 1 {
		return 0, automaton.Invalid(0, "symbol %q must be a single character", tok)
	}
	r, _ := utf8.DecodeRuneInString(tok)
	return automaton.Symbol(r), nil
}

func toStates(tokens []string) []automaton.State {
	out := make([]automaton.State, len(tokens))
	for i, t := range tokens {
		out[i] = automaton.State(t)
	}
	return out
}

package textfmt

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfa2dfa/internal/automaton"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// ------------------------------------------------------------------- definitions

func TestParseFileWorkedExample(t *testing.T) {
	a, err := ParseFile(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	assert.Len(t, a.States(), 8)
	assert.Equal(t, []automaton.State{"A"}, a.Initial())
	assert.Equal(t, []automaton.State{"E"}, a.Finals())
	assert.Equal(t, []automaton.State{"C", "G"}, a.Transitions("A", automaton.Epsilon))
	assert.Equal(t, []automaton.Symbol{'0', '1'}, a.Alphabet())
}

func TestParseYAMLMatchesText(t *testing.T) {
	txt, err := LoadAutomaton(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	yml, err := LoadAutomaton(filepath.Join("testdata", "example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, automaton.Build(txt).Table(), automaton.Build(yml).Table())
}

func TestParseMultipleInitialStates(t *testing.T) {
	a, err := Parse(strings.NewReader("p q r\nq p\nr\np a r\nq b r"))
	require.NoError(t, err)
	assert.Equal(t, []automaton.State{"p", "q"}, a.Initial())
	assert.True(t, a.Accepts("a"))
	assert.True(t, a.Accepts("b"))
}

func TestParseToleratesBlankLinesAndCRLF(t *testing.T) {
	a, err := Parse(strings.NewReader("A B\r\nA\r\n\r\n\r\nA x B\r\n\r\n"))
	require.NoError(t, err)
	assert.Empty(t, a.Finals())
	assert.Equal(t, []automaton.State{"B"}, a.Transitions("A", 'x'))
}

func TestParseInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"empty", "", 1, "no states declared"},
		{"missing initial line", "A B\n", 2, "missing initial-state line"},
		{"missing finals line", "A B\nA\n", 3, "missing final-state line"},
		{"blank initial", "A B\n\nB\n", 2, "no initial state"},
		{"undeclared initial", "A B\nC\nB\n", 2, `"C" is not declared`},
		{"undeclared final", "A B\nA\nC\n", 3, `"C" is not declared`},
		{"short transition", "A B\nA\nB\nA 0\n", 4, "got 2 fields"},
		{"long transition", "A B\nA\nB\nA 0 B B\n", 4, "got 4 fields"},
		{"undeclared target", "A B\nA\nB\nA 0 B\nB 1 Z\n", 5, `"Z" is not declared`},
		{"multi-rune symbol", "A B\nA\nB\nA ab B\n", 4, "single character"},
		{"duplicate state", "A A\nA\n\n", 1, "declared twice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(tc.src))
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, automaton.ErrInvalidDefinition)
			var de *automaton.DefinitionError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.line, de.Line)
			assert.Contains(t, de.Reason, tc.msg)
		})
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unknown key", "states: [A]\ninitial: A\nstart: A\n", 0, "yaml"},
		{"undeclared", "states: [A]\ninitial: A\ntransitions:\n  - {from: A, symbol: 0, to: B}\n", 4, `"B" is not declared`},
		{"missing field", "states: [A]\ninitial: A\ntransitions:\n  - {from: A, to: A}\n", 4, "needs from, symbol and to"},
		{"on instead of symbol", "states: [A]\ninitial: A\ntransitions:\n  - {from: A, on: h, to: A}\n", 4, "needs from, symbol and to"},
		{"no initial", "states: [A]\nfinals: [A]\n", 0, "no initial state"},
		{"empty", "", 0, "empty YAML document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tc.src))
			var de *automaton.DefinitionError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.line, de.Line)
			assert.Contains(t, de.Reason, tc.msg)
		})
	}
}

// ------------------------------------------------------------------- words

func TestReadWords(t *testing.T) {
	// "é" spelled as e + combining acute must become the single rune U+00E9
	words, err := ReadWords(strings.NewReader("  01 \n\n e\u0301\n10"))
	require.NoError(t, err)
	assert.Equal(t, []string{"01", "", "\u00e9", "10"}, words)
}

func TestNormalisedSymbolsMatchWords(t *testing.T) {
	a, err := Parse(strings.NewReader("s t\ns\nt\ns e\u0301 t\n"))
	require.NoError(t, err)
	words, err := ReadWords(strings.NewReader("\u00e9\ne\u0301\n"))
	require.NoError(t, err)
	for _, w := range words {
		assert.True(t, a.Accepts(w), "word %q", w)
	}
}

// ------------------------------------------------------------------- output

func TestWriteDFAGolden(t *testing.T) {
	a, err := ParseFile(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	d := automaton.Build(a)

	var buf bytes.Buffer
	require.NoError(t, WriteDFA(&buf, d.Table()))
	newGolden(t).Assert(t, "example_dfa", buf.Bytes())

	buf.Reset()
	require.NoError(t, WriteDFA(&buf, d.Complete().Table()))
	newGolden(t).Assert(t, "example_dfa_complete", buf.Bytes())
}

func TestWriteVerdictsGolden(t *testing.T) {
	a, err := ParseFile(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	words, err := LoadWords(filepath.Join("testdata", "words.txt"))
	require.NoError(t, err)

	verdicts := make([]Verdict, len(words))
	for i, w := range words {
		verdicts[i] = Verdict{Word: w, Accepted: a.Accepts(w)}
	}
	var buf bytes.Buffer
	require.NoError(t, WriteVerdicts(&buf, verdicts))
	newGolden(t).Assert(t, "example_verdicts", buf.Bytes())
}

// The written DFA is itself a valid definition that accepts the same words.
func TestWrittenDFAParsesBack(t *testing.T) {
	a, err := ParseFile(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	for _, d := range []*automaton.DFA{automaton.Build(a), automaton.Build(a).Complete()} {
		var buf bytes.Buffer
		require.NoError(t, WriteDFA(&buf, d.Table()))
		back, err := Parse(&buf)
		require.NoError(t, err)
		for _, w := range []string{"", "0", "00", "11", "011110", "10001", "1101", "0120"} {
			assert.Equal(t, a.Accepts(w), back.Accepts(w), "word %q", w)
		}
	}
}

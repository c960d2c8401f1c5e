package textfmt

import (
	"bufio"
	"io"
	"strings"

	"nfa2dfa/internal/automaton"
)

// EmptyWord is how the empty word is shown in verdict listings.
const EmptyWord = "ε"

// Verdict is the outcome of one acceptance check.
type Verdict struct {
	Word     string `json:"word"`
	Accepted bool   `json:"accepted"`
}

// WriteDFA writes t in the definition layout: states, initial, finals, then
// one "from symbol to" line per transition.
func WriteDFA(w io.Writer, t automaton.Table) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(t.States, " ") + "\n")
	bw.WriteString(t.Initial + "\n")
	bw.WriteString(strings.Join(t.Finals, " ") + "\n")
	for _, row := range t.Transitions {
		bw.WriteString(row.From + " " + row.Symbol + " " + row.To + "\n")
	}
	return bw.Flush()
}

// WriteVerdicts writes one "<word> - accepted|rejected" line per verdict.
func WriteVerdicts(w io.Writer, verdicts []Verdict) error {
	bw := bufio.NewWriter(w)
	for _, v := range verdicts {
		word := v.Word
		if word == "" {
			word = EmptyWord
		}
		status := "rejected"
		if v.Accepted {
			status = "accepted"
		}
		bw.WriteString(word + " - " + status + "\n")
	}
	return bw.Flush()
}

package textfmt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"nfa2dfa/internal/automaton"
)

// yamlDefinition is the YAML spelling of a definition:
//
//	states: [A, B, C]
//	initial: A
//	finals: [C]
//	transitions:
//	  - {from: A, symbol: h, to: B}
type yamlDefinition struct {
	States      nameList         `yaml:"states"`
	Initial     nameList         `yaml:"initial"`
	Finals      nameList         `yaml:"finals"`
	Transitions []yamlTransition `yaml:"transitions"`
}

// nameList accepts either a scalar or a sequence and remembers where it was written.
type nameList struct {
	names []string
	line  int
}

func (l *nameList) UnmarshalYAML(n *yaml.Node) error {
	l.line = n.Line
	if n.Kind == yaml.ScalarNode {
		l.names = []string{n.Value}
		return nil
	}
	return n.Decode(&l.names)
}

type yamlTransition struct {
	From   string `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to"`
	line   int
}

func (t *yamlTransition) UnmarshalYAML(n *yaml.Node) error {
	type fields yamlTransition
	var f fields
	if err := n.Decode(&f); err != nil {
		return err
	}
	*t = yamlTransition(f)
	t.line = n.Line
	return nil
}

// ParseYAML reads a YAML definition. Errors carry the line of the offending node.
func ParseYAML(r io.Reader) (*automaton.Automaton, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var def yamlDefinition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, automaton.Invalid(0, "empty YAML document")
		}
		return nil, automaton.Invalid(0, "yaml: %v", err)
	}

	b := automaton.NewBuilder()
	if err := b.AddStates(toStates(def.States.names)...); err != nil {
		return nil, automaton.AtLine(err, def.States.line)
	}
	if len(def.Initial.names) == 0 {
		return nil, automaton.Invalid(def.Initial.line, "no initial state")
	}
	if err := b.SetInitial(toStates(def.Initial.names)...); err != nil {
		return nil, automaton.AtLine(err, def.Initial.line)
	}
	if err := b.AddFinals(toStates(def.Finals.names)...); err != nil {
		return nil, automaton.AtLine(err, def.Finals.line)
	}
	for _, tr := range def.Transitions {
		if tr.From == "" || tr.Symbol == "" || tr.To == "" {
			return nil, automaton.Invalid(tr.line, "transition needs from, symbol and to")
		}
		sym, err := parseSymbol(tr.Symbol)
		if err != nil {
			return nil, automaton.AtLine(err, tr.line)
		}
		if err := b.AddTransition(automaton.State(tr.From), sym, automaton.State(tr.To)); err != nil {
			return nil, automaton.AtLine(err, tr.line)
		}
	}
	return b.Build()
}

// ParseYAMLFile reads a YAML definition from path.
func ParseYAMLFile(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

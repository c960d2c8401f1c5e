package automaton

import (
	"fmt"
	"log/slog"
	"sort"
)

// DFAState is one reachable subset of NFA states.
type DFAState struct {
	ID     int
	Name   string
	Subset StateSet
	Final  bool
	// Dead marks the sink added by Complete.
	Dead  bool
	trans map[Symbol]*DFAState
}

// Next follows the transition on sym.
func (s *DFAState) Next(sym Symbol) (*DFAState, bool) {
	t, ok := s.trans[sym]
	return t, ok
}

// Symbols lists the symbols s has a transition on, sorted.
func (s *DFAState) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.trans))
	for sym := range s.trans {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DFA is the result of subset construction. States are in discovery order and
// States[i].ID == i.
type DFA struct {
	Start  *DFAState
	States []*DFAState
	Alpha  []Symbol
}

// dfaNamer hands out unique display names. Two different subsets can concatenate
// to the same text, e.g. {A,BC} and {AB,C}.
type dfaNamer map[string]struct{}

// name returns base, or base#<n> for the first n >= id that is still free.
// An NFA state may itself be called "ABC#2".
func (n dfaNamer) name(base string, id int) string {
	cand := base
	for i := id; ; i++ {
		if _, taken := n[cand]; !taken {
			break
		}
		cand = fmt.Sprintf("%s#%d", base, i)
	}
	n[cand] = struct{}{}
	return cand
}

// Build determinises nfa by subset construction. Only subsets reachable from the
// closure of the initial states are created. Symbols whose move is empty get no
// transition, so the result may be partial; see Complete.
func Build(nfa *Automaton) *DFA {
	alpha := nfa.Alphabet()
	names := dfaNamer{}
	byKey := map[string]*DFAState{}
	var states []*DFAState

	add := func(set StateSet) *DFAState {
		id := len(states)
		d := &DFAState{
			ID:     id,
			Name:   names.name(set.Name(), id),
			Subset: set,
			Final:  nfa.anyFinal(set),
			trans:  map[Symbol]*DFAState{},
		}
		byKey[set.Key()] = d
		states = append(states, d)
		slog.Debug("subset discovered", "state", d.Name, "subset", set.String(), "final", d.Final)
		return d
	}

	start := add(nfa.Closure(nfa.initial...))
	queue := []*DFAState{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range alpha {
			next := nfa.step(cur.Subset, sym)
			if next.IsEmpty() {
				continue
			}
			d, exists := byKey[next.Key()]
			if !exists {
				d = add(next)
				queue = append(queue, d)
			}
			cur.trans[sym] = d
		}
	}
	slog.Debug("subset construction finished", "states", len(states), "alphabet", len(alpha))
	return &DFA{Start: start, States: states, Alpha: alpha}
}

// Finals returns the accepting states in ID order.
func (d *DFA) Finals() []*DFAState {
	var out []*DFAState
	for _, s := range d.States {
		if s.Final {
			out = append(out, s)
		}
	}
	return out
}

// IsTotal reports whether every state has a transition on every symbol.
func (d *DFA) IsTotal() bool {
	for _, s := range d.States {
		if len(s.trans) != len(d.Alpha) {
			return false
		}
	}
	return true
}

// Transition is one row of the deterministic transition table.
type Transition struct {
	From   *DFAState
	Symbol Symbol
	To     *DFAState
}

// Transitions lists the table ordered by source ID, then symbol.
func (d *DFA) Transitions() []Transition {
	var out []Transition
	for _, s := range d.States {
		for _, sym := range s.Symbols() {
			out = append(out, Transition{From: s, Symbol: sym, To: s.trans[sym]})
		}
	}
	return out
}

// Table is the serialisable view of a DFA.
type Table struct {
	States      []string   `json:"states"`
	Initial     string     `json:"initial"`
	Finals      []string   `json:"finals"`
	Transitions []TableRow `json:"transitions"`
}

type TableRow struct {
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
}

func (d *DFA) Table() Table {
	t := Table{
		States:      make([]string, 0, len(d.States)),
		Initial:     d.Start.Name,
		Finals:      []string{},
		Transitions: []TableRow{},
	}
	for _, s := range d.States {
		t.States = append(t.States, s.Name)
	}
	for _, s := range d.Finals() {
		t.Finals = append(t.Finals, s.Name)
	}
	for _, tr := range d.Transitions() {
		t.Transitions = append(t.Transitions, TableRow{From: tr.From.Name, Symbol: tr.Symbol.String(), To: tr.To.Name})
	}
	return t
}

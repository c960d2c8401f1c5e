package automaton

import (
	"sort"
	"strings"
	"unicode"
)

// State names an automaton state.
type State string

// Symbol is one input character.
type Symbol rune

// Epsilon labels transitions that consume no input.
const Epsilon Symbol = 'h'

func (s Symbol) String() string { return string(rune(s)) }

// Automaton is an ε-NFA. It is read-only once returned by Builder.Build.
type Automaton struct {
	states  []State
	known   map[State]struct{}
	initial []State
	finals  map[State]struct{}
	edges   map[State]map[Symbol][]State
}

// Builder assembles an Automaton. The first rejected mutation poisons the builder,
// so Build never returns a partially defined automaton.
type Builder struct {
	a   *Automaton
	err error
}

func NewBuilder() *Builder {
	return &Builder{a: &Automaton{
		known:  make(map[State]struct{}),
		finals: make(map[State]struct{}),
		edges:  make(map[State]map[Symbol][]State),
	}}
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}

// used reports whether Build already handed the automaton out.
func (b *Builder) used() bool { return b.a == nil }

func (b *Builder) declared(s State) bool {
	_, ok := b.a.known[s]
	return ok
}

// AddStates declares states. Names must be non-empty, unique and free of
// whitespace and control characters.
func (b *Builder) AddStates(states ...State) error {
	if b.used() {
		return b.err
	}
	for _, s := range states {
		switch {
		case s == "":
			return b.fail(invalid("empty state name"))
		case strings.ContainsFunc(string(s), unicode.IsSpace):
			return b.fail(invalid("state name %q contains whitespace", s))
		case strings.ContainsFunc(string(s), unicode.IsControl):
			return b.fail(invalid("state name %q contains a control character", s))
		case b.declared(s):
			return b.fail(invalid("state %q declared twice", s))
		}
		b.a.known[s] = struct{}{}
		b.a.states = append(b.a.states, s)
	}
	return nil
}

// SetInitial replaces the initial states. More than one initial state is allowed.
func (b *Builder) SetInitial(states ...State) error {
	if b.used() {
		return b.err
	}
	if len(states) == 0 {
		return b.fail(invalid("no initial state"))
	}
	for _, s := range states {
		if !b.declared(s) {
			return b.fail(invalid("initial state %q is not declared", s))
		}
	}
	b.a.initial = []State(NewStateSet(states...))
	return nil
}

// AddFinals marks declared states as accepting.
func (b *Builder) AddFinals(states ...State) error {
	if b.used() {
		return b.err
	}
	for _, s := range states {
		if !b.declared(s) {
			return b.fail(invalid("final state %q is not declared", s))
		}
		b.a.finals[s] = struct{}{}
	}
	return nil
}

// AddTransition records from --sym--> to. Repeating an existing transition is a no-op.
func (b *Builder) AddTransition(from State, sym Symbol, to State) error {
	if b.used() {
		return b.err
	}
	if !b.declared(from) {
		return b.fail(invalid("transition origin %q is not declared", from))
	}
	if !b.declared(to) {
		return b.fail(invalid("transition destination %q is not declared", to))
	}
	bySym, ok := b.a.edges[from]
	if !ok {
		bySym = make(map[Symbol][]State)
		b.a.edges[from] = bySym
	}
	targets := bySym[sym]
	i := sort.Search(len(targets), func(i int) bool { return targets[i] >= to })
	if i < len(targets) && targets[i] == to {
		return nil
	}
	targets = append(targets, "")
	copy(targets[i+1:], targets[i:])
	targets[i] = to
	bySym[sym] = targets
	return nil
}

// Build returns the finished automaton, or the first error any mutation reported.
func (b *Builder) Build() (*Automaton, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.a.states) == 0 {
		return nil, invalid("no states declared")
	}
	if len(b.a.initial) == 0 {
		return nil, invalid("no initial state")
	}
	a := b.a
	b.a = nil
	b.err = invalid("builder already used")
	return a, nil
}

// States returns the states in declaration order.
func (a *Automaton) States() []State {
	return append([]State(nil), a.states...)
}

// Initial returns the initial states sorted by name.
func (a *Automaton) Initial() []State {
	return append([]State(nil), a.initial...)
}

// Finals returns the final states sorted by name.
func (a *Automaton) Finals() []State {
	return []State(setFromMap(a.finals))
}

// IsFinal reports whether s is an accepting state.
func (a *Automaton) IsFinal(s State) bool {
	_, ok := a.finals[s]
	return ok
}

// Transitions returns the sorted targets of s on sym, empty when there are none.
func (a *Automaton) Transitions(s State, sym Symbol) []State {
	return append([]State(nil), a.edges[s][sym]...)
}

// Alphabet returns every non-epsilon symbol used by a transition, sorted.
func (a *Automaton) Alphabet() []Symbol {
	seen := make(map[Symbol]struct{})
	for _, bySym := range a.edges {
		for sym := range bySym {
			if sym != Epsilon {
				seen[sym] = struct{}{}
			}
		}
	}
	alpha := make([]Symbol, 0, len(seen))
	for sym := range seen {
		alpha = append(alpha, sym)
	}
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	return alpha
}

func (a *Automaton) anyFinal(set StateSet) bool {
	for _, s := range set {
		if a.IsFinal(s) {
			return true
		}
	}
	return false
}

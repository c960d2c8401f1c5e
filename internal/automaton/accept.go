package automaton

// Accepts simulates the ε-NFA on word, one rune per symbol. Every initial
// state contributes to the live set, so acceptance is the OR over initials.
func (a *Automaton) Accepts(word string) bool {
	live := a.Closure(a.initial...)
	for _, r := range word {
		live = a.step(live, Symbol(r))
		if live.IsEmpty() {
			return false
		}
	}
	return a.anyFinal(live)
}

// Trace returns the live set before the first symbol and after each symbol.
// It stops early, with an empty last set, once no state is alive.
func (a *Automaton) Trace(word string) []StateSet {
	live := a.Closure(a.initial...)
	trace := []StateSet{live}
	for _, r := range word {
		live = a.step(live, Symbol(r))
		trace = append(trace, live)
		if live.IsEmpty() {
			break
		}
	}
	return trace
}

// Run walks d on word. ok is false when a transition is missing; that is a
// rejection, not an error.
func (d *DFA) Run(word string) (last *DFAState, ok bool) {
	cur := d.Start
	for _, r := range word {
		next, found := cur.Next(Symbol(r))
		if !found {
			return cur, false
		}
		cur = next
	}
	return cur, true
}

// Accepts reports whether the walk on word ends in a final state.
func (d *DFA) Accepts(word string) bool {
	s, ok := d.Run(word)
	return ok && s.Final
}

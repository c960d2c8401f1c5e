package automaton

import "container/list"

// Closure returns every state reachable from states through zero or more ε-transitions.
func (a *Automaton) Closure(states ...State) StateSet {
	set := make(map[State]struct{}, len(states))
	stack := list.New()
	for _, s := range states {
		if _, ok := set[s]; ok {
			continue
		}
		set[s] = struct{}{}
		stack.PushBack(s)
	}
	for stack.Len() > 0 {
		s := stack.Remove(stack.Back()).(State)
		for _, to := range a.edges[s][Epsilon] {
			if _, ok := set[to]; !ok {
				set[to] = struct{}{}
				stack.PushBack(to)
			}
		}
	}
	return setFromMap(set)
}

// Move returns the states reachable from set by exactly one sym transition, without closure.
func (a *Automaton) Move(set StateSet, sym Symbol) StateSet {
	res := make(map[State]struct{})
	for _, s := range set {
		for _, to := range a.edges[s][sym] {
			res[to] = struct{}{}
		}
	}
	return setFromMap(res)
}

// step is one ε-NFA transition on sym: move, then close.
// The epsilon letter never matches input.
func (a *Automaton) step(set StateSet, sym Symbol) StateSet {
	if sym == Epsilon {
		return nil
	}
	moved := a.Move(set, sym)
	if moved.IsEmpty() {
		return moved
	}
	return a.Closure(moved...)
}

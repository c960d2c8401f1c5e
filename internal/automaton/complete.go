package automaton

// DeadStateName is the preferred name of the sink added by Complete.
const DeadStateName = "h"

// Complete returns a copy of d whose transition function is total. Missing
// transitions are routed to a non-accepting dead state that loops on every symbol.
// A DFA that is already total is copied unchanged.
func (d *DFA) Complete() *DFA {
	newStates := make([]*DFAState, len(d.States))
	taken := map[string]struct{}{}
	for i, s := range d.States {
		newStates[i] = &DFAState{
			ID:     i,
			Name:   s.Name,
			Subset: s.Subset,
			Final:  s.Final,
			Dead:   s.Dead,
			trans:  make(map[Symbol]*DFAState, len(d.Alpha)),
		}
		taken[s.Name] = struct{}{}
	}
	for i, s := range d.States {
		for sym, to := range s.trans {
			newStates[i].trans[sym] = newStates[to.ID]
		}
	}
	out := &DFA{Start: newStates[d.Start.ID], States: newStates, Alpha: append([]Symbol(nil), d.Alpha...)}
	if d.IsTotal() {
		return out
	}

	name := DeadStateName
	for {
		if _, ok := taken[name]; !ok {
			break
		}
		name += "'"
	}
	dead := &DFAState{
		ID:     len(newStates),
		Name:   name,
		Subset: StateSet{},
		Dead:   true,
		trans:  make(map[Symbol]*DFAState, len(d.Alpha)),
	}
	out.States = append(out.States, dead)
	for _, s := range out.States {
		for _, sym := range out.Alpha {
			if _, ok := s.trans[sym]; !ok {
				s.trans[sym] = dead
			}
		}
	}
	return out
}

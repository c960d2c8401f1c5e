package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// StateSet is a sorted, duplicate-free set of NFA states.
type StateSet []State

// NewStateSet canonicalizes states into a StateSet. The input slice is not modified.
func NewStateSet(states ...State) StateSet {
	out := make(StateSet, len(states))
	copy(out, states)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 0
	for i, s := range out {
		if i > 0 && s == out[n-1] {
			continue
		}
		out[n] = s
		n++
	}
	return out[:n]
}

func setFromMap(m map[State]struct{}) StateSet {
	out := make(StateSet, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Key identifies the set independently of insertion order. Members are length
// prefixed, so no state name can make two different sets share a key.
func (s StateSet) Key() string {
	var b strings.Builder
	for _, st := range s {
		b.WriteString(strconv.Itoa(len(st)))
		b.WriteByte(':')
		b.WriteString(string(st))
	}
	return b.String()
}

// Name is the concatenation of the member names.
func (s StateSet) Name() string {
	var b strings.Builder
	for _, st := range s {
		b.WriteString(string(st))
	}
	return b.String()
}

func (s StateSet) Contains(st State) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= st })
	return i < len(s) && s[i] == st
}

func (s StateSet) Equal(o StateSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s StateSet) IsEmpty() bool { return len(s) == 0 }

func (s StateSet) String() string {
	parts := make([]string, len(s))
	for i, st := range s {
		parts[i] = string(st)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

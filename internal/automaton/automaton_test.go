package automaton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------- helpers

type edge struct {
	from State
	sym  Symbol
	to   State
}

func mustBuild(t *testing.T, states []State, initial []State, finals []State, edges []edge) *Automaton {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.AddStates(states...))
	require.NoError(t, b.SetInitial(initial...))
	require.NoError(t, b.AddFinals(finals...))
	for _, e := range edges {
		require.NoError(t, b.AddTransition(e.from, e.sym, e.to))
	}
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

// workedExample is the eight-state automaton used throughout the package tests.
func workedExample(t *testing.T) *Automaton {
	return mustBuild(t,
		[]State{"A", "B", "C", "D", "E", "F", "G", "I"},
		[]State{"A"},
		[]State{"E"},
		[]edge{
			{"A", Epsilon, "C"}, {"A", Epsilon, "G"}, {"F", Epsilon, "G"},
			{"A", '1', "B"}, {"B", '1', "B"}, {"B", '0', "F"},
			{"C", '0', "D"}, {"D", '1', "D"}, {"D", '0', "E"}, {"D", '0', "I"},
			{"G", '1', "I"}, {"I", '0', "I"}, {"I", '1', "E"},
		})
}

// ------------------------------------------------------------------- Builder

func TestBuilderRejectsUndeclaredStates(t *testing.T) {
	cases := map[string]func(b *Builder) error{
		"initial":     func(b *Builder) error { return b.SetInitial("Z") },
		"final":       func(b *Builder) error { return b.AddFinals("Z") },
		"origin":      func(b *Builder) error { return b.AddTransition("Z", '0', "A") },
		"destination": func(b *Builder) error { return b.AddTransition("A", '0', "Z") },
		"duplicate":   func(b *Builder) error { return b.AddStates("A") },
		"empty name":  func(b *Builder) error { return b.AddStates("") },
		"whitespace":  func(b *Builder) error { return b.AddStates("X Y") },
		"control":     func(b *Builder) error { return b.AddStates("X\x1fY") },
		"no initials": func(b *Builder) error { return b.SetInitial() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, b.AddStates("A", "B"))
			err := mutate(b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDefinition))

			// the builder stays poisoned
			require.NoError(t, b.SetInitial("A"))
			a, err := b.Build()
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestBuilderRequiresInitialState(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddStates("A"))
	_, err := b.Build()
	require.ErrorIs(t, err, ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "no initial state")
}

func TestBuilderCannotMutateAfterBuild(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddStates("A"))
	require.NoError(t, b.SetInitial("A"))
	a, err := b.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, b.AddStates("B"), ErrInvalidDefinition)
	assert.ErrorIs(t, b.AddFinals("A"), ErrInvalidDefinition)
	assert.Empty(t, a.Finals())
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

func TestBuilderIgnoresRepeatedTransition(t *testing.T) {
	a := mustBuild(t, []State{"A", "B", "C"}, []State{"A"}, nil, []edge{
		{"A", '0', "C"}, {"A", '0', "B"}, {"A", '0', "C"},
	})
	assert.Equal(t, []State{"B", "C"}, a.Transitions("A", '0'))
	assert.Empty(t, a.Transitions("B", '0'))
}

func TestAccessors(t *testing.T) {
	a := workedExample(t)
	assert.Equal(t, []State{"A", "B", "C", "D", "E", "F", "G", "I"}, a.States())
	assert.Equal(t, []State{"A"}, a.Initial())
	assert.Equal(t, []State{"E"}, a.Finals())
	assert.True(t, a.IsFinal("E"))
	assert.False(t, a.IsFinal("A"))
	assert.Equal(t, []Symbol{'0', '1'}, a.Alphabet())
	assert.Equal(t, []State{"E", "I"}, a.Transitions("D", '0'))
}

func TestDefinitionErrorLine(t *testing.T) {
	b := NewBuilder()
	err := AtLine(b.AddStates(""), 7)
	var de *DefinitionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 7, de.Line)
	assert.Contains(t, err.Error(), "line 7")

	plain := errors.New("boom")
	assert.Same(t, plain, AtLine(plain, 3))
}

// ------------------------------------------------------------------- StateSet

func TestStateSetCanonical(t *testing.T) {
	a := NewStateSet("C", "A", "B", "A")
	b := NewStateSet("B", "C", "A")
	assert.Equal(t, StateSet{"A", "B", "C"}, a)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "ABC", a.Name())
	assert.True(t, a.Contains("B"))
	assert.False(t, a.Contains("D"))

	// concatenated names may collide, keys must not
	assert.Equal(t, NewStateSet("A", "BC").Name(), NewStateSet("AB", "C").Name())
	assert.NotEqual(t, NewStateSet("A", "BC").Key(), NewStateSet("AB", "C").Key())
	assert.NotEqual(t, NewStateSet("A\x1fB").Key(), NewStateSet("A", "B").Key())
	assert.NotEqual(t, NewStateSet("1:A1:B").Key(), NewStateSet("A", "B").Key())
}

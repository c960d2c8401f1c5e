package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"nfa2dfa/internal/automaton"
	"nfa2dfa/internal/textfmt"
)

type convertOptions struct {
	Output   string
	Complete bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <automaton>",
		Short: "Build the DFA of an ε-NFA definition",
		Long: `Build the DFA of an ε-NFA by subset construction and print it in the
definition layout: states, initial state, final states, then transitions.

Only reachable subsets become states. A symbol with no successor gets no
transition unless --complete routes it to an explicit dead state.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().BoolVar(&opts.Complete, "complete", false, "add a dead state so every state has a transition on every symbol")
	return cmd
}

func runConvert(rootOpts *RootOptions, opts *convertOptions, path string, cmd *cobra.Command) error {
	nfa, err := textfmt.LoadAutomaton(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "load automaton", err)
	}
	d := buildDFA(nfa, opts.Complete)

	w, closeOut, err := openOutput(cmd.OutOrStdout(), opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "open output", err)
	}
	table := d.Table()
	err = emit(w, rootOpts.Format, table, func(w io.Writer) error {
		return textfmt.WriteDFA(w, table)
	})
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "write dfa", err)
	}
	return nil
}

func buildDFA(nfa *automaton.Automaton, complete bool) *automaton.DFA {
	d := automaton.Build(nfa)
	if complete {
		d = d.Complete()
	}
	slog.Debug("dfa built", "states", len(d.States), "finals", len(d.Finals()), "total", d.IsTotal())
	return d
}

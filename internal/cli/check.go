package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"nfa2dfa/internal/automaton"
	"nfa2dfa/internal/textfmt"
)

// Engines selectable with --engine.
const (
	EngineNFA  = "nfa"
	EngineDFA  = "dfa"
	EngineBoth = "both"
)

type checkOptions struct {
	Engine string
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Engine     string            `json:"engine"`
	Verdicts   []textfmt.Verdict `json:"verdicts"`
	Mismatches []string          `json:"mismatches,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <automaton> <words>",
		Short: "Decide which words an automaton accepts",
		Long: `Read one word per line and report whether the automaton accepts it.

With --engine=both (the default) every word is run through the ε-NFA and the
constructed DFA; the command fails if the two disagree.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Engine, "engine", EngineBoth, "acceptance engine (nfa|dfa|both)")
	return cmd
}

func runCheck(rootOpts *RootOptions, opts *checkOptions, automatonPath, wordsPath string, cmd *cobra.Command) error {
	switch opts.Engine {
	case EngineNFA, EngineDFA, EngineBoth:
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid engine %q: must be one of nfa, dfa, both", opts.Engine))
	}
	nfa, err := textfmt.LoadAutomaton(automatonPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load automaton", err)
	}
	words, err := textfmt.LoadWords(wordsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load words", err)
	}

	res := evaluate(nfa, words, opts.Engine)
	err = emit(cmd.OutOrStdout(), rootOpts.Format, res, func(w io.Writer) error {
		return textfmt.WriteVerdicts(w, res.Verdicts)
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write verdicts", err)
	}
	return mismatchError(res)
}

// evaluate runs every word through the selected engine. With EngineBoth the
// NFA verdict is reported and any DFA disagreement is collected.
func evaluate(nfa *automaton.Automaton, words []string, engine string) CheckResult {
	res := CheckResult{Engine: engine, Verdicts: make([]textfmt.Verdict, 0, len(words))}
	var d *automaton.DFA
	if engine != EngineNFA {
		d = buildDFA(nfa, false)
	}
	for _, w := range words {
		var accepted bool
		switch engine {
		case EngineDFA:
			accepted = d.Accepts(w)
		default:
			accepted = nfa.Accepts(w)
			if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
				slog.Debug("nfa trace", "word", w, "trace", fmt.Sprint(nfa.Trace(w)))
			}
			if engine == EngineBoth && d.Accepts(w) != accepted {
				slog.Error("engines disagree", "word", w, "nfa", accepted)
				res.Mismatches = append(res.Mismatches, w)
			}
		}
		res.Verdicts = append(res.Verdicts, textfmt.Verdict{Word: w, Accepted: accepted})
	}
	return res
}

func mismatchError(res CheckResult) error {
	if len(res.Mismatches) == 0 {
		return nil
	}
	return NewExitError(ExitFailure, fmt.Sprintf("nfa and dfa disagree on %d word(s): %q", len(res.Mismatches), res.Mismatches))
}

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nfa2dfa/internal/textfmt"
)

// Files written by the run command.
const (
	DFAFileName      = "dfa.txt"
	VerdictsFileName = "verdicts.txt"
)

type runOptions struct {
	OutDir   string
	Complete bool
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	DFAPath      string   `json:"dfa_path"`
	VerdictsPath string   `json:"verdicts_path"`
	States       int      `json:"states"`
	Accepted     int      `json:"accepted"`
	Rejected     int      `json:"rejected"`
	Mismatches   []string `json:"mismatches,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <automaton> <words>",
		Short: "Convert an automaton and check a word list in one go",
		Long: `Convert the automaton and check every word, writing the DFA to dfa.txt and
the verdicts to verdicts.txt inside --out-dir.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", ".", "directory for dfa.txt and verdicts.txt")
	cmd.Flags().BoolVar(&opts.Complete, "complete", false, "add a dead state to the written DFA")
	return cmd
}

func runRun(rootOpts *RootOptions, opts *runOptions, automatonPath, wordsPath string, cmd *cobra.Command) error {
	nfa, err := textfmt.LoadAutomaton(automatonPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load automaton", err)
	}
	words, err := textfmt.LoadWords(wordsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load words", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return WrapExitError(ExitCommandError, "create output directory", err)
	}

	d := buildDFA(nfa, opts.Complete)
	res := RunResult{
		DFAPath:      filepath.Join(opts.OutDir, DFAFileName),
		VerdictsPath: filepath.Join(opts.OutDir, VerdictsFileName),
		States:       len(d.States),
	}
	if err := writeFile(res.DFAPath, func(w io.Writer) error { return textfmt.WriteDFA(w, d.Table()) }); err != nil {
		return WrapExitError(ExitCommandError, "write dfa", err)
	}

	check := evaluate(nfa, words, EngineBoth)
	for _, v := range check.Verdicts {
		if v.Accepted {
			res.Accepted++
		} else {
			res.Rejected++
		}
	}
	res.Mismatches = check.Mismatches
	if err := writeFile(res.VerdictsPath, func(w io.Writer) error { return textfmt.WriteVerdicts(w, check.Verdicts) }); err != nil {
		return WrapExitError(ExitCommandError, "write verdicts", err)
	}
	slog.Info("run finished", "dfa", res.DFAPath, "verdicts", res.VerdictsPath, "words", len(words))

	err = emit(cmd.OutOrStdout(), rootOpts.Format, res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "DFA with %d states written to %s\n%d accepted, %d rejected, written to %s\n",
			res.States, res.DFAPath, res.Accepted, res.Rejected, res.VerdictsPath)
		return err
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "write summary", err)
	}
	return mismatchError(check)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

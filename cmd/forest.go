package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texhnolyzze/MyCommonUtilsLib/internal/ansi"
	"github.com/texhnolyzze/MyCommonUtilsLib/internal/script"
)

var forestCmd = &cobra.Command{
	Use:   "forest",
	Short: "Work with disjoint-set forest scripts",
}

var forestRunCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Replay a TOML forest script and check its expectations",
	Long: `Replays the operations in a TOML script on a fresh disjoint-set forest and
prints the resulting groups. Any failed expect, want, or groups check makes the
command exit non-zero.

With --watch, the script is replayed every time the file changes until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runForest,
}

func init() {
	forestRunCmd.Flags().BoolP("watch", "w", false, "re-run the script whenever it changes")
	forestCmd.AddCommand(forestRunCmd)
	rootCmd.AddCommand(forestCmd)
}

func runForest(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	runner := &script.Runner{Seed: s.cfg.Seed, Emitter: s.tel, Logger: s.log}
	ctx, cancel := setupSignalContext(s.log)
	defer cancel()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchForest(ctx, cmd.OutOrStdout(), runner, args[0])
	}

	rep, err := runScriptFile(ctx, runner, args[0])
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), rep, isTerminal(cmd.OutOrStdout()))
	if !rep.Passed() {
		return fmt.Errorf("%d expectation(s) failed", len(rep.Failures))
	}
	return nil
}

func runScriptFile(ctx context.Context, runner *script.Runner, path string) (*script.Report, error) {
	sc, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, sc)
}

// watchForest runs the script once, then again after every change, until
// ctx is cancelled. Load and run errors are logged rather than returned so
// a half-saved file does not end the session.
func watchForest(ctx context.Context, out io.Writer, runner *script.Runner, path string) error {
	w, err := script.NewWatcher(path)
	if err != nil {
		return fmt.Errorf("forest: watch %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("forest: watch %s: %w", path, err)
	}
	defer w.Stop()

	rerun := func() {
		rep, err := runScriptFile(ctx, runner, path)
		if err != nil {
			runner.Logger.Error("script run failed", "file", path, "err", err)
			return
		}
		printReport(out, rep, isTerminal(out))
	}

	rerun()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if change.Kind == script.ChangeRemoved {
				runner.Logger.Warn("script removed; waiting for it to reappear", "file", change.File)
				continue
			}
			runner.Logger.Info("script changed; re-running", "file", change.File)
			rerun()
		}
	}
}

// printReport writes the groups and any failures of a run.
func printReport(w io.Writer, rep *script.Report, color bool) {
	fmt.Fprintf(w, "run %s: %d steps, %d elements in %d groups\n",
		ansi.Paint(color, ansi.Dim, rep.RunID), rep.Steps, rep.Elements, rep.Groups)
	for _, members := range rep.Components {
		fmt.Fprintf(w, "  {%s}\n", strings.Join(members, ", "))
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "%s step %d (%s): %s\n", ansi.Paint(color, ansi.Red+ansi.Bold, "FAIL"), f.Step, f.Kind, f.Message)
	}
}

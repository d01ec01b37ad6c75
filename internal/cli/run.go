package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/runner"
)

// RunOptions contains the options for the run command.
type RunOptions struct {
	DryRun bool
	Yes    bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [workflow]",
		Short: "Open a workflow's folders and files",
		Long: `Run a workflow: wait each action's delay, then open its folder or file
with the system's default application, in order.

The run stops at the first path that cannot be opened. Ctrl+C stops it
before the next action.

Examples:
  scene run Morning
  scene run Morning --dry-run   # Print the steps without opening anything`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dry-run") {
				opts.DryRun = s.cfg.Runner.DryRunByDefault
			}
			return runRun(cmd, s, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the steps without waiting or opening anything")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runRun(cmd *cobra.Command, s *session, opts *RunOptions, args []string) error {
	wf, err := s.resolveWorkflow(args, "Run workflow")
	if err != nil {
		return err
	}

	if len(wf.Actions) == 0 {
		fmt.Fprintf(s.out, "Workflow %q has no actions; nothing to do\n", wf.Name)
		return nil
	}

	if s.cfg.Runner.ConfirmRun && !opts.Yes && !opts.DryRun {
		ok, err := s.confirm(fmt.Sprintf("Run %q?", wf.Name),
			fmt.Sprintf("%d action(s), %s of waiting", len(wf.Actions), wf.TotalDelay()))
		if err != nil {
			return err
		}
		if !ok {
			return sceneerrors.ErrCanceled
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.NewRunner(
		runner.WithLauncher(newLauncher()),
		runner.WithSleeper(newSleeper()),
		runner.WithDryRun(opts.DryRun),
	)

	sink := runner.NewWriterSink(s.out)
	defer sink.Close()

	result, err := r.Run(ctx, wf, sink)
	switch {
	case err == nil && result.DryRun:
		fmt.Fprintf(s.out, "Dry run of %q: %d action(s), %s of waiting\n", wf.Name, len(wf.Actions), wf.TotalDelay())
	case err == nil:
		fmt.Fprintf(s.out, "Ran %q: %d action(s) in %s\n", wf.Name, len(result.ActionResults), result.Duration.Round(time.Millisecond))
	case runner.IsCanceled(err):
		fmt.Fprintf(s.errOut, "Stopped %q before action %d\n", wf.Name, result.FailedAction+1)
	default:
		fmt.Fprintf(s.errOut, "Workflow %q stopped at action %d of %d\n", wf.Name, result.FailedAction+1, len(wf.Actions))
	}
	return err
}

// Package runner plays a workflow back: for each action in order it waits
// the action's delay and then opens its path with the OS default handler.
// The first failure stops the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	sceneerrors "github.com/chazuruo/scene/internal/errors"
	"github.com/chazuruo/scene/internal/log"
	"github.com/chazuruo/scene/internal/workflows"
)

// Runner executes workflows.
type Runner interface {
	// Run executes every action of wf in order.
	Run(ctx context.Context, wf *workflows.Workflow, sink OutputSink) (RunResult, error)
}

// Launcher opens paths with the platform's default handler.
type Launcher interface {
	// Open opens path the way a double click in the file manager would.
	Open(ctx context.Context, path string) error
	// Reveal opens the folder itself, or the folder containing a file.
	Reveal(ctx context.Context, path string) error
}

// Sleeper waits between actions.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case.
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// ContextSleep waits for d unless ctx is canceled first.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunResult contains the result of a workflow run.
type RunResult struct {
	Success       bool
	FailedAction  int // Index of the action that stopped the run, or -1
	Canceled      bool
	DryRun        bool
	Duration      time.Duration
	ActionResults []ActionResult
}

// ActionResult contains the result of a single action.
type ActionResult struct {
	Index  int
	Action workflows.Action
	Waited time.Duration
	Opened bool
	Error  error
}

// runner implements Runner.
type runner struct {
	launcher Launcher
	sleeper  Sleeper
	dryRun   bool
}

// Option configures a runner.
type Option func(*runner)

// NewRunner creates a new runner. Without options it opens paths with the
// OS launcher and really sleeps between actions.
func NewRunner(opts ...Option) Runner {
	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.launcher == nil {
		r.launcher = NewOSLauncher()
	}
	if r.sleeper == nil {
		r.sleeper = SleeperFunc(ContextSleep)
	}
	return r
}

// WithLauncher sets the launcher used to open paths.
func WithLauncher(l Launcher) Option {
	return func(r *runner) {
		r.launcher = l
	}
}

// WithSleeper sets how delays are waited out.
func WithSleeper(s Sleeper) Option {
	return func(r *runner) {
		r.sleeper = s
	}
}

// WithDryRun reports each step without waiting or opening anything.
func WithDryRun(dryRun bool) Option {
	return func(r *runner) {
		r.dryRun = dryRun
	}
}

// Run executes a workflow. A launch failure ends the run with a
// *errors.LaunchError; the remaining actions are not attempted. Canceling
// ctx stops the run before the next wait or launch with ErrCanceled.
func (r *runner) Run(ctx context.Context, wf *workflows.Workflow, sink OutputSink) (RunResult, error) {
	startTime := time.Now()
	if sink == nil {
		sink = discardSink{}
	}

	total := len(wf.Actions)
	result := RunResult{
		FailedAction:  -1,
		DryRun:        r.dryRun,
		ActionResults: make([]ActionResult, 0, total),
	}

	finish := func(err error) (RunResult, error) {
		result.Duration = time.Since(startTime)
		return result, err
	}

	log.Info(log.CatRunner, "running workflow", "id", wf.ID, "name", wf.Name, "actions", total, "dry_run", r.dryRun)

	for i, action := range wf.Actions {
		ar := ActionResult{Index: i, Action: action}
		prefix := fmt.Sprintf("[%d/%d]", i+1, total)

		if err := ctx.Err(); err != nil {
			return finish(r.cancel(&result, ar, wf))
		}

		if wait := action.Wait(); wait > 0 {
			_ = sink.Write(fmt.Sprintf("%s waiting %s", prefix, wait))
			if !r.dryRun {
				if err := r.sleeper.Sleep(ctx, wait); err != nil {
					return finish(r.cancel(&result, ar, wf))
				}
			}
			ar.Waited = wait
		}

		_ = sink.Write(fmt.Sprintf("%s open %s %s", prefix, action.Kind, action.Path))
		if r.dryRun {
			result.ActionResults = append(result.ActionResults, ar)
			continue
		}

		if err := r.launcher.Open(ctx, action.Path); err != nil {
			lerr := &sceneerrors.LaunchError{Index: i, Path: action.Path, Err: err}
			ar.Error = lerr
			result.ActionResults = append(result.ActionResults, ar)
			result.FailedAction = i
			log.ErrorErr(log.CatRunner, "action failed; stopping workflow", err, "name", wf.Name, "index", i, "path", action.Path)
			_ = sink.Write(fmt.Sprintf("%s failed: %v", prefix, err))
			return finish(lerr)
		}

		ar.Opened = true
		result.ActionResults = append(result.ActionResults, ar)
	}

	result.Success = true
	return finish(nil)
}

// cancel records a canceled action and builds the error returned from Run.
func (r *runner) cancel(result *RunResult, ar ActionResult, wf *workflows.Workflow) error {
	err := &sceneerrors.WorkflowError{Op: "run", Err: sceneerrors.ErrCanceled, ID: wf.Name}
	ar.Error = err
	result.ActionResults = append(result.ActionResults, ar)
	result.FailedAction = ar.Index
	result.Canceled = true
	log.Warn(log.CatRunner, "workflow canceled", "name", wf.Name, "index", ar.Index)
	return err
}

// IsCanceled reports whether a Run error came from cancellation.
func IsCanceled(err error) bool {
	return sceneerrors.IsCanceled(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

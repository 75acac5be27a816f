// Package runner drives the bootstrap: it walks the step catalog in
// order, skips steps whose targets already exist, and executes the
// operations of the rest through the operation executor.
package runner

import (
	"context"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/logging"
	"github.com/devinit-cli/devinit/pkg/operations"
	"github.com/devinit-cli/devinit/pkg/steps"
)

// StepReport is the outcome of one step in a run.
type StepReport struct {
	Name        string
	Description string
	Check       steps.CheckResult
	Skipped     bool
	Results     []operations.OperationResult
	Err         error
}

// RunReport aggregates a whole `up` invocation.
type RunReport struct {
	DryRun bool
	Steps  []StepReport
}

// Failed reports whether any step in the run failed.
func (r *RunReport) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// StepStatus is one row of `status` output.
type StepStatus struct {
	Name        string
	Description string
	Check       steps.CheckResult
	Err         error
}

// Runner executes bootstrap steps against an environment.
type Runner struct {
	stepCtx  steps.Context
	executor *operations.Executor
	dryRun   bool
}

// New creates a Runner.
func New(stepCtx steps.Context, executor *operations.Executor, dryRun bool) *Runner {
	return &Runner{stepCtx: stepCtx, executor: executor, dryRun: dryRun}
}

// resolve maps step names to catalog steps, preserving catalog order
// when names is empty.
func resolve(names []string) ([]steps.Step, error) {
	if len(names) == 0 {
		return steps.Catalog(), nil
	}

	var selected []steps.Step
	for _, name := range names {
		step := steps.ByName(name)
		if step == nil {
			return nil, errors.Newf(errors.ErrStepNotFound, "unknown step: %s", name)
		}
		selected = append(selected, step)
	}
	return selected, nil
}

// Run executes the named steps, or the full catalog when names is
// empty. Execution stops at the first failed step; the report covers
// everything attempted up to and including the failure.
func (r *Runner) Run(ctx context.Context, names []string) (*RunReport, error) {
	logger := logging.GetLogger("runner")

	selected, err := resolve(names)
	if err != nil {
		return nil, err
	}

	report := &RunReport{DryRun: r.dryRun}
	for _, step := range selected {
		stepReport := r.runStep(ctx, step)
		report.Steps = append(report.Steps, stepReport)

		if stepReport.Err != nil {
			logger.Error().
				Str("step", step.Name()).
				Err(stepReport.Err).
				Msg("Step failed, stopping")
			return report, errors.Wrapf(stepReport.Err, errors.ErrStepExecute,
				"step %s failed", step.Name())
		}
	}
	return report, nil
}

func (r *Runner) runStep(ctx context.Context, step steps.Step) StepReport {
	logger := logging.GetLogger("runner").With().Str("step", step.Name()).Logger()

	report := StepReport{Name: step.Name(), Description: step.Description()}

	check, err := step.Check(r.stepCtx)
	if err != nil {
		report.Err = err
		return report
	}
	report.Check = check

	if check.State == steps.StateInstalled {
		logger.Debug().Str("reason", check.Message).Msg("Step already satisfied")
		report.Skipped = true
		return report
	}

	ops, err := step.Operations(r.stepCtx)
	if err != nil {
		report.Err = err
		return report
	}
	if len(ops) == 0 {
		report.Skipped = true
		return report
	}

	results, err := r.executor.Execute(ctx, r.executor.Plan(ops))
	report.Results = results
	report.Err = err
	return report
}

// Status runs every catalog step's existence check without executing
// anything. A check error is recorded per step instead of aborting.
func (r *Runner) Status() []StepStatus {
	var statuses []StepStatus
	for _, step := range steps.Catalog() {
		check, err := step.Check(r.stepCtx)
		statuses = append(statuses, StepStatus{
			Name:        step.Name(),
			Description: step.Description(),
			Check:       check,
			Err:         err,
		})
	}
	return statuses
}

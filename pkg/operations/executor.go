package operations

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/devinit-cli/devinit/pkg/backup"
	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/fetch"
	"github.com/devinit-cli/devinit/pkg/git"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// FileWriter deploys bundled file content to a target path.
type FileWriter interface {
	WriteFile(ctx context.Context, target string, content []byte, mode os.FileMode) error
}

// Executor performs operations in order, or simulates them in dry-run
// mode. It stops at the first failed operation.
type Executor struct {
	runner  execx.Runner
	writer  FileWriter
	dryRun  bool
	backups bool
	now     func() time.Time
}

// NewExecutor creates an operation executor.
func NewExecutor(runner execx.Runner, writer FileWriter, dryRun, backups bool) *Executor {
	return &Executor{
		runner:  runner,
		writer:  writer,
		dryRun:  dryRun,
		backups: backups,
		now:     time.Now,
	}
}

// SetClock overrides the backup timestamp source, for tests.
func (e *Executor) SetClock(now func() time.Time) { e.now = now }

// Plan expands a step's declared operations into the executable list:
// when backups are enabled, every CopyFile is preceded by a BackupFile
// for its target.
func (e *Executor) Plan(ops []Operation) []Operation {
	if !e.backups {
		return ops
	}

	planned := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if op.Type == CopyFile {
			planned = append(planned, Operation{
				Type:   BackupFile,
				Step:   op.Step,
				Target: op.Target,
			})
		}
		planned = append(planned, op)
	}
	return planned
}

// Execute runs the planned operations in order. In dry-run mode every
// operation is simulated and nothing can fail; otherwise execution stops
// at the first error and the partial results are returned.
func (e *Executor) Execute(ctx context.Context, ops []Operation) ([]OperationResult, error) {
	logger := logging.GetLogger("operations.executor").With().
		Int("operation_count", len(ops)).
		Bool("dry_run", e.dryRun).
		Logger()

	var results []OperationResult
	for _, op := range ops {
		logger.Debug().
			Str("type", TypeName(op.Type)).
			Str("step", op.Step).
			Msg("Executing operation")

		var result OperationResult
		if e.dryRun {
			result = e.simulate(op)
		} else {
			result = e.executeOne(ctx, op)
		}
		results = append(results, result)

		if result.Error != nil {
			return results, result.Error
		}
	}
	return results, nil
}

func (e *Executor) executeOne(ctx context.Context, op Operation) OperationResult {
	switch op.Type {
	case RunCommand:
		if err := e.runner.Run(ctx, op.Command); err != nil {
			return OperationResult{Operation: op, Error: err}
		}
		return OperationResult{Operation: op, Success: true,
			Message: fmt.Sprintf("Executed: %s", op.Command.String())}

	case CloneRepo:
		err := git.Clone(ctx, e.runner, git.CloneOptions{
			URL:    op.URL,
			Target: op.Target,
			Ref:    op.Ref,
			Depth:  op.Depth,
		})
		if err != nil {
			return OperationResult{Operation: op, Error: err}
		}
		return OperationResult{Operation: op, Success: true,
			Message: fmt.Sprintf("Cloned %s → %s", op.URL, op.Target)}

	case DownloadFile:
		mode := op.Mode
		if mode == 0 {
			mode = 0755
		}
		if err := fetch.Download(ctx, op.URL, op.Target, mode); err != nil {
			return OperationResult{Operation: op, Error: err}
		}
		return OperationResult{Operation: op, Success: true,
			Message: fmt.Sprintf("Downloaded %s", op.URL)}

	case CopyFile:
		mode := op.Mode
		if mode == 0 {
			mode = 0644
		}
		if err := e.writer.WriteFile(ctx, op.Target, op.Content, mode); err != nil {
			return OperationResult{Operation: op, Error: err}
		}
		return OperationResult{Operation: op, Success: true,
			Message: fmt.Sprintf("Deployed %s", op.Target)}

	case BackupFile:
		backupPath, err := backup.Create(op.Target, e.now())
		if err != nil {
			return OperationResult{Operation: op, Error: err}
		}
		if backupPath == "" {
			return OperationResult{Operation: op, Success: true, Skipped: true,
				Message: fmt.Sprintf("Nothing to back up at %s", op.Target)}
		}
		return OperationResult{Operation: op, Success: true,
			Message: fmt.Sprintf("Backed up %s → %s", op.Target, backupPath)}

	default:
		return OperationResult{Operation: op,
			Error: fmt.Errorf("unknown operation type: %d", op.Type)}
	}
}

// simulate returns what would happen without doing it.
func (e *Executor) simulate(op Operation) OperationResult {
	var message string

	switch op.Type {
	case RunCommand:
		message = fmt.Sprintf("Would run: %s", op.Command.String())
	case CloneRepo:
		message = fmt.Sprintf("Would clone %s into %s", op.URL, op.Target)
	case DownloadFile:
		message = fmt.Sprintf("Would download %s to %s", op.URL, op.Target)
	case CopyFile:
		message = fmt.Sprintf("Would deploy %s to %s", op.Source, op.Target)
	case BackupFile:
		if _, err := os.Stat(op.Target); os.IsNotExist(err) {
			message = fmt.Sprintf("Nothing to back up at %s", op.Target)
		} else {
			message = fmt.Sprintf("Would back up %s", op.Target)
		}
	}

	return OperationResult{Operation: op, Success: true, Message: message}
}

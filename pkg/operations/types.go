// Package operations defines the atomic units of work the bootstrap
// performs. Steps only declare operations; the executor decides how to
// perform or simulate them. devinit does four things, everything else
// is orchestration: run a command, clone a repository, download a file,
// deploy a config file.
package operations

import (
	"os"

	"github.com/devinit-cli/devinit/pkg/execx"
)

// OperationType represents the fundamental operations devinit performs.
type OperationType int

const (
	// RunCommand executes an external command (package manager,
	// compiler, installer script).
	RunCommand OperationType = iota

	// CloneRepo clones a git repository into a target directory.
	CloneRepo

	// DownloadFile fetches an upstream installer or archive over HTTP.
	DownloadFile

	// CopyFile deploys bundled config content to a target path.
	CopyFile

	// BackupFile creates a timestamped sibling copy of a target before
	// it is overwritten. Synthesized by the executor, never by steps.
	BackupFile
)

// TypeName returns a stable name for an operation type, used in logs
// and dry-run output.
func TypeName(t OperationType) string {
	switch t {
	case RunCommand:
		return "run"
	case CloneRepo:
		return "clone"
	case DownloadFile:
		return "download"
	case CopyFile:
		return "copy"
	case BackupFile:
		return "backup"
	default:
		return "unknown"
	}
}

// Operation represents a single atomic unit of work.
type Operation struct {
	Type OperationType
	Step string // owning step name, for reporting

	// RunCommand
	Command execx.Command

	// CloneRepo
	URL   string
	Ref   string
	Depth int

	// DownloadFile / CopyFile / BackupFile
	Source  string // display name of the asset or URL
	Content []byte // CopyFile: bundled file content
	Target  string
	Mode    os.FileMode
}

// Describe renders a one-line human description of the operation.
func (op Operation) Describe() string {
	switch op.Type {
	case RunCommand:
		return "run " + op.Command.String()
	case CloneRepo:
		return "clone " + op.URL + " into " + op.Target
	case DownloadFile:
		return "download " + op.URL + " to " + op.Target
	case CopyFile:
		return "deploy " + op.Source + " to " + op.Target
	case BackupFile:
		return "back up " + op.Target
	default:
		return "unknown operation"
	}
}

// OperationResult captures the outcome of executing one operation.
type OperationResult struct {
	Operation Operation
	Success   bool
	Skipped   bool
	Message   string
	Error     error
}

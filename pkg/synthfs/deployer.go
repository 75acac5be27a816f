// Package synthfs deploys bundled config files through a synthfs
// pipeline: parent directory creation and the file write execute as
// staged, validated filesystem operations.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// Deployer writes config files through synthfs pipelines.
type Deployer struct {
	logger     zerolog.Logger
	filesystem synthfs.FileSystem
	root       string
}

// NewDeployer creates a Deployer rooted at the real filesystem.
func NewDeployer() *Deployer {
	return &Deployer{
		logger:     logging.GetLogger("synthfs.deployer"),
		filesystem: filesystem.NewOSFileSystem("/"),
		root:       "/",
	}
}

// WriteFile deploys content to target with the given mode, creating the
// parent directory when needed. An existing target is removed first; the
// caller is responsible for backing it up beforehand.
func (d *Deployer) WriteFile(ctx context.Context, target string, content []byte, mode os.FileMode) error {
	// synthfs validation rejects writes over existing files, so clear
	// the target; the executor has already taken the backup.
	if _, err := os.Lstat(target); err == nil {
		d.logger.Debug().Str("target", target).Msg("Removing existing file before deploy")
		if err := os.Remove(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "removing existing %s", target)
		}
	}

	pipeline := synthfs.NewMemPipeline()

	parent := filepath.Dir(target)
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		dirOp, err := d.createDirOperation(parent)
		if err != nil {
			return err
		}
		if err := pipeline.Add(dirOp); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "adding directory operation to pipeline")
		}
	}

	fileOp, err := d.createFileOperation(target, content, mode)
	if err != nil {
		return err
	}
	if err := pipeline.Add(fileOp); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "adding file operation to pipeline")
	}

	executor := synthfs.NewExecutor()
	result := executor.Run(ctx, pipeline, d.filesystem)
	if result.GetError() != nil {
		return errors.Wrapf(result.GetError(), errors.ErrFileCopy, "deploying %s", target)
	}

	d.logger.Debug().
		Str("target", target).
		Str("mode", mode.String()).
		Int("contentLen", len(content)).
		Msg("File deployed")
	return nil
}

func (d *Deployer) createDirOperation(dir string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel(d.root, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", dir)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", dir))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{path: relPath, mode: 0755})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (d *Deployer) createFileOperation(target string, content []byte, mode os.FileMode) (synthfs.Operation, error) {
	relPath, err := filepath.Rel(d.root, target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", target))
	createOp := operations.NewCreateFileOperation(opID, relPath)
	createOp.SetItem(&fileItem{path: relPath, content: content, mode: mode})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

// Item types for synthfs operations

type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }

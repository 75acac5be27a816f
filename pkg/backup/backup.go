// Package backup creates timestamped sibling copies of config files
// before devinit overwrites them: ~/.zshrc becomes
// ~/.zshrc.backup.20060102-150405.
package backup

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// TimestampFormat is the timestamp suffix layout.
const TimestampFormat = "20060102-150405"

const marker = ".backup."

// PathFor returns the backup path for a target at the given time.
func PathFor(target string, now time.Time) string {
	return target + marker + now.Format(TimestampFormat)
}

// Parse splits a backup path into the original target path and its
// timestamp. ok is false when the path is not a devinit backup.
func Parse(backupPath string) (target string, ts time.Time, ok bool) {
	idx := strings.LastIndex(backupPath, marker)
	if idx <= 0 {
		return "", time.Time{}, false
	}
	stamp := backupPath[idx+len(marker):]
	parsed, err := time.Parse(TimestampFormat, stamp)
	if err != nil {
		return "", time.Time{}, false
	}
	return backupPath[:idx], parsed, true
}

// Create copies target to its timestamped backup path, preserving the
// file mode. A missing target is not an error: there is nothing to back
// up, and the empty string is returned.
func Create(target string, now time.Time) (string, error) {
	info, err := os.Stat(target)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupFailed, "stat %s", target)
	}
	if info.IsDir() {
		return "", errors.Newf(errors.ErrBackupFailed, "refusing to back up directory %s", target)
	}

	backupPath := PathFor(target, now)
	if err := copyFile(target, backupPath, info.Mode()); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupFailed, "backing up %s", target)
	}

	logger := logging.GetLogger("backup")
	logger.Info().
		Str("target", target).
		Str("backup", backupPath).
		Msg("Created backup")

	return backupPath, nil
}

// List returns the existing backups for a target, oldest first.
func List(target string) ([]string, error) {
	matches, err := filepath.Glob(target + marker + "*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "globbing backups")
	}

	var backups []string
	for _, m := range matches {
		if _, _, ok := Parse(m); ok {
			backups = append(backups, m)
		}
	}
	sort.Strings(backups)
	return backups, nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

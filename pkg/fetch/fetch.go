// Package fetch downloads upstream installer scripts and archives.
// Downloads are deliberately unpinned: the upstream URLs serve moving
// targets and this tool preserves that behavior.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// Client is the HTTP client used for downloads. Overridable in tests.
var Client = &http.Client{Timeout: 5 * time.Minute}

// Download fetches url into target with the given file mode. The file is
// written to a temporary sibling first and renamed into place so a failed
// download never leaves a truncated target.
func Download(ctx context.Context, url, target string, mode os.FileMode) error {
	logger := logging.GetLogger("fetch")
	logger.Debug().Str("url", url).Str("target", target).Msg("Downloading")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "building request for %s", url)
	}

	resp, err := Client.Do(req)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDownloadFailed, "fetching %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrDownloadFailed, "fetching %s: HTTP %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "creating download directory")
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "creating temporary file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, errors.ErrDownloadFailed, "writing %s", target)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "closing temporary file")
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "setting file mode")
	}
	if err := os.Rename(tmpName, target); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "moving download into place")
	}

	logger.Debug().Str("target", target).Msg("Download complete")
	return nil
}

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devinit-cli/devinit/pkg/errors"
)

func TestDownloadWritesFileWithMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("#!/bin/sh\necho installer\n"))
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "cache", "install.sh")
	err := Download(context.Background(), srv.URL, target, 0755)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echo installer")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestDownloadNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	target := filepath.Join(t.TempDir(), "install.sh")
	err := Download(context.Background(), srv.URL, target, 0755)
	require.Error(t, err)
	assert.Equal(t, errors.ErrDownloadFailed, errors.GetCode(err))
	assert.NoFileExists(t, target)
}

func TestDownloadConnectionRefused(t *testing.T) {
	target := filepath.Join(t.TempDir(), "install.sh")
	err := Download(context.Background(), "http://127.0.0.1:1/install.sh", target, 0755)
	require.Error(t, err)
	assert.Equal(t, errors.ErrDownloadFailed, errors.GetCode(err))
	assert.NoFileExists(t, target)
}

func TestDownloadLeavesNoTempFileOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	err := Download(context.Background(), srv.URL, filepath.Join(dir, "x.sh"), 0755)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

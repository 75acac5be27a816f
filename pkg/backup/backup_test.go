package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/devinit-cli/devinit/pkg/errors"
)

var fixedTime = time.Date(2026, 8, 23, 14, 30, 5, 0, time.UTC)

func TestPathFor(t *testing.T) {
	got := PathFor("/home/dev/.zshrc", fixedTime)
	assert.Equal(t, "/home/dev/.zshrc.backup.20260823-143005", got)
}

func TestCreateCopiesContentAndMode(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".zshrc")
	require.NoError(t, os.WriteFile(target, []byte("export EDITOR=nvim\n"), 0600))

	backupPath, err := Create(target, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, target+".backup.20260823-143005", backupPath)

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=nvim\n", string(data))

	info, err := os.Stat(backupPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// The original is untouched.
	orig, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "export EDITOR=nvim\n", string(orig))
}

func TestCreateMissingTargetIsNoop(t *testing.T) {
	backupPath, err := Create(filepath.Join(t.TempDir(), ".tmux.conf"), fixedTime)
	require.NoError(t, err)
	assert.Empty(t, backupPath)
}

func TestCreateRefusesDirectory(t *testing.T) {
	_, err := Create(t.TempDir(), fixedTime)
	require.Error(t, err)
	assert.Equal(t, errors.ErrBackupFailed, errors.GetCode(err))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".zshrc")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0644))

	first, err := Create(target, fixedTime)
	require.NoError(t, err)
	second, err := Create(target, fixedTime.Add(time.Hour))
	require.NoError(t, err)

	// A lookalike file that is not a valid backup is ignored.
	require.NoError(t, os.WriteFile(target+".backup.notatimestamp", []byte("x"), 0644))

	backups, err := List(target)
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, backups)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, ok := Parse("/home/dev/.zshrc")
	assert.False(t, ok)

	_, _, ok = Parse("/home/dev/.zshrc.backup.not-a-time")
	assert.False(t, ok)
}

func TestPathForParseRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-zA-Z0-9._-]{1,32}`).Draw(t, "name")
		sec := rapid.Int64Range(0, 4102444800).Draw(t, "sec")
		now := time.Unix(sec, 0).UTC()

		target := "/home/dev/" + name
		gotTarget, gotTime, ok := Parse(PathFor(target, now))

		if !ok {
			t.Fatalf("Parse rejected generated backup path for %q", target)
		}
		if gotTarget != target {
			t.Fatalf("target round-trip: got %q want %q", gotTarget, target)
		}
		if gotTime.Format(TimestampFormat) != now.Format(TimestampFormat) {
			t.Fatalf("time round-trip: got %v want %v", gotTime, now)
		}
	})
}

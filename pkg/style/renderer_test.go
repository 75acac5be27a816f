package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/operations"
	"github.com/devinit-cli/devinit/pkg/runner"
	"github.com/devinit-cli/devinit/pkg/steps"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":     FormatAuto,
		"auto": FormatAuto,
		"term": FormatTerminal,
		"text": FormatText,
		"yaml": FormatYAML,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
}

func sampleReport() *runner.RunReport {
	return &runner.RunReport{
		DryRun: true,
		Steps: []runner.StepReport{
			{
				Name:    "packages",
				Check:   steps.CheckResult{State: steps.StatePending, Message: "8 packages to install"},
				Results: []operations.OperationResult{{Success: true, Message: "Would run: sudo apt-get update"}},
			},
			{
				Name:    "tpm",
				Check:   steps.CheckResult{State: steps.StateInstalled, Message: "~/.tmux/plugins/tpm exists"},
				Skipped: true,
			},
		},
	}
}

func TestRunReportText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	require.NoError(t, r.RunReport(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "devinit up (dry run)")
	assert.Contains(t, out, "[missing  ] packages")
	assert.Contains(t, out, "+ Would run: sudo apt-get update")
	assert.Contains(t, out, "[installed] tpm")
	assert.Contains(t, out, "1 steps executed, 1 already satisfied")
	// plain text carries no escape sequences
	assert.NotContains(t, out, "\x1b[")
}

func TestRunReportFailure(t *testing.T) {
	report := &runner.RunReport{
		Steps: []runner.StepReport{{
			Name: "packages",
			Err:  errors.New(errors.ErrCommandFailed, "apt-get update exited 100"),
		}},
	}

	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatText)
	require.NoError(t, r.RunReport(report))

	out := buf.String()
	assert.Contains(t, out, "apt-get update exited 100")
	assert.Contains(t, out, "stopped at the first failure")
}

func TestRunReportYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, FormatYAML)
	require.NoError(t, r.RunReport(sampleReport()))

	var doc struct {
		DryRun bool `yaml:"dry_run"`
		Failed bool `yaml:"failed"`
		Steps  []struct {
			Name    string `yaml:"name"`
			Skipped bool   `yaml:"skipped"`
		} `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.DryRun)
	assert.False(t, doc.Failed)
	require.Len(t, doc.Steps, 2)
	assert.Equal(t, "packages", doc.Steps[0].Name)
	assert.True(t, doc.Steps[1].Skipped)
}

func TestStatuses(t *testing.T) {
	statuses := []runner.StepStatus{
		{Name: "zshrc", Description: "Deploy .zshrc",
			Check: steps.CheckResult{State: steps.StatePending, Message: "not deployed"}},
		{Name: "rust", Description: "Rust via rustup",
			Check: steps.CheckResult{State: steps.StateInstalled, Message: "~/.cargo exists"}},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatText).Statuses(statuses))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "zshrc")
		assert.Contains(t, lines[0], "not deployed")
		assert.Contains(t, lines[1], "[installed]")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewRenderer(&buf, FormatYAML).Statuses(statuses))

		var docs []struct {
			Name  string `yaml:"name"`
			State string `yaml:"state"`
		}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "missing", docs[0].State)
		assert.Equal(t, "installed", docs[1].State)
	})
}

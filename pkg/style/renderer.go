package style

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/runner"
	"github.com/devinit-cli/devinit/pkg/steps"
)

// Renderer writes run reports and status listings in one format.
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a Renderer. FormatAuto must be resolved with
// DetectFormat before constructing.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return &Renderer{w: w, format: format}
}

func (r *Renderer) color() bool { return r.format == FormatTerminal }

// badge renders the state marker for a step row.
func (r *Renderer) badge(state steps.State) string {
	if r.color() {
		return StateStyle(state).Sprintf(" %-9s ", state.String())
	}
	return fmt.Sprintf("[%-9s]", state.String())
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

// stepStatusDoc is the YAML shape of one status row.
type stepStatusDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	State       string `yaml:"state"`
	Message     string `yaml:"message,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

// Statuses renders the `status` listing.
func (r *Renderer) Statuses(statuses []runner.StepStatus) error {
	if r.format == FormatYAML {
		docs := make([]stepStatusDoc, 0, len(statuses))
		for _, s := range statuses {
			doc := stepStatusDoc{
				Name:        s.Name,
				Description: s.Description,
				State:       s.Check.State.String(),
				Message:     s.Check.Message,
			}
			if s.Err != nil {
				doc.Error = s.Err.Error()
			}
			docs = append(docs, doc)
		}
		return yaml.NewEncoder(r.w).Encode(docs)
	}

	for _, s := range statuses {
		if s.Err != nil {
			r.printf("%s %-12s %s\n", r.errorBadge(), s.Name, s.Err.Error())
			continue
		}
		r.printf("%s %-12s %s\n", r.badge(s.Check.State), s.Name, s.Check.Message)
	}
	return nil
}

func (r *Renderer) errorBadge() string {
	if r.color() {
		return ErrorStyle.Render(fmt.Sprintf(" %-9s ", "error"))
	}
	return fmt.Sprintf("[%-9s]", "error")
}

// stepReportDoc is the YAML shape of one executed step.
type stepReportDoc struct {
	Name       string   `yaml:"name"`
	Skipped    bool     `yaml:"skipped"`
	Operations []string `yaml:"operations,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

// RunReport renders the outcome of an `up` invocation.
func (r *Renderer) RunReport(report *runner.RunReport) error {
	if r.format == FormatYAML {
		return r.runReportYAML(report)
	}

	if report.DryRun {
		r.heading("devinit up (dry run)")
	} else {
		r.heading("devinit up")
	}

	executed, skipped := 0, 0
	for _, step := range report.Steps {
		switch {
		case step.Err != nil:
			r.printf("%s %-12s %s\n", r.errorBadge(), step.Name, step.Err.Error())
		case step.Skipped:
			skipped++
			r.printf("%s %-12s %s\n", r.badge(steps.StateInstalled), step.Name,
				r.muted(step.Check.Message))
		default:
			executed++
			r.printf("%s %-12s %s\n", r.badge(step.Check.State), step.Name, step.Check.Message)
		}

		for _, result := range step.Results {
			marker := "+"
			if result.Skipped {
				marker = "-"
			}
			if result.Error != nil {
				marker = "!"
			}
			r.printf("    %s %s\n", marker, result.Message)
			if result.Error != nil {
				r.printf("      %s\n", r.errorText(result.Error.Error()))
			}
		}
	}

	r.printf("\n")
	if report.Failed() {
		r.printf("%s\n", r.errorText("bootstrap stopped at the first failure"))
	} else {
		r.printf("%d steps executed, %d already satisfied\n", executed, skipped)
	}
	return nil
}

func (r *Renderer) runReportYAML(report *runner.RunReport) error {
	type runDoc struct {
		DryRun bool            `yaml:"dry_run"`
		Failed bool            `yaml:"failed"`
		Steps  []stepReportDoc `yaml:"steps"`
	}

	doc := runDoc{DryRun: report.DryRun, Failed: report.Failed()}
	for _, step := range report.Steps {
		stepDoc := stepReportDoc{Name: step.Name, Skipped: step.Skipped}
		for _, result := range step.Results {
			stepDoc.Operations = append(stepDoc.Operations, result.Message)
		}
		if step.Err != nil {
			stepDoc.Error = step.Err.Error()
		}
		doc.Steps = append(doc.Steps, stepDoc)
	}

	if err := yaml.NewEncoder(r.w).Encode(doc); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	return nil
}

func (r *Renderer) heading(text string) {
	if r.color() {
		r.printf("%s\n\n", TitleStyle.Render(text))
		return
	}
	r.printf("%s\n\n", text)
}

func (r *Renderer) muted(text string) string {
	if r.color() {
		return MutedStyle.Render(text)
	}
	return text
}

func (r *Renderer) errorText(text string) string {
	if r.color() {
		return ErrorStyle.Render(text)
	}
	return text
}

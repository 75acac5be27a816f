package style

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/devinit-cli/devinit/pkg/errors"
)

// Format selects the output rendering of reports and listings.
type Format int

const (
	// FormatAuto picks terminal or text based on the output's capabilities.
	FormatAuto Format = iota

	// FormatTerminal renders with colors and badges.
	FormatTerminal

	// FormatText renders plain text, suitable for pipes and logs.
	FormatText

	// FormatYAML renders machine-readable YAML.
	FormatYAML
)

// String returns the flag value of the format.
func (f Format) String() string {
	switch f {
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat parses a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format: %s", s)
	}
}

// DetectFormat resolves FormatAuto against the actual output stream:
// NO_COLOR, pipes, and colorless terminals all get plain text.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

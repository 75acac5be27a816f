package cli

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/devinit-cli/devinit/pkg/style"
)

//go:embed docs/manual.md
var manual string

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(manual))
			return nil
		},
	}
}

// renderMarkdown renders through glamour when stdout is a capable
// terminal, and falls back to the raw markdown otherwise.
func renderMarkdown(content string) string {
	if style.DetectFormat(os.Stdout) != style.FormatTerminal {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

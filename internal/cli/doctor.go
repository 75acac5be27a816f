package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/steps"
	"github.com/devinit-cli/devinit/pkg/style"
)

// doctorCheck is one row of doctor output.
type doctorCheck struct {
	Name     string
	OK       bool
	Optional bool
	Detail   string
}

// runDoctorChecks probes the environment without changing it.
func runDoctorChecks(stepCtx steps.Context) []doctorCheck {
	var checks []doctorCheck

	if err := stepCtx.Platform.CheckNotRoot(); err != nil {
		checks = append(checks, doctorCheck{Name: "not root", Detail: err.Error()})
	} else {
		checks = append(checks, doctorCheck{Name: "not root", OK: true,
			Detail: "running as a regular user"})
	}

	if pm, err := stepCtx.Platform.DetectPackageManager(); err != nil {
		detail := "need apt or apt-get"
		if found := stepCtx.Platform.DetectAll(); len(found) > 0 {
			detail = fmt.Sprintf("found %v, but none are supported", found)
		}
		checks = append(checks, doctorCheck{Name: "package manager", Detail: detail})
	} else {
		checks = append(checks, doctorCheck{Name: "package manager", OK: true,
			Detail: string(pm)})
	}

	// Tools the bootstrap shells out to. git, curl, and make are also
	// installed by the packages step, so missing here is only a warning.
	checks = append(checks, doctorCheck{Name: "sudo",
		OK: stepCtx.Platform.HasBinary("sudo"), Detail: "required to install packages"})
	for _, tool := range []string{"git", "curl", "make", "docker"} {
		checks = append(checks, doctorCheck{Name: tool, Optional: true,
			OK: stepCtx.Platform.HasBinary(tool)})
	}

	checks = append(checks, doctorCheck{Name: "home directory", OK: true,
		Detail: stepCtx.Paths.HomeDir()})

	if _, err := os.Stat(stepCtx.Paths.ConfigFilePath()); err == nil {
		checks = append(checks, doctorCheck{Name: "config file", OK: true, Optional: true,
			Detail: stepCtx.Paths.ConfigFilePath()})
	} else {
		checks = append(checks, doctorCheck{Name: "config file", OK: true, Optional: true,
			Detail: "none, using built-in defaults"})
	}

	return checks
}

func newDoctorCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: MsgDoctorShort,
		Long:  MsgDoctorLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stepCtx, err := buildStepContext(flags)
			if err != nil {
				return err
			}

			color := false
			if f, ok := cmd.OutOrStdout().(*os.File); ok {
				color = style.DetectFormat(f) == style.FormatTerminal
			}
			failed := 0
			for _, check := range runDoctorChecks(stepCtx) {
				marker := doctorMarker(check, color)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, check.Name, check.Detail)
				if !check.OK && !check.Optional {
					failed++
				}
			}

			if failed > 0 {
				return errors.Newf(errors.ErrInvalidInput,
					"%d required checks failed", failed)
			}
			return nil
		},
	}
}

func doctorMarker(check doctorCheck, color bool) string {
	switch {
	case check.OK:
		if color {
			return style.SuccessStyle.Render("ok  ")
		}
		return "ok  "
	case check.Optional:
		if color {
			return style.WarningStyle.Render("warn")
		}
		return "warn"
	default:
		if color {
			return style.ErrorStyle.Render("fail")
		}
		return "fail"
	}
}

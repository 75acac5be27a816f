package cli

// Message constants for command help text and output.
const (
	MsgRootShort = "Bootstrap a personal development environment"
	MsgRootLong  = `devinit provisions a fresh Debian or Ubuntu machine with a complete
personal development environment: base packages, zsh with oh-my-zsh,
tmux with tpm, neovim built from source with a LazyVim config, and the
Node, Go, and Rust toolchains.

Every step checks whether its target already exists and is skipped when
it does, so devinit is safe to run repeatedly.`

	MsgUpShort = "Run the bootstrap steps"
	MsgUpLong  = `The 'up' command runs the bootstrap checklist in order. Steps whose
targets already exist are skipped; everything else is provisioned.

Existing config files are backed up as <path>.backup.<timestamp> before
being overwritten, unless --no-backup is given.`
	MsgUpExample = `  # Run the full bootstrap
  devinit up

  # Preview what would happen
  devinit up --dry-run

  # Run selected steps only
  devinit up zshrc tmux-conf

  # Overwrite configs without backups
  devinit up --no-backup`

	MsgStatusShort = "Show which bootstrap steps are already satisfied"
	MsgStatusLong  = `Status runs every step's existence check without changing anything and
prints one row per step.`

	MsgDoctorShort = "Check whether this machine can run the bootstrap"
	MsgDoctorLong  = `Doctor verifies the environment prerequisites: not running as root, a
supported package manager on PATH, and the tools the bootstrap itself
needs. It changes nothing.`

	MsgConfigShort     = "Manage the devinit configuration file"
	MsgConfigInitShort = "Write the default configuration file"
	MsgConfigShowShort = "Print the effective configuration"

	MsgDocsShort = "Show the devinit manual"

	MsgContainerShort      = "Run devinit inside a disposable container"
	MsgContainerLong       = `Container wraps docker so the bootstrap can be exercised against a clean
Ubuntu image instead of the host machine.`
	MsgContainerBuildShort = "Build the devinit test container image"
	MsgContainerShellShort = "Open a shell in the test container"

	MsgVersionShort = "Print version information"

	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagNoBackup = "Overwrite existing config files without creating backups"
	MsgFlagOutput   = "Output format: auto, term, text, yaml"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/devinit/devinit.toml)"
)

// Package platform validates the host environment before any step runs:
// the effective user must not be root and a supported package manager
// must be on PATH.
package platform

import (
	"os"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/execx"
)

// PackageManager identifies a detected package manager binary.
type PackageManager string

const (
	Apt    PackageManager = "apt"
	AptGet PackageManager = "apt-get"
	Dnf    PackageManager = "dnf"
	Brew   PackageManager = "brew"
	None   PackageManager = ""
)

// supported lists the package managers `up` can actually drive.
// dnf and brew are detected for doctor reporting only.
var supported = []PackageManager{AptGet, Apt}

// detectable is everything doctor reports on.
var detectable = []PackageManager{AptGet, Apt, Dnf, Brew}

// Checker validates the host environment.
type Checker struct {
	lookPath execx.LookPathFunc
	geteuid  func() int
}

// NewChecker creates a Checker against the real system.
func NewChecker() *Checker {
	return &Checker{lookPath: execx.SystemLookPath, geteuid: os.Geteuid}
}

// NewCheckerWith creates a Checker with injected probes, for tests.
func NewCheckerWith(lookPath execx.LookPathFunc, geteuid func() int) *Checker {
	return &Checker{lookPath: lookPath, geteuid: geteuid}
}

// CheckNotRoot fails when the effective user is root. Running the
// bootstrap as root would chown half the home directory to root and
// break sudo-based package installs.
func (c *Checker) CheckNotRoot() error {
	if c.geteuid() == 0 {
		return errors.New(errors.ErrRootUser,
			"refusing to run as root: run as a regular user with sudo access")
	}
	return nil
}

// DetectPackageManager returns the first supported package manager on
// PATH, preferring apt-get for scriptability.
func (c *Checker) DetectPackageManager() (PackageManager, error) {
	for _, pm := range supported {
		if _, err := c.lookPath(string(pm)); err == nil {
			return pm, nil
		}
	}
	return None, errors.New(errors.ErrPkgMgrNotFound,
		"no supported package manager found: need apt or apt-get")
}

// DetectAll returns every known package manager present on PATH,
// supported or not. Used by doctor for reporting.
func (c *Checker) DetectAll() []PackageManager {
	var found []PackageManager
	for _, pm := range detectable {
		if _, err := c.lookPath(string(pm)); err == nil {
			found = append(found, pm)
		}
	}
	return found
}

// HasBinary reports whether a binary is on PATH.
func (c *Checker) HasBinary(name string) bool {
	_, err := c.lookPath(name)
	return err == nil
}

// Validate runs the fatal pre-flight checks in order: root first so a
// root invocation exits before any other probe.
func (c *Checker) Validate() error {
	if err := c.CheckNotRoot(); err != nil {
		return err
	}
	if _, err := c.DetectPackageManager(); err != nil {
		return err
	}
	return nil
}

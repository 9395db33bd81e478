// Package exitcode defines the process exit codes klet reports.
// The values follow BSD sysexits.h where one applies and form the
// contract with schedulers and monitoring: a scheduler can tell
// "volume not plugged in" (benign) from "configuration broken"
// (needs attention) without parsing log output.
package exitcode

const (
	// OK means every attempted stage succeeded.
	OK = 0
	// Failure is an operational failure from one of the external
	// actions (decrypt-open, mount, unmount).
	Failure = 1
	// Usage is a bad invocation (unknown flag, unexpected argument).
	Usage = 64
	// NoInput means the target volume is not attached. Expected when
	// running unattended on a schedule; not an error.
	NoInput = 66
	// CantCreate means the mount point directory could not be created.
	CantCreate = 73
	// NoPerm means klet is not running with root privileges.
	NoPerm = 77
	// Config means the configuration is invalid, incomplete, or the
	// config source failed to load.
	Config = 78
)

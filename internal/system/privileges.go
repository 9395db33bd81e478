package system

import (
	"fmt"
	"os"
)

// IsRoot checks if running as root
func IsRoot() bool {
	return os.Geteuid() == 0
}

// RequireRoot ensures the program is running as root. Every stage of
// the workflow (device mapping, mount, unmount) needs it, so this is
// checked before anything else.
func RequireRoot() error {
	if !IsRoot() {
		return fmt.Errorf("klet must be run as root (try with sudo)")
	}
	return nil
}

package volume

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/nace/klet/internal/system"
)

// KeySource supplies key material to a cryptsetup invocation
type KeySource interface {
	Apply(cmd *exec.Cmd) error
}

// KeyfileKey unlocks with a key file on disk
type KeyfileKey struct {
	Path string
}

// Apply applies keyfile authentication to a command
func (k KeyfileKey) Apply(cmd *exec.Cmd) error {
	cmd.Args = append(cmd.Args, "--key-file", k.Path)
	return nil
}

// PassphraseKey unlocks with an interactively entered passphrase.
// Caller is responsible for calling Zeroize on the passphrase when done.
type PassphraseKey struct {
	Passphrase *system.SecureBytes
}

// Apply pipes the passphrase to the command's stdin
func (k PassphraseKey) Apply(cmd *exec.Cmd) error {
	if k.Passphrase == nil || k.Passphrase.Len() == 0 {
		return fmt.Errorf("passphrase is empty")
	}
	cmd.Stdin = strings.NewReader(string(k.Passphrase.Bytes()) + "\n")
	return nil
}

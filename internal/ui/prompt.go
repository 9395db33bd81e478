package ui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal. The workflow uses
// this as a capability check at validation time: without a configured
// keyfile and without a terminal, the decrypt stage could never obtain
// key material, so the run is rejected before touching the device.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptPassword prompts for a passphrase without echoing
func PromptPassword(prompt string) ([]byte, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // New line after password input
	if err != nil {
		return nil, err
	}
	return password, nil
}

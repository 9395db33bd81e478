// Package volume wraps the external block-device tooling klet drives:
// cryptsetup for the LUKS mapping, mount/umount for the filesystem,
// and the /dev/disk/by-uuid lookup that locates the volume. The
// Decrypter and Mounter interfaces exist so the workflow's branching
// logic can be tested without root privileges or real devices.
package volume

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/nace/klet/internal/system"
)

// MapperDir is where device mapper exposes open mappings.
const MapperDir = "/dev/mapper"

// Decrypter opens and closes an encrypted mapping on a block device
type Decrypter interface {
	Open(ctx context.Context, device, mapping string, key KeySource) error
	Close(ctx context.Context, mapping string) error
}

// CryptSetup is the real Decrypter, shelling out to cryptsetup
type CryptSetup struct {
	executor *system.Executor
}

// NewCryptSetup creates a cryptsetup-backed Decrypter
func NewCryptSetup(executor *system.Executor) *CryptSetup {
	return &CryptSetup{executor: executor}
}

// Open opens a LUKS mapping on the device
func (c *CryptSetup) Open(ctx context.Context, device, mapping string, key KeySource) error {
	cmd := exec.CommandContext(ctx, "cryptsetup", "luksOpen", device, mapping)
	if err := key.Apply(cmd); err != nil {
		return err
	}
	if _, err := c.executor.RunCmd(cmd); err != nil {
		return fmt.Errorf("failed to open mapping %s on %s: %w", mapping, device, err)
	}
	return nil
}

// Close closes a LUKS mapping
func (c *CryptSetup) Close(ctx context.Context, mapping string) error {
	if err := c.executor.Run(ctx, "cryptsetup", "luksClose", mapping); err != nil {
		return fmt.Errorf("failed to close mapping %s: %w", mapping, err)
	}
	return nil
}

// MappedDevice returns the block device path of an open mapping.
func MappedDevice(mapping string) string {
	return MapperDir + "/" + mapping
}

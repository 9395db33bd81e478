package volume

import (
	"context"
	"fmt"

	"github.com/nace/klet/internal/system"
)

// Mounter attaches and detaches a block device at a mount point
type Mounter interface {
	Mount(ctx context.Context, device, mountPoint string) error
	Unmount(ctx context.Context, mountPoint string) error
}

// SysMount is the real Mounter, shelling out to mount and umount.
// It does not create the mount point; the workflow prepares the
// directory before any device interaction.
type SysMount struct {
	executor *system.Executor
}

// NewSysMount creates a mount-backed Mounter
func NewSysMount(executor *system.Executor) *SysMount {
	return &SysMount{executor: executor}
}

// Mount mounts a device to a mount point
func (m *SysMount) Mount(ctx context.Context, device, mountPoint string) error {
	if err := m.executor.Run(ctx, "mount", device, mountPoint); err != nil {
		return fmt.Errorf("failed to mount %s at %s: %w", device, mountPoint, err)
	}
	return nil
}

// Unmount unmounts a mount point
func (m *SysMount) Unmount(ctx context.Context, mountPoint string) error {
	if err := m.executor.Run(ctx, "umount", mountPoint); err != nil {
		return fmt.Errorf("failed to unmount %s: %w", mountPoint, err)
	}
	return nil
}

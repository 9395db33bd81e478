package volume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ByUUIDDir is the stable by-identifier lookup directory udev maintains.
const ByUUIDDir = "/dev/disk/by-uuid"

// ErrNotAttached means the volume with the given UUID is not currently
// plugged in. For a medium that is only intermittently attached this
// is a routine outcome, not an error.
var ErrNotAttached = errors.New("volume not attached")

// DevicePath returns the stable by-uuid path for a volume
func DevicePath(uuid string) string {
	return filepath.Join(ByUUIDDir, uuid)
}

// ResolveDevice resolves a volume UUID to its current block device
// node. Returns ErrNotAttached when no device with that UUID exists.
func ResolveDevice(uuid string) (string, error) {
	link := DevicePath(uuid)
	device, err := filepath.EvalSymlinks(link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", link, ErrNotAttached)
		}
		return "", fmt.Errorf("failed to resolve %s: %w", link, err)
	}
	return device, nil
}

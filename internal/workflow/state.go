package workflow

// State is the explicit progress marker of a backup run. It records
// the last stage that completed, and teardown unwinds from it
// backward: a run that reached Mounted must be unmounted and closed,
// a run that only reached Decrypted must only be closed.
type State int

const (
	// NotStarted means no device interaction has happened yet.
	NotStarted State = iota
	// DeviceFound means the volume UUID resolved to a block device.
	DeviceFound
	// Decrypted means the LUKS mapping is open.
	Decrypted
	// Mounted means the mapped device is mounted at the mount point.
	Mounted
	// BackupRan means the backup program was invoked to completion,
	// regardless of its own exit status.
	BackupRan
	// Unmounted means the mount point was unmounted again.
	Unmounted
	// Closed means the mapping is closed and the run fully unwound.
	Closed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case DeviceFound:
		return "device-found"
	case Decrypted:
		return "decrypted"
	case Mounted:
		return "mounted"
	case BackupRan:
		return "backup-ran"
	case Unmounted:
		return "unmounted"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Package workflow drives one backup run against the encrypted
// external volume: resolve the device by UUID, open the LUKS mapping,
// mount it, run the backup program, unmount, close. Every exit path
// leaves the system either fully torn down or cleanly untouched; a
// volume that is not attached is a routine outcome, not an error.
//
// Nothing here retries and nothing persists between runs. A failed
// invocation is simply re-run by the scheduler on its next interval.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/nace/klet/internal/backup"
	"github.com/nace/klet/internal/config"
	"github.com/nace/klet/internal/exitcode"
	"github.com/nace/klet/internal/system"
	"github.com/nace/klet/internal/ui"
	"github.com/nace/klet/internal/volume"
)

// DefaultLockDir holds the per-volume advisory lock files.
const DefaultLockDir = "/run/klet"

// Workflow executes the backup sequence for a single configuration.
// The collaborator fields (FS, Resolve, Prompt, Interactive, LockDir)
// default to the real system in New and exist so tests can run the
// branching logic without root privileges or real devices.
type Workflow struct {
	cfg       *config.Config
	decrypter volume.Decrypter
	mounter   volume.Mounter
	runner    backup.Runner
	log       *ui.Logger

	// ExtraArgs are appended to the configured backup arguments.
	ExtraArgs []string

	FS          afero.Fs
	Resolve     func(uuid string) (string, error)
	Prompt      func(prompt string) ([]byte, error)
	Interactive func() bool
	LockDir     string
}

// Result is the outcome of one run: the last state reached, the
// process exit code to report, and the first failure encountered.
type Result struct {
	State State
	Code  int
	Err   error
}

// New creates a workflow wired to the real system
func New(cfg *config.Config, decrypter volume.Decrypter, mounter volume.Mounter, runner backup.Runner, log *ui.Logger) *Workflow {
	return &Workflow{
		cfg:         cfg,
		decrypter:   decrypter,
		mounter:     mounter,
		runner:      runner,
		log:         log,
		FS:          afero.NewOsFs(),
		Resolve:     volume.ResolveDevice,
		Prompt:      ui.PromptPassword,
		Interactive: ui.IsInteractive,
		LockDir:     DefaultLockDir,
	}
}

// Run executes the workflow to completion or to the earliest safe
// stopping point. Completed stages are unwound in reverse order no
// matter where a failure occurs; the final status reflects the first
// failure along the sequence.
func (w *Workflow) Run(ctx context.Context) Result {
	if err := w.cfg.Validate(w.Interactive()); err != nil {
		return Result{State: NotStarted, Code: exitcode.Config, Err: err}
	}

	mapping := volume.MappingName(w.cfg.VolumeUUID)
	mountPoint := w.cfg.MountPoint()

	lock, err := system.AcquireLock(w.LockDir, mapping)
	if err != nil {
		return Result{State: NotStarted, Code: exitcode.Config, Err: err}
	}
	defer lock.Release()

	// The mount point is prepared before the device-existence check:
	// a volume that could never be mounted must not be decrypted.
	if err := w.ensureMountPoint(mountPoint); err != nil {
		return Result{State: NotStarted, Code: exitcode.CantCreate, Err: err}
	}

	device, err := w.Resolve(w.cfg.VolumeUUID)
	if err != nil {
		if errors.Is(err, volume.ErrNotAttached) {
			w.log.Info("volume %s is not attached, nothing to back up", w.cfg.VolumeUUID)
			return Result{State: NotStarted, Code: exitcode.NoInput}
		}
		return Result{State: NotStarted, Code: exitcode.NoInput, Err: err}
	}
	state := DeviceFound
	w.log.Debug("resolved volume %s to %s", w.cfg.VolumeUUID, device)

	key, done, err := w.keySource()
	if err != nil {
		return Result{State: state, Code: exitcode.Failure, Err: err}
	}
	defer done()

	w.log.Info("opening mapping %s on %s", mapping, device)
	if err := w.decrypter.Open(ctx, device, mapping, key); err != nil {
		// Nothing to unwind yet.
		return Result{State: state, Code: exitcode.Failure, Err: err}
	}
	state = Decrypted

	mapped := volume.MappedDevice(mapping)
	w.log.Info("mounting %s at %s", mapped, mountPoint)
	if err := w.mounter.Mount(ctx, mapped, mountPoint); err != nil {
		state, _ = w.teardown(ctx, state, mapping, mountPoint)
		return Result{State: state, Code: exitcode.Failure, Err: err}
	}
	state = Mounted

	w.runBackup(ctx, mountPoint)
	state = BackupRan

	state, err = w.teardown(ctx, state, mapping, mountPoint)
	if err != nil {
		return Result{State: state, Code: exitcode.Failure, Err: err}
	}

	w.log.Success("backup of volume %s finished, volume closed", w.cfg.VolumeUUID)
	return Result{State: state, Code: exitcode.OK}
}

// teardown unwinds completed stages in reverse order: unmount if the
// volume is mounted, then close the mapping if it is open. The mount
// point directory is only removed after a successful unmount. The
// first failure determines the returned error; a close failure never
// overrides an earlier one.
func (w *Workflow) teardown(ctx context.Context, state State, mapping, mountPoint string) (State, error) {
	var firstErr error

	if state >= Mounted {
		if err := w.mounter.Unmount(ctx, mountPoint); err != nil {
			firstErr = err
			w.log.Error("%v", err)
		} else {
			state = Unmounted
			if w.cfg.RemoveMountAfter {
				if err := w.FS.Remove(mountPoint); err != nil {
					w.log.Warning("failed to remove mount point %s: %v", mountPoint, err)
				}
			}
		}
	}

	if state >= Decrypted {
		if err := w.decrypter.Close(ctx, mapping); err != nil {
			w.log.Error("%v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else if state == Unmounted {
			state = Closed
		}
	}

	return state, firstErr
}

// runBackup invokes the backup program synchronously. Its exit status
// is the backup program's own concern: a non-zero exit is logged and
// the workflow proceeds to teardown either way, so the device is never
// left mounted because a backup failed.
func (w *Workflow) runBackup(ctx context.Context, mountPoint string) {
	if w.cfg.BackupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.BackupTimeout)
		defer cancel()
	}

	args := w.cfg.Args(w.ExtraArgs...)
	w.log.Info("running backup against %s: %s %s", mountPoint, w.cfg.BackupProgram, strings.Join(args, " "))
	if err := w.runner.Run(ctx, w.cfg.BackupProgram, args); err != nil {
		w.log.Warning("backup program failed: %v", err)
	}
}

func (w *Workflow) keySource() (volume.KeySource, func(), error) {
	if w.cfg.Keyfile != "" {
		return volume.KeyfileKey{Path: w.cfg.Keyfile}, func() {}, nil
	}

	passphrase, err := w.Prompt(fmt.Sprintf("Passphrase for volume %s", w.cfg.VolumeUUID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	secret := system.NewSecureBytes(passphrase)
	return volume.PassphraseKey{Passphrase: secret}, secret.Zeroize, nil
}

func (w *Workflow) ensureMountPoint(path string) error {
	info, err := w.FS.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("mount point %s exists and is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat mount point %s: %w", path, err)
	}
	if err := w.FS.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create mount point %s: %w", path, err)
	}
	return nil
}

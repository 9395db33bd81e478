// Package config loads and validates the klet configuration file.
//
// Configuration is a plain key-value YAML file. When no path is given
// explicitly the file is searched for at $XDG_CONFIG_HOME/klet/config.yaml
// and then ~/.klet.yaml. Every KLET_* environment variable overrides
// the corresponding file key.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultMountRoot is where mount points are created when the config
// does not name a mount root.
const DefaultMountRoot = "/media"

// Config holds the settings for one backup run. It is built once at
// startup and never mutated afterwards; the workflow receives it by
// value of reference and treats it as read-only.
type Config struct {
	// VolumeUUID identifies the backup volume independent of its
	// current device node (resolved under /dev/disk/by-uuid).
	VolumeUUID string `mapstructure:"volume_uuid"`

	// Keyfile is the path to the LUKS key material. May be empty when
	// an interactive terminal is available to prompt for a passphrase.
	Keyfile string `mapstructure:"keyfile"`

	// MountRoot is the directory under which the mount point is created.
	MountRoot string `mapstructure:"mount_root"`

	// RemoveMountAfter removes the mount point directory after a
	// successful unmount.
	RemoveMountAfter bool `mapstructure:"remove_mount_after"`

	// BackupProgram is the executable invoked against the mounted volume.
	BackupProgram string `mapstructure:"backup_program"`

	// BackupArgs is a whitespace-separated argument string passed to
	// the backup program. No shell quoting is supported.
	BackupArgs string `mapstructure:"backup_args"`

	// BackupTimeout bounds the backup invocation. Zero means no
	// timeout (block until the program exits).
	BackupTimeout time.Duration `mapstructure:"backup_timeout"`
}

// Load reads configuration from the given path, or from the default
// search locations when path is empty. An explicitly given path must
// load; a missing default file is tolerated (validation then rejects
// the empty config).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Every key needs a default registered for environment overrides
	// to reach Unmarshal.
	v.SetDefault("volume_uuid", "")
	v.SetDefault("keyfile", "")
	v.SetDefault("mount_root", DefaultMountRoot)
	v.SetDefault("remove_mount_after", false)
	v.SetDefault("backup_program", "")
	v.SetDefault("backup_args", "")
	v.SetDefault("backup_timeout", time.Duration(0))

	v.SetEnvPrefix("KLET")
	v.AutomaticEnv()

	if path == "" {
		path = defaultConfigPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// defaultConfigPath returns the first existing config file from the
// search order: XDG config directory, then a dotfile in the home
// directory. Empty when neither exists.
func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "klet", "config.yaml")
		if fileExists(p) {
			return p
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".klet.yaml")
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Validate checks the invariants that must hold before any device
// interaction. interactive reports whether a terminal is available to
// prompt for a passphrase at decrypt time.
func (c *Config) Validate(interactive bool) error {
	if c.VolumeUUID == "" {
		return fmt.Errorf("volume_uuid is not configured")
	}
	if c.MountRoot == "" {
		return fmt.Errorf("mount_root is not configured")
	}
	if c.Keyfile == "" && !interactive {
		return fmt.Errorf("no keyfile configured and no terminal available to prompt for a passphrase")
	}
	if c.Keyfile != "" {
		info, err := os.Stat(c.Keyfile)
		if err != nil {
			return fmt.Errorf("keyfile not accessible: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("keyfile must be a regular file: %s", c.Keyfile)
		}
	}
	if c.BackupProgram == "" {
		return fmt.Errorf("backup_program is not configured")
	}
	if c.BackupTimeout < 0 {
		return fmt.Errorf("backup_timeout must not be negative")
	}
	return nil
}

// MountPoint is the directory the decrypted volume is mounted at.
func (c *Config) MountPoint() string {
	return filepath.Join(c.MountRoot, c.VolumeUUID)
}

// Args splits the configured argument string into argv form and
// appends any extra arguments given on the command line.
func (c *Config) Args(extra ...string) []string {
	args := strings.Fields(c.BackupArgs)
	return append(args, extra...)
}

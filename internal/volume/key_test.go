package volume

import (
	"os/exec"
	"reflect"
	"testing"

	"github.com/nace/klet/internal/system"
)

func TestKeyfileKeyApply(t *testing.T) {
	cmd := exec.Command("cryptsetup", "luksOpen", "/dev/sdb1", "klet_abc")
	if err := (KeyfileKey{Path: "/etc/klet/volume.key"}).Apply(cmd); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"cryptsetup", "luksOpen", "/dev/sdb1", "klet_abc", "--key-file", "/etc/klet/volume.key"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("args = %v, want %v", cmd.Args, want)
	}
}

func TestPassphraseKeyApply(t *testing.T) {
	cmd := exec.Command("cryptsetup", "luksOpen", "/dev/sdb1", "klet_abc")
	key := PassphraseKey{Passphrase: system.NewSecureBytes([]byte("hunter2"))}
	if err := key.Apply(cmd); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cmd.Stdin == nil {
		t.Error("stdin not wired to the passphrase")
	}
}

func TestPassphraseKeyApplyEmpty(t *testing.T) {
	cmd := exec.Command("cryptsetup", "luksOpen", "/dev/sdb1", "klet_abc")
	if err := (PassphraseKey{}).Apply(cmd); err == nil {
		t.Error("expected an error for an empty passphrase")
	}
}

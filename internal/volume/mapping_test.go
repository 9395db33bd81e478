package volume

import "testing"

func TestMappingName(t *testing.T) {
	tests := []struct {
		uuid string
		want string
	}{
		{"3f1b9a7e-1c2d-4e5f-8a9b-0c1d2e3f4a5b", "klet_3f1b9a7e_1c2d_4e5f_8a9b_0c1d2e3f4a5b"},
		{"BACKUP.disk", "klet_BACKUP_disk"},
		{"with spaces/slash", "klet_withspacesslash"},
		{"0123-ABCD", "klet_0123_ABCD"},
	}

	for _, tt := range tests {
		if got := MappingName(tt.uuid); got != tt.want {
			t.Errorf("MappingName(%q) = %q, want %q", tt.uuid, got, tt.want)
		}
	}
}

func TestMappedDevice(t *testing.T) {
	if got := MappedDevice("klet_abc"); got != "/dev/mapper/klet_abc" {
		t.Errorf("MappedDevice() = %q", got)
	}
}

func TestDevicePath(t *testing.T) {
	if got := DevicePath("abc-123"); got != "/dev/disk/by-uuid/abc-123" {
		t.Errorf("DevicePath() = %q", got)
	}
}

package telemetry

import "testing"

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		version             string
		major, minor, patch string
	}{
		{"1.2.3", "1", "2", "3"},
		{"v2.0.1", "2", "0", "1"},
		{"1.2.3-beta.1", "1", "2", "3"},
		{"10.20.30", "10", "20", "30"},
		{"1.2", "1", "2", ""},
		{"1", "1", "", ""},
		{"", "", "", ""},
		{"garbage", "", "", ""},
	}

	for _, tt := range tests {
		major, minor, patch := splitVersion(tt.version)
		if major != tt.major || minor != tt.minor || patch != tt.patch {
			t.Errorf("splitVersion(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.version, major, minor, patch, tt.major, tt.minor, tt.patch)
		}
	}
}

package version

import "testing"

func TestGetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "1.4.0"
	if got := GetVersion(); got != "1.4.0" {
		t.Errorf("GetVersion() = %q, want 1.4.0", got)
	}

	version = ""
	if got := GetVersion(); got == "" {
		t.Error("GetVersion() must never be empty")
	}
}

func TestTrimV(t *testing.T) {
	tests := map[string]string{"v1.2.3": "1.2.3", "1.2.3": "1.2.3", "v": "v"}
	for in, want := range tests {
		if got := trimV(in); got != want {
			t.Errorf("trimV(%q) = %q, want %q", in, got, want)
		}
	}
}

package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"double dash", []string{"--version"}, true},
		{"single dash", []string{"-version"}, true},
		{"short form", []string{"-V"}, true},
		{"any position", []string{"-safe", "--version", "-bits", "512"}, true},
		{"no flag", []string{"-bits", "512"}, false},
		{"empty", nil, false},
		{"lowercase v is not a version flag", []string{"-v"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tt.args); got != tt.want {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintVersion(&buf)

	out := buf.String()
	for _, want := range []string{"ctbig", Version, Commit, runtime.Version(), runtime.GOOS} {
		if !strings.Contains(out, want) {
			t.Errorf("version output is missing %q:\n%s", want, out)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()

	info := GetVersionInfo()
	if info.Version != Version || info.Commit != Commit || info.BuildDate != BuildDate {
		t.Errorf("VersionData = %+v, want the build-time variables", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
}

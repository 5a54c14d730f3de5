package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stub(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGet(t *testing.T) {
	vcs := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.2.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name    string
		bi      *debug.BuildInfo
		version string
		want    Info
	}{
		{"no build info", nil, "dev", Info{"dev", "none", "unknown"}},
		{"go install", vcs, "dev", Info{"v0.2.1", "abc123", "2026-01-02T03:04:05Z"}},
		{"ldflags win", vcs, "v1.0.0", Info{"v1.0.0", "abc123", "2026-01-02T03:04:05Z"}},
		{"devel checkout", &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}},
		}, "dev", Info{"dev (dirty)", "none", "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub(t, tt.bi)
			orig := Version
			Version = tt.version
			t.Cleanup(func() { Version = orig })

			if got := Get(); got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	stub(t, nil)
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} dev\n") || !strings.Contains(got, "commit: none") {
		t.Errorf("Template() = %q", got)
	}
}

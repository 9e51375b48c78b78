package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.18",
		Path:      "github.com/carbocation/proptest/cmd/proptest",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-06-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	if info.Commit != "abc123" || info.CommitTime != "2022-06-01T00:00:00Z" || !info.Modified {
		t.Fatalf("Unexpected info: %+v", info)
	}

	if s := info.String(); !strings.Contains(s, "abc123") || !strings.Contains(s, "(modified)") {
		t.Errorf("Unexpected string: %s", s)
	}
}

func TestEmptyInfo(t *testing.T) {
	if s := (Info{}).String(); s != "build information unavailable" {
		t.Errorf("Unexpected string: %s", s)
	}
}

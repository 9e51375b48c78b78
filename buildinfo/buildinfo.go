// Package buildinfo reports the module version and VCS state a binary was
// built from.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

type Info struct {
	Path       string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (i Info) String() string {
	if i.Path == "" {
		return "build information unavailable"
	}

	mod := ""
	if i.Modified {
		mod = " (modified)"
	}

	commit := i.Commit
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf("%s %s built with %s at commit %s %s%s", i.Path, i.Version, i.GoVersion, commit, i.CommitTime, mod)
}

// Get reads the build information embedded in the running binary.
func Get() Info {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) Info {
	out := Info{
		Path:      z.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

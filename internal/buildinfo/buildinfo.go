package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Version, Commit and Date are set at build time via -ldflags. Commit and
// Date fall back to the VCS stamp the go tool embeds.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func vcs() (rev, at string) {
	rev, at = Commit, Date
	if rev != "" && at != "" {
		return rev, at
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return rev, at
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = s.Value
			}
		case "vcs.time":
			if at == "" {
				at = s.Value
			}
		}
	}
	return rev, at
}

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if rev, _ := vcs(); rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		return rev
	}
	return "dev"
}

// String returns the full version line printed by -version.
func String() string {
	var b strings.Builder
	b.WriteString("zemljevid ")
	b.WriteString(Version)
	rev, at := vcs()
	if rev != "" {
		b.WriteString(" (" + rev)
		if at != "" {
			b.WriteString(", " + at)
		}
		b.WriteString(")")
	}
	return b.String()
}

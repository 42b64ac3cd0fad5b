package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags by release builds:
//
//	go build -ldflags "-X github.com/heartmarshall/hanzi-ids/internal/app.Version=1.0.0" ./cmd/idsload
//
// Binaries from `go install` leave them unset; BuildVersion then falls back
// to the module version and VCS stamp recorded by the toolchain.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string printed by `idsload version` and
// logged after config load.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	version, commit, built := resolveVersion(info)
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}

func resolveVersion(info *debug.BuildInfo) (version, commit, built string) {
	version, commit, built = Version, Commit, BuildTime
	if info == nil {
		return version, commit, built
	}

	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" {
				commit = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return version, commit, built
}

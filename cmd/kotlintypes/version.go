package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the binary version: the module version for released builds
// installed through `go install`, otherwise the embedded base version with a
// "devel-" prefix and, when build info carries one, the short VCS revision.
func Version() string {
	base := "devel-" + strings.TrimSpace(embeddedVersion)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return base + "+" + s.Value[:7]
		}
	}
	return base
}

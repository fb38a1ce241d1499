// Package version reports the relbump build version.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/relbump/internal/version.version=1.0.0".
var version = ""

// GetVersion returns the build version, falling back to the module version
// recorded by "go install" and then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return trimV(v)
		}
	}
	return "dev"
}

func trimV(v string) string {
	if len(v) > 1 && v[0] == 'v' {
		return v[1:]
	}
	return v
}

package common

import "strings"

// Version is set via ldflags at build time:
// -ldflags "-X github.com/esengine/eht/internal/common.Version=x.y.z"
var Version = ""

// GetVersion returns the build version, or a dev placeholder when the
// binary was built without ldflags.
func GetVersion() string {
	if Version == "" {
		return "0.0.1-dev"
	}
	return strings.TrimPrefix(Version, "v")
}

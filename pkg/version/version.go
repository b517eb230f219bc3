// Package version reports the devicecollector build.
package version

import "runtime"

// Set with -ldflags "-X github.com/carverauto/devicecollector/pkg/version.version=..."
//
//nolint:gochecknoglobals // ldflags injection
var (
	version = "dev"
	buildID = "dev"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{Version: version, BuildID: buildID, GoVersion: runtime.Version()}
}

func GetVersion() string {
	return version
}

// GetFullVersion returns version with build ID
func GetFullVersion() string {
	return version + " (build: " + buildID + ")"
}

func (i Info) String() string {
	return "devicecollector " + i.Version + " (build: " + i.BuildID + ", " + i.GoVersion + ")"
}

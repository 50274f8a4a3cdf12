package utils

import (
	"runtime/debug"
	"strings"
)

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"
	revisionKey    = "vcs.revision"
	modifiedKey    = "vcs.modified"
	shortRevision  = 12
)

// Version may be set at link time with -ldflags "-X github.com/temirov/collect/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion determines the application version.
// It prefers the link-time Version, then the module version from Go build info,
// then the VCS revision stamped into the binary.
func GetApplicationVersion() string {
	if trimmedVersion := strings.TrimSpace(Version); trimmedVersion != "" {
		return trimmedVersion
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return versionFromSettings(buildInfo.Settings)
}

// versionFromSettings derives a version string from VCS build settings.
func versionFromSettings(settings []debug.BuildSetting) string {
	var revision string
	var modified bool
	for _, setting := range settings {
		switch setting.Key {
		case revisionKey:
			revision = setting.Value
		case modifiedKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevision {
		revision = revision[:shortRevision]
	}
	if modified {
		return revision + "-dirty"
	}
	return revision
}

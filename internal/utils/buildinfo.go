// Package utils provides helper functions shared across the dirpack tool.
package utils

import "runtime/debug"

const (
	unknownVersion = "unknown"
	develVersion   = "(devel)"

	vcsRevisionSettingKey = "vcs.revision"
	vcsModifiedSettingKey = "vcs.modified"

	shortRevisionLength = 12
	dirtySuffix         = "-dirty"
)

// GetApplicationVersion reports the version stamped into the binary: the
// module version for released builds, or the embedded VCS revision for source
// builds, suffixed when the working tree was modified.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	var revision string
	var treeModified bool
	for _, buildSetting := range buildInfo.Settings {
		switch buildSetting.Key {
		case vcsRevisionSettingKey:
			revision = buildSetting.Value
		case vcsModifiedSettingKey:
			treeModified = buildSetting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if treeModified {
		revision += dirtySuffix
	}
	return revision
}

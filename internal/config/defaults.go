// Package config handles taskdeck configuration.
package config

const (
	// DefaultDir is the default taskdeck directory name.
	DefaultDir = ".taskdeck"

	// ConfigFileName is the name of the config file within the taskdeck directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// DefaultFormat is the storage encoding used when none is configured.
	DefaultFormat = "json"

	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "medium"
)

package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureJSON generates MarshalJSON on implementation types, keyed by
	// column name.
	FeatureJSON = Feature{
		Name:        "json",
		Stage:       Stable,
		Default:     true,
		Description: "Generates JSON encoding of implementation types keyed by column name",
	}

	// FeatureInboundFinders generates a finder on the manager of a table for
	// every foreign key of the same schema that references the table.
	FeatureInboundFinders = Feature{
		Name:        "inbound",
		Stage:       Beta,
		Default:     false,
		Description: "Generates manager finders for foreign keys referencing the table",
	}

	// FeatureManifest records the generated files and their digests in a
	// manifest, and removes files a previous run generated but this one did not.
	FeatureManifest = Feature{
		Name:        "manifest",
		Stage:       Alpha,
		Default:     false,
		Description: "Tracks generated files in " + ManifestFile + " and removes stale ones",
		cleanup: func(c *Config) error {
			return remove(c.Target, ManifestFile)
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureJSON,
		FeatureInboundFinders,
		FeatureManifest,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and their output is not expected to change.
	Beta

	// Stable features have been in use for a while.
	Stable
)

// String returns the lower case name of the stage.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}

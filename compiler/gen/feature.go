package gen

import "fmt"

var (
	// FeatureNullableFilters splits the filter of a scalar type into a
	// "{Scalar}Filter" for required fields and a "Nullable{Scalar}Filter" for
	// nullable ones, matching the layout of older Prisma-based generators.
	FeatureNullableFilters = Feature{
		Name:        "filters/nullable",
		Stage:       Stable,
		Default:     false,
		Description: "Generates a separate Nullable{Scalar}Filter input for nullable scalar fields",
	}

	// FeatureAggregates generates the Aggregate{Entity} outputs and the
	// aggregate query on every CRUD resolver.
	FeatureAggregates = Feature{
		Name:        "outputs/aggregate",
		Stage:       Stable,
		Default:     true,
		Description: "Generates Aggregate{Entity} outputs and aggregate queries",
	}

	// FeatureRelationResolvers generates the field resolvers (and list
	// arguments) for relation fields.
	FeatureRelationResolvers = Feature{
		Name:        "resolvers/relations",
		Stage:       Stable,
		Default:     true,
		Description: "Generates relation resolvers and their list-relation arguments",
	}

	// FeatureCleanStale guides the writer to delete files that were written
	// by a previous run but are no longer part of the generated tree.
	FeatureCleanStale = Feature{
		Name:        "writer/clean",
		Stage:       Beta,
		Default:     true,
		Description: "Deletes stale files recorded in the manifest of a previous run",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureNullableFilters,
		FeatureAggregates,
		FeatureRelationResolvers,
		FeatureCleanStale,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but breaking changes to their output are expected.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String returns the name of the stage.
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

// A Feature of the generator.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, error) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, nil
		}
	}
	return Feature{}, fmt.Errorf("unknown feature %q", name)
}

// FeatureEnabled reports if the given feature name is enabled. Explicitly
// enabled features win over disabled ones, and both over the default.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	f, err := FeatureByName(name)
	if err != nil {
		return false, err
	}
	for i := range c.Features {
		if c.Features[i].Name == name {
			return true, nil
		}
	}
	for _, d := range c.Disabled {
		if d == name {
			return false, nil
		}
	}
	return f.Default, nil
}

// featureEnabled is like FeatureEnabled for a known feature.
func (c *Config) featureEnabled(f Feature) bool {
	enabled, _ := c.FeatureEnabled(f.Name)
	return enabled
}

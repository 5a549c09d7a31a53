package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/contrib/graphql"
)

// Settings holds the crudgen.yaml configuration.
type Settings struct {
	Schema    string   `mapstructure:"schema"`
	Output    string   `mapstructure:"output"`
	Header    string   `mapstructure:"header"`
	Features  []string `mapstructure:"features"`
	Disable   []string `mapstructure:"disable"`
	Workers   int      `mapstructure:"workers"`
	IndexName string   `mapstructure:"index_name"`
	Extension string   `mapstructure:"extension"`
	// SDL is the file name of the GraphQL schema artifact. Empty disables
	// the GraphQL extension.
	SDL string `mapstructure:"sdl"`
	// GQLGenConfig is the path of an existing gqlgen.yml used as the base
	// of the generated one.
	GQLGenConfig string `mapstructure:"gqlgen_config"`
	// ModelPackage is bound by the generated gqlgen.yml.
	ModelPackage string `mapstructure:"model_package"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"schema":        "schema",
	"output":        "output",
	"header":        "header",
	"feature":       "features",
	"disable":       "disable",
	"workers":       "workers",
	"sdl":           "sdl",
	"gqlgen-config": "gqlgen_config",
}

// settingKeys lists every configuration key. AutomaticEnv only consults
// keys viper already knows, so each one is bound to its CRUDGEN_* variable.
var settingKeys = []string{
	"schema", "output", "header", "features", "disable", "workers",
	"index_name", "extension", "sdl", "gqlgen_config", "model_package",
}

// addGenerateFlags registers the flags shared by generate and watch.
func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("schema", "s", "", "Schema document (YAML or JSON)")
	f.StringP("output", "o", "", "Output directory")
	f.String("header", "", "Header comment of the generated files")
	f.StringSlice("feature", nil, "Enable features (e.g. filters/nullable)")
	f.StringSlice("disable", nil, "Disable default features (e.g. writer/clean)")
	f.Int("workers", 0, "Number of files written in parallel (0 = GOMAXPROCS)")
	f.String("sdl", "", "Also emit a GraphQL SDL document with this file name")
	f.String("gqlgen-config", "", "Base gqlgen.yml for the generated gqlgen config")
}

// loadSettings reads the settings: defaults, then the config file, then
// CRUDGEN_* environment variables, then the flags set on cmd.
func loadSettings(cmd *cobra.Command) (*Settings, error) {
	v := viper.New()
	v.SetDefault("schema", "schema.yaml")
	v.SetDefault("output", "generated")
	v.SetDefault("workers", 0)

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("crudgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("CRUDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for _, key := range settingKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %q: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	for name, key := range flagKeys {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("bind flag %q: %w", name, err)
			}
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch {
	case s.Schema == "":
		return gen.NewConfigError("schema", s.Schema, "missing schema document")
	case s.Output == "":
		return gen.NewConfigError("output", s.Output, "missing output directory")
	case s.Workers < 0:
		return gen.NewConfigError("workers", s.Workers, "must not be negative")
	}
	return nil
}

// Config returns the generator configuration.
func (s *Settings) Config(log *zap.Logger) (*gen.Config, error) {
	opts := []gen.Option{
		gen.WithSchema(s.Schema),
		gen.WithTarget(s.Output),
		gen.WithLogger(log),
		gen.WithWorkers(s.Workers),
	}
	if s.Header != "" {
		opts = append(opts, gen.WithHeader(s.Header))
	}
	if len(s.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(s.Features...))
	}
	if len(s.Disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(s.Disable...))
	}
	if s.IndexName != "" {
		opts = append(opts, gen.WithIndexName(s.IndexName))
	}
	if s.Extension != "" {
		opts = append(opts, gen.WithExtension(s.Extension))
	}
	return gen.NewConfig(opts...)
}

// Extensions returns the extensions enabled by the settings.
func (s *Settings) Extensions() ([]gen.Extension, error) {
	if s.SDL == "" {
		return nil, nil
	}
	opts := []graphql.ExtensionOption{graphql.WithSchemaPath(s.SDL)}
	if s.GQLGenConfig != "" {
		opts = append(opts, graphql.WithConfigPath(s.GQLGenConfig))
	}
	if s.ModelPackage != "" {
		opts = append(opts, graphql.WithModelPackage(s.ModelPackage))
	}
	ex, err := graphql.NewExtension(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating graphql extension: %w", err)
	}
	return []gen.Extension{ex}, nil
}

// newLogger builds the CLI logger.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

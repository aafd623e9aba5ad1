package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/grant-matcher/internal/drafting"
	"github.com/spigell/grant-matcher/internal/filtering"
	"github.com/spigell/grant-matcher/internal/sources"
)

const (
	app       = "grant-matcher"
	envPrefix = "GRANT_MATCHER"
)

type Config struct {
	Output  string                        `mapstructure:"output"`
	Dataset string                        `mapstructure:"dataset"`
	Source  string                        `mapstructure:"source"`
	Format  string                        `mapstructure:"format"`
	Max     int                           `mapstructure:"max"`
	Filter  filtering.Options             `mapstructure:"filter"`
	Feeds   map[string]sources.FeedConfig `mapstructure:"feeds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "grant-matcher matches organizations to funding opportunities and drafts proposals",
		Long: `grant-matcher scores every organization against every funding opportunity
by theme, region and mission overlap, ranks the pairs and writes proposal drafts
for the best of them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if viper.GetBool("demo") {
				return runDemo(cmd)
			}
			return cmd.Help()
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is grant-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", "output", "directory to store drafted proposals")
	rootCmd.PersistentFlags().String("dataset", "", "TOML dataset with organizations and opportunities (default is the built-in demo data)")
	rootCmd.Flags().Bool("demo", false, "run the full demo pipeline: list organizations, fetch demo opportunities, align and write drafts")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))
	viper.BindPFlag("demo", rootCmd.Flags().Lookup("demo"))

	viper.SetDefault("source", sources.DemoName)
	viper.SetDefault("format", drafting.FormatMarkdown)
	viper.SetDefault("max", drafting.DefaultBatchSize)
	viper.SetDefault("filter.min-score", 0.0)
	viper.SetDefault("filter.region-only", false)
	viper.SetDefault("filter.theme", "")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// initConfig reads the config file. An explicit --config must exist, the default
// grant-matcher.yaml in the current directory is optional. The default path is
// resolved on every execution, not at program start.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return viper.ReadInConfig()
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	viper.SetConfigFile(filepath.Join(cwd, app+".yaml"))

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// getConfig unmarshals the config and applies flags explicitly set on cmd. Command
// flags share names with config keys.
func getConfig(cmd *cobra.Command) (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		config.Source, _ = flags.GetString("source")
	}
	if flags.Changed("format") {
		config.Format, _ = flags.GetString("format")
	}
	if flags.Changed("max") {
		config.Max, _ = flags.GetInt("max")
	}
	if flags.Changed("min-score") {
		config.Filter.MinScore, _ = flags.GetFloat64("min-score")
	}
	if flags.Changed("region-only") {
		config.Filter.RequireRegionMatch, _ = flags.GetBool("region-only")
	}
	if flags.Changed("theme") {
		config.Filter.RequiredTheme, _ = flags.GetString("theme")
	}

	return config, nil
}

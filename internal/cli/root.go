// Package cli provides the hph command: render components from the
// terminal, inspect the catalog and fixtures, and manage listing data.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	applicationName = "hph"
	version         = "1.0.0"
	configName      = ".hph"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   applicationName,
	Short: "Happy Place component toolkit",
	Long: `hph renders Happy Place components outside the site.

Render any registered component from a props file or --set flags, list the
component catalog and preview fixtures, and seed or inspect listing data.
Commands read the local database unless a server is configured.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Error(rootCmd.ErrOrStderr(), "%v", err)
	}
	return err
}

// Root returns the root command, for tests and embedding.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hph.yaml)")
	flags.StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.String("database", "happyplace.db", "sqlite database path")
	flags.String("server", "", "base URL of a running site; when set, data comes from its API")
	flags.String("preview-dir", "previews", "directory holding component fixtures")
	flags.String("mapbox-token", "", "Mapbox access token for map components")

	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("database", flags.Lookup("database"))
	_ = viper.BindPFlag("server", flags.Lookup("server"))
	_ = viper.BindPFlag("preview_dir", flags.Lookup("preview-dir"))
	_ = viper.BindPFlag("mapbox_access_token", flags.Lookup("mapbox-token"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix("HPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	if cfgFile != "" {
		absPath, err := filepath.Abs(cfgFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve absolute path for config file: %w", err)
		}
		return absPath, nil
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, configName+".yaml"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: both UserHomeDir and UserConfigDir failed")
	}

	return filepath.Join(configDir, configName+".yaml"), nil
}

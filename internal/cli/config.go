package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings are the effective CLI settings after flags, HPH_* variables and
// the config file are applied.
type Settings struct {
	Database    string `json:"database" yaml:"database"`
	Server      string `json:"server,omitempty" yaml:"server,omitempty"`
	PreviewDir  string `json:"preview_dir" yaml:"preview_dir"`
	MapboxToken string `json:"mapbox_access_token,omitempty" yaml:"mapbox_access_token,omitempty"`
	Output      string `json:"output" yaml:"output"`
}

// CurrentSettings reads the settings from viper.
func CurrentSettings() Settings {
	return Settings{
		Database:    viper.GetString("database"),
		Server:      strings.TrimRight(viper.GetString("server"), "/"),
		PreviewDir:  viper.GetString("preview_dir"),
		MapboxToken: viper.GetString("mapbox_access_token"),
		Output:      viper.GetString("output"),
	}
}

// masked hides the token when settings are printed.
func (s Settings) masked() Settings {
	if s.MapboxToken != "" {
		s.MapboxToken = "***masked***"
	}
	return s
}

// validateConfigPath validates that the config path is safe
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid config path: path traversal not allowed")
	}

	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("invalid config path: must be absolute path")
	}

	return nil
}

// SaveSettings writes s to the config file, refusing to overwrite an
// existing file unless force is set.
func SaveSettings(s Settings, force bool) (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}

	if validateErr := validateConfigPath(configPath); validateErr != nil {
		return "", fmt.Errorf("config path validation failed: %w", validateErr)
	}

	if _, statErr := os.Stat(configPath); statErr == nil && !force {
		return "", fmt.Errorf("config file %s already exists (use --force to overwrite)", configPath)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(configPath), 0750); mkdirErr != nil {
		return "", fmt.Errorf("failed to create config directory: %w", mkdirErr)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printSettings(cmd.OutOrStdout(), CurrentSettings().masked(), outputFormat)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := SaveSettings(CurrentSettings(), force)
		if err != nil {
			return err
		}
		Success(cmd.OutOrStdout(), "Wrote %s", path)
		return nil
	},
}

func printSettings(w io.Writer, s Settings, format string) error {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, formatYML:
		return printData(w, s, format)
	}
	t := newTable(w)
	t.AppendHeader(rowOf("Setting", "Value"))
	t.AppendRow(rowOf("database", s.Database))
	t.AppendRow(rowOf("server", orDash(s.Server)))
	t.AppendRow(rowOf("preview_dir", s.PreviewDir))
	t.AppendRow(rowOf("mapbox_access_token", orDash(s.MapboxToken)))
	t.AppendRow(rowOf("output", s.Output))
	t.Render()
	return nil
}

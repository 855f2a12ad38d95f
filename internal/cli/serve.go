package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/happyplace/internal/config"
	"github.com/ericfisherdev/happyplace/internal/logger"
	"github.com/ericfisherdev/happyplace/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the listings site",
	Long: `Run the HTTP server against the local database.

Settings come from the CLI config and flags; server-only keys such as
REDIS_ADDR or LOG_LEVEL are read from the environment and .env files as
cmd/server does.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		port, _ := cmd.Flags().GetString("port")
		devPreview, _ := cmd.Flags().GetBool("preview")

		for key, value := range serveEnv(CurrentSettings(), port, devPreview) {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", key, err)
			}
		}
		if err := config.AutoLoadEnv("."); err != nil {
			return fmt.Errorf("failed to load env files: %w", err)
		}
		cfg := config.NewConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLog, err := logger.New(logger.Options{
			Level:         cfg.GetLogLevel(),
			HumanReadable: true,
			Writer:        cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		Info(cmd.ErrOrStderr(), "Serving on http://localhost:%s", cfg.GetServerPort())
		return server.Run(ctx, cfg, appLog)
	},
}

// serveEnv maps CLI settings onto the server's environment keys. Empty
// settings are left to the environment.
func serveEnv(s Settings, port string, devPreview bool) map[string]string {
	env := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			env[key] = value
		}
	}
	set("SERVER_PORT", port)
	set("DATABASE_URL", s.Database)
	set("PREVIEW_DIR", s.PreviewDir)
	set("MAPBOX_ACCESS_TOKEN", s.MapboxToken)
	if devPreview {
		env["PREVIEW_ENABLED"] = "true"
	}
	if verbose {
		env["LOG_LEVEL"] = "debug"
	}
	return env
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "", "port to listen on (default from SERVER_PORT or 8080)")
	serveCmd.Flags().Bool("preview", false, "enable the component preview and live reload")
}

// Package cli contains the lectorctl commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serverURL  string
	jsonOutput bool
	timeout    time.Duration
	noColor    bool
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "lectorctl",
	Short: "Operations CLI for a running lector server",
	Long: `lectorctl drives the server's operational endpoints: health probes,
ad hoc job triggers and feed inventory.

Internal calls are signed with a short-lived service token derived from
SERVICE_TOKEN_SECRET, which must match the server's.

Example usage:
  lectorctl health                      # Probe /v1/health
  lectorctl jobs trigger refresh-cycle  # Kick off a refresh cycle
  lectorctl jobs status <id>            # Poll a job record
  lectorctl feeds list                  # List known feeds`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// initConfig layers ~/.lectorctl.yaml under flags and environment.
func initConfig() error {
	viper.SetConfigName(".lectorctl")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9000", "server base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	viper.SetEnvPrefix("lectorctl")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindEnv("service_token_secret", "SERVICE_TOKEN_SECRET")
}

func newClient() *Client {
	base := viper.GetString("server")
	if base == "" {
		base = serverURL
	}
	return NewClient(base, viper.GetString("service_token_secret"), timeout)
}

func newPrinter() *Printer {
	return NewPrinter(!noColor)
}

package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the server's health endpoint",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	report, err := newClient().Health(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printer := newPrinter()
	table := NewTable([]string{"CHECK", "STATE"})
	for name, state := range report.Checks {
		table.AddRow([]string{name, state})
	}
	table.Render()

	if report.Status == "healthy" {
		printer.Success("server is healthy")
	} else {
		printer.Warning("server is %s", printer.StatusBadge(report.Status))
	}
	return nil
}

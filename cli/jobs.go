package cli

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lector/domain"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Trigger and inspect background jobs",
}

var jobsTriggerCmd = &cobra.Command{
	Use:   "trigger <type>",
	Short: "Enqueue an ad hoc job",
	Long: `Enqueue one of the operator-triggerable job types:

  refresh-cycle    fetch every due feed
  cleanup          deactivate orphaned feeds
  auto-mark-read   apply per-user auto-read policies`,
	Args: cobra.ExactArgs(1),
	RunE: runJobsTrigger,
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show one job's status record",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsStatus,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsTriggerCmd)
	jobsCmd.AddCommand(jobsStatusCmd)
}

func runJobsTrigger(cmd *cobra.Command, args []string) error {
	record, err := newClient().TriggerJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(record)
	}

	printer := newPrinter()
	printer.Success("job accepted")
	printJobTable(record)
	return nil
}

func runJobsStatus(cmd *cobra.Command, args []string) error {
	record, err := newClient().JobStatus(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(record)
	}

	printJobTable(record)
	return nil
}

func printJobTable(record *domain.JobRecord) {
	printer := newPrinter()

	table := NewTable([]string{"FIELD", "VALUE"})
	table.AddRow([]string{"id", record.ID.String()})
	table.AddRow([]string{"type", string(record.Type)})
	table.AddRow([]string{"status", printer.StatusBadge(string(record.Status))})
	table.AddRow([]string{"tries", strconv.Itoa(record.Tries)})
	table.AddRow([]string{"created", record.CreatedAt.Format(time.RFC3339)})
	if record.CompletedAt != nil {
		table.AddRow([]string{"completed", record.CompletedAt.Format(time.RFC3339)})
	}
	if record.Error != "" {
		table.AddRow([]string{"error", record.Error})
	}
	table.Render()
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

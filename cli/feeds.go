package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Inspect the shared feed inventory",
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known feeds with health state",
	Args:  cobra.NoArgs,
	RunE:  runFeedsList,
}

func init() {
	rootCmd.AddCommand(feedsCmd)
	feedsCmd.AddCommand(feedsListCmd)

	feedsListCmd.Flags().Int("limit", 50, "maximum feeds to list")
	feedsListCmd.Flags().Int("offset", 0, "listing offset")
}

func runFeedsList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	feeds, err := newClient().ListFeeds(cmd.Context(), limit, offset)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(feeds)
	}

	printer := newPrinter()
	if len(feeds) == 0 {
		printer.Info("no feeds")
		return nil
	}

	now := time.Now()
	table := NewTable([]string{"ID", "TITLE", "HEALTH", "ERRORS", "LAST FETCH"})
	for _, feed := range feeds {
		lastFetch := "-"
		if feed.LastFetchedAt != nil {
			lastFetch = feed.LastFetchedAt.Format(time.RFC3339)
		}
		table.AddRow([]string{
			feed.ID.String(),
			feed.Title,
			printer.StatusBadge(string(feed.Health(now))),
			strconv.Itoa(feed.ErrorCount),
			lastFetch,
		})
	}
	table.Render()

	printer.Info("Total: %d feed(s)", len(feeds))
	return nil
}

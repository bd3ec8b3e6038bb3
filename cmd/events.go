package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivmanto/site/internal/telemetry"
)

var (
	eventsName  string
	eventsPage  string
	eventsSince string
	eventsLimit int
	eventsJSON  bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the stored analytics events",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored events, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		filter := telemetry.QueryFilter{Name: eventsName, PagePath: eventsPage, Limit: eventsLimit}
		if eventsSince != "" {
			since, err := telemetry.ParseSince(eventsSince, time.Now())
			if err != nil {
				return err
			}
			filter.Since = &since
		}

		events, err := telemetry.NewStore(database).List(cmd.Context(), filter)
		if err != nil {
			return err
		}

		if eventsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tEVENT\tPAGE\tCLIENT")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format(time.DateTime), e.Name, e.Param("page_path"), e.Param("client_id"))
		}
		return w.Flush()
	},
}

var eventsPruneCmd = &cobra.Command{
	Use:   "prune <age>",
	Short: "Delete events older than the given age (e.g. 720h)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		age, err := time.ParseDuration(args[0])
		if err != nil || age <= 0 {
			return fmt.Errorf("invalid age %q: must be a positive duration", args[0])
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := telemetry.NewStore(database).DeleteBefore(cmd.Context(), time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d events\n", n)
		return nil
	},
}

func init() {
	eventsListCmd.Flags().StringVar(&eventsName, "name", "", "only events with this name")
	eventsListCmd.Flags().StringVar(&eventsPage, "page", "", "only events for this page path")
	eventsListCmd.Flags().StringVar(&eventsSince, "since", "", "only events after this time (duration like 24h, or RFC 3339)")
	eventsListCmd.Flags().IntVar(&eventsLimit, "limit", 50, "maximum number of events")
	eventsListCmd.Flags().BoolVar(&eventsJSON, "json", false, "print events as JSON")
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsPruneCmd)
	rootCmd.AddCommand(eventsCmd)
}

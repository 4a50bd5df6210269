package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/newthinker/finquant/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	publishCalendars []string
	publishFrom      int
	publishTo        int
	publishFormat    string
	publishSkip      bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Write yearly calendar snapshots to storage",
	Long: `Publish evaluates every date of each year in the range and writes one
snapshot per calendar and year to the configured storage backend.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringSliceVar(&publishCalendars, "calendars", nil, "calendars to publish (default from config)")
	publishCmd.Flags().IntVar(&publishFrom, "from", 0, "first year (default from config)")
	publishCmd.Flags().IntVar(&publishTo, "to", 0, "last year (default from config)")
	publishCmd.Flags().StringVar(&publishFormat, "format", "", "csv or json (default from config)")
	publishCmd.Flags().BoolVar(&publishSkip, "skip-existing", false, "leave snapshots already in storage untouched")
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withApp(func(a *app.App, log *zap.Logger) error {
		written, err := a.Publish(ctx, app.PublishOptions{
			Calendars: publishCalendars,
			FromYear:  publishFrom,
			ToYear:    publishTo,
			Format:    publishFormat,

			SkipExisting: publishSkip,
		})

		names := make([]string, 0, len(written))
		for name := range written {
			names = append(names, name)
		}
		sort.Strings(names)
		out := cmd.OutOrStdout()
		for _, name := range names {
			fmt.Fprintf(out, "%s: %d snapshots\n", name, len(written[name]))
		}
		return err
	})
}

package main

import (
	"fmt"
	"strconv"

	"github.com/newthinker/finquant/internal/app"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/publish"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotFormat string

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect published calendar snapshots",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list [CALENDAR...]",
	Short: "List stored snapshot keys (default: every registered calendar)",
	RunE:  runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show CALENDAR YEAR",
	Short: "Print a stored snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotsShow,
}

var snapshotsRmCmd = &cobra.Command{
	Use:   "rm CALENDAR YEAR",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotsRm,
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsShowCmd, snapshotsRmCmd)

	for _, c := range []*cobra.Command{snapshotsShowCmd, snapshotsRmCmd} {
		c.Flags().StringVar(&snapshotFormat, "format", "", "csv or json (default from config)")
	}
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		p, err := a.Snapshots()
		if err != nil {
			return err
		}
		names := args
		if len(names) == 0 {
			names = a.Calendars().Names()
		}
		out := cmd.OutOrStdout()
		for _, name := range names {
			keys, err := p.Stored(cmd.Context(), name)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
		}
		return nil
	})
}

// snapshotArgs parses CALENDAR YEAR and the format flag.
func snapshotArgs(a *app.App, args []string) (string, int, publish.Format, error) {
	year, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, "", core.WrapError(core.ErrInvalidDate, fmt.Errorf("invalid year %q", args[1]))
	}
	raw := snapshotFormat
	if raw == "" {
		raw = a.PublishFormat()
	}
	format, err := publish.ParseFormat(raw)
	if err != nil {
		return "", 0, "", err
	}
	return args[0], year, format, nil
}

func runSnapshotsShow(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		name, year, format, err := snapshotArgs(a, args)
		if err != nil {
			return err
		}
		p, err := a.Snapshots()
		if err != nil {
			return err
		}
		data, err := p.Fetch(cmd.Context(), name, year, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	})
}

func runSnapshotsRm(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		name, year, format, err := snapshotArgs(a, args)
		if err != nil {
			return err
		}
		p, err := a.Snapshots()
		if err != nil {
			return err
		}
		if err := p.Remove(cmd.Context(), name, year, format); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", publish.Key(name, year, format))
		return nil
	})
}

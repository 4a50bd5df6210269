package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/app"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/daycount"
	"github.com/newthinker/finquant/internal/fx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var calendarName string

var bizdayCmd = &cobra.Command{
	Use:   "bizday DATE...",
	Short: "Check whether dates are business days",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBizday,
}

var holidaysCmd = &cobra.Command{
	Use:   "holidays YEAR",
	Short: "List the weekday holidays of a year",
	Args:  cobra.ExactArgs(1),
	RunE:  runHolidays,
}

var yearfracCmd = &cobra.Command{
	Use:   "yearfrac CONVENTION START END",
	Short: "Compute the day count and year fraction between two dates",
	Args:  cobra.ExactArgs(3),
	RunE:  runYearfrac,
}

var pairCmd = &cobra.Command{
	Use:   "pair [PAIR...]",
	Short: "Show FX pair conventions",
	RunE:  runPair,
}

func init() {
	rootCmd.AddCommand(bizdayCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(yearfracCmd)
	rootCmd.AddCommand(pairCmd)

	for _, c := range []*cobra.Command{bizdayCmd, holidaysCmd} {
		c.Flags().StringVar(&calendarName, "calendar", "", "calendar name (default from config)")
	}
}

func parseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, core.WrapError(core.ErrInvalidDate, err)
	}
	return d, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runBizday(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		name, c, err := a.Calendar(calendarName)
		if err != nil {
			return err
		}

		dates := make([]civil.Date, 0, len(args))
		for _, arg := range args {
			d, err := parseDate(arg)
			if err != nil {
				return err
			}
			dates = append(dates, d)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tWEEKDAY\tBUSINESS DAY\tCOVERED\t")
		fmt.Fprintln(w, "----\t-------\t------------\t-------\t")
		for _, d := range dates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				d, d.In(time.UTC).Weekday(), yesNo(c.IsBusinessDay(d)), yesNo(calendar.Covers(c, d.Year)))
		}
		w.Flush()

		log.Debug("business days checked", zap.String("calendar", name), zap.Int("count", len(dates)))
		return nil
	})
}

func runHolidays(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return core.WrapError(core.ErrInvalidDate, fmt.Errorf("invalid year %q", args[0]))
	}

	return withApp(func(a *app.App, log *zap.Logger) error {
		name, c, err := a.Calendar(calendarName)
		if err != nil {
			return err
		}
		if !calendar.Covers(c, year) {
			log.Warn("year outside holiday table, weekend and fixed holidays only",
				zap.String("calendar", name), zap.Int("year", year))
		}

		holidays := calendar.Holidays(c, year)
		out := cmd.OutOrStdout()
		if len(holidays) == 0 {
			fmt.Fprintf(out, "No weekday holidays in %d for %s.\n", year, name)
			return nil
		}
		for _, d := range holidays {
			fmt.Fprintf(out, "%s  %s\n", d, d.In(time.UTC).Weekday())
		}
		return nil
	})
}

func runYearfrac(cmd *cobra.Command, args []string) error {
	dc, err := daycount.Parse(args[0])
	if err != nil {
		return err
	}
	start, err := parseDate(args[1])
	if err != nil {
		return err
	}
	end, err := parseDate(args[2])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Convention:    %s\n", dc.Name())
	fmt.Fprintf(out, "Days:          %d\n", dc.DayCount(start, end))
	fmt.Fprintf(out, "Year fraction: %.10f\n", dc.YearFraction(start, end))
	return nil
}

func runPair(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		pairs := a.Pairs()
		if len(args) > 0 {
			pairs = make([]fx.Underlying, 0, len(args))
			for _, arg := range args {
				u, err := fx.ParseUnderlying(arg)
				if err != nil {
					return err
				}
				pairs = append(pairs, u)
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PAIR\tFOREIGN\tDOMESTIC\tDAY COUNT\tSETTLE\tCUTOFF\t")
		fmt.Fprintln(w, "----\t-------\t--------\t---------\t------\t------\t")
		for _, u := range pairs {
			c := u.Conventions()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\tT+%d\t%s\t\n",
				c.Pair, c.Foreign, c.Domestic, c.DayCount, c.SettleDays, c.Cutoff)
		}
		w.Flush()
		return nil
	})
}

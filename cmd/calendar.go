package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/calendar"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month with per-day markers",
	Long: `Shows a Sunday-first month grid. Each day lists up to three markers
per category: E exercise, S SVT episode, M medication.`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var dayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List the entries of one day, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runDay,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM, default current month)")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	now := j.Now()

	year, month := now.Year(), now.Month()
	if calendarMonth != "" {
		if year, month, err = parseMonth(calendarMonth); err != nil {
			return err
		}
	}

	entries, err := j.Entries(cmd.Context())
	if err != nil {
		return err
	}
	renderMonth(cmd.OutOrStdout(), calendar.BuildMonth(year, month, now, entries))
	return nil
}

func renderMonth(w io.Writer, m calendar.Month) {
	fmt.Fprintln(w, bold.Sprint(m.Title()))

	tbl := uitable.New()
	tbl.Separator = " "
	header := make([]interface{}, 7)
	for i, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header[i] = bold.Sprint(d)
	}
	tbl.AddRow(header...)

	faint := color.New(color.Faint)
	today := color.New(color.Bold, color.Underline)
	for _, week := range m.Weeks {
		row := make([]interface{}, 7)
		for i, cell := range week {
			day := fmt.Sprintf("%2d", cell.Date.Day())
			switch {
			case cell.IsToday:
				day = today.Sprint(day)
			case !cell.InMonth:
				day = faint.Sprint(day)
			}
			row[i] = day + markers(cell)
		}
		tbl.AddRow(row...)
	}
	fmt.Fprintln(w, tbl)

	var legend []string
	for _, c := range model.Categories {
		legend = append(legend, categoryColors[c].Sprint(markerSymbols[c])+" "+c.String())
	}
	fmt.Fprintln(w, strings.Join(legend, "  "))
}

// markers renders the capped per-category counts of a cell, e.g. "EES".
func markers(cell calendar.Cell) string {
	var b strings.Builder
	for _, c := range model.Categories {
		if n := cell.Markers[c]; n > 0 {
			b.WriteString(categoryColors[c].Sprint(strings.Repeat(markerSymbols[c], n)))
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return " " + b.String()
}

func runDay(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	loc := j.Now().Location()
	day, err := parseDate(args[0], loc)
	if err != nil {
		return err
	}

	entries, err := j.Entries(cmd.Context())
	if err != nil {
		return err
	}
	onDay := calendar.ForDay(entries, day, loc)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Sprint(day.Format("Monday, January 2, 2006")))
	if len(onDay) == 0 {
		fmt.Fprintln(out, "No entries for this day.")
		return nil
	}
	printEntries(out, onDay, loc)
	return nil
}

package cmd

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/wellness-logger/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"analytics"},
	Short:   "Show streaks, monthly counts and recent patterns",
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	entries, err := j.Entries(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), analytics.Summarize(entries, j.Now()))
	return nil
}

func printSummary(w io.Writer, s analytics.Summary) {
	section := func(title string, rows [][2]string) {
		fmt.Fprintln(w, bold.Sprint(title))
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, r := range rows {
			tbl.AddRow("  "+r[0], r[1])
		}
		fmt.Fprintln(w, tbl)
		fmt.Fprintln(w)
	}

	section("Overview", [][2]string{
		{"Total entries", fmt.Sprint(s.TotalEntries)},
		{"Exercise streak", days(s.ExerciseStreak)},
		{"SVT episodes this month", fmt.Sprint(s.SVTThisMonth)},
		{"Medications this month", fmt.Sprint(s.MedicationsThisMonth)},
	})
	section("Monthly", [][2]string{
		{"Exercise this month", fmt.Sprint(s.ExerciseThisMonth)},
		{"Average SVT episodes per month", fmt.Sprintf("%.1f", s.AverageSVTPerMonth)},
		{"Most active day", s.MostActiveDay},
		{"Most common SVT time", s.MostCommonSVTTime},
	})
	section(fmt.Sprintf("Last %d days", analytics.RecentWindow), [][2]string{
		{"SVT episodes", fmt.Sprint(s.SVTLast30)},
		{"Average SVT duration", s.AverageSVTDuration},
		{"Since last SVT episode", s.DaysSinceSVT.String()},
		{"Exercise sessions", fmt.Sprint(s.ExerciseLast30)},
		{"Exercise per week", fmt.Sprintf("%.1f", s.WeeklyExerciseAverage)},
		{"Since last exercise", s.DaysSinceExercise.String()},
	})
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

package analytics

import (
	"time"

	"github.com/Tiliavir/wellness-logger/internal/model"
)

// Summary is the complete analytics view over one collection snapshot.
type Summary struct {
	TotalEntries int

	ExerciseStreak       int
	ExerciseThisMonth    int
	SVTThisMonth         int
	MedicationsThisMonth int
	AverageSVTPerMonth   float64
	MostActiveDay        string
	MostCommonSVTTime    string

	SVTLast30             int
	AverageSVTDuration    string
	DaysSinceSVT          DaysSince
	ExerciseLast30        int
	WeeklyExerciseAverage float64
	DaysSinceExercise     DaysSince
}

// Summarize computes every statistic over entries as of now. The pattern
// statistics (last 30, average duration, weekly average) only look at the
// trailing window; everything else uses the whole collection.
func Summarize(entries []model.Entry, now time.Time) Summary {
	loc := now.Location()
	recent := Recent(entries, now)
	recentSVT := OfType(recent, model.SVTEpisode)

	return Summary{
		TotalEntries: len(entries),

		ExerciseStreak:       ExerciseStreak(entries, now),
		ExerciseThisMonth:    CountThisMonth(entries, model.Exercise, now),
		SVTThisMonth:         CountThisMonth(entries, model.SVTEpisode, now),
		MedicationsThisMonth: CountThisMonth(entries, model.Medication, now),
		AverageSVTPerMonth:   AveragePerMonth(entries, model.SVTEpisode, loc),
		MostActiveDay:        MostActiveDay(entries, loc),
		MostCommonSVTTime:    MostCommonTimeOfDay(entries, model.SVTEpisode, loc),

		SVTLast30:             len(recentSVT),
		AverageSVTDuration:    AverageDuration(recentSVT),
		DaysSinceSVT:          DaysSinceLast(entries, model.SVTEpisode, now),
		ExerciseLast30:        len(OfType(recent, model.Exercise)),
		WeeklyExerciseAverage: WeeklyAverage(entries, model.Exercise, now),
		DaysSinceExercise:     DaysSinceLast(entries, model.Exercise, now),
	}
}

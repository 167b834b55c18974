package cmd

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Tiliavir/wellness-logger/internal/filter"
	"github.com/Tiliavir/wellness-logger/internal/model"
)

// filterFlags are the filter options shared by list and export.
type filterFlags struct {
	search    string
	category  string
	dateRange string
	from      string
	to        string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.search, "search", "", "Case-insensitive text to find in type and comments")
	fs.StringVar(&f.category, "type", "", "Only this category (exercise, svt, medication)")
	fs.StringVar(&f.dateRange, "range", "", "Relative range: today, last7, last30, thisMonth, lastMonth")
	fs.StringVar(&f.from, "from", "", "On or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "On or before this date (YYYY-MM-DD)")
}

func (f *filterFlags) spec(loc *time.Location) (filter.Spec, error) {
	var spec filter.Spec
	spec.SearchText = f.search

	if f.category != "" {
		c, err := model.ParseCategory(f.category)
		if err != nil {
			return spec, err
		}
		spec.Type = &c
	}

	var err error
	if spec.Range, err = filter.ParseDateRange(f.dateRange); err != nil {
		return spec, err
	}
	if f.from != "" {
		if spec.From, err = parseDate(f.from, loc); err != nil {
			return spec, err
		}
	}
	if f.to != "" {
		if spec.To, err = parseDate(f.to, loc); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

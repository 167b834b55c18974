package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Tiliavir/wellness-logger/internal/model"
)

const (
	listDateLayout = "Mon 2006-01-02"
	listTimeLayout = "15:04"
)

var bold = color.New(color.Bold)

var categoryColors = map[model.Category]*color.Color{
	model.Exercise:   color.New(color.FgGreen),
	model.SVTEpisode: color.New(color.FgRed),
	model.Medication: color.New(color.FgBlue),
}

// markerSymbols are the single-letter calendar markers per category.
var markerSymbols = map[model.Category]string{
	model.Exercise:   "E",
	model.SVTEpisode: "S",
	model.Medication: "M",
}

func categoryLabel(c model.Category) string {
	if col, ok := categoryColors[c]; ok {
		return col.Sprint(c.String())
	}
	return c.String()
}

// detailSummary joins the present detail fields, e.g.
// "Duration: 3 minutes • Comments: after coffee".
func detailSummary(d model.Details) string {
	var parts []string
	if v := d.Value(model.FieldDuration); v != "" {
		parts = append(parts, "Duration: "+v)
	}
	if v := d.Value(model.FieldDosage); v != "" {
		parts = append(parts, "Dosage: "+v)
	}
	if v := d.Value(model.FieldComments); v != "" {
		parts = append(parts, "Comments: "+oneLine(v))
	}
	if len(parts) == 0 {
		return "No additional details"
	}
	return strings.Join(parts, " • ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// printEntries writes entries as a table in the order given.
func printEntries(w io.Writer, entries []model.Entry, loc *time.Location) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Date"), bold.Sprint("Time"), bold.Sprint("Type"), bold.Sprint("Details"))
	for _, e := range entries {
		ts := e.Timestamp.In(loc)
		tbl.AddRow(e.ID, ts.Format(listDateLayout), ts.Format(listTimeLayout), categoryLabel(e.Type), detailSummary(e.Details))
	}
	fmt.Fprintln(w, tbl)
}

// printEntry writes a single entry as a key/value block.
func printEntry(w io.Writer, e model.Entry, loc *time.Location) {
	ts := e.Timestamp.In(loc)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), e.ID)
	tbl.AddRow(bold.Sprint("Type"), categoryLabel(e.Type))
	tbl.AddRow(bold.Sprint("Date"), ts.Format(listDateLayout))
	tbl.AddRow(bold.Sprint("Time"), ts.Format(listTimeLayout))
	for _, f := range []model.Field{model.FieldDuration, model.FieldDosage, model.FieldComments} {
		if !e.Type.Supports(f) {
			continue
		}
		v := e.Details.Value(f)
		if v == "" {
			v = "-"
		}
		tbl.AddRow(bold.Sprint(strings.ToUpper(string(f[:1]))+string(f[1:])), v)
	}
	tbl.RightAlign(0)
	fmt.Fprintln(w, tbl)
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.GreenString(format, args...))
}

func notice(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.YellowString(format, args...))
}

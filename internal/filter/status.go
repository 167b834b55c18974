package filter

import "fmt"

// StatusKind classifies a filtered view.
type StatusKind int

const (
	// Hidden means no filter is active and every entry is shown.
	Hidden StatusKind = iota
	// NoResults means filters are active and nothing matched.
	NoResults
	// AllMatched means filters are active but happen to match every entry.
	AllMatched
	// Partial means a strict subset matched.
	Partial
)

// StatusReport is the user-facing summary of a filtered view.
type StatusReport struct {
	Kind    StatusKind
	Message string
	// ShowFilteredExport is set when exporting the filtered subset differs
	// from exporting everything.
	ShowFilteredExport bool
}

// Status classifies (filtered, total, active). Equal counts alone do not mean
// "no filter": an active filter matching every entry still reports AllMatched.
func Status(filtered, total int, active bool) StatusReport {
	if filtered == total && !active {
		return StatusReport{Kind: Hidden}
	}
	r := StatusReport{ShowFilteredExport: filtered > 0 && filtered < total}
	switch {
	case filtered == 0:
		r.Kind = NoResults
		r.Message = "No entries match your filters"
	case filtered == total:
		r.Kind = AllMatched
		r.Message = fmt.Sprintf("Showing all %d entries", total)
	default:
		r.Kind = Partial
		r.Message = fmt.Sprintf("Showing %d of %d entries", filtered, total)
	}
	return r
}

// EmptyMessage is shown in place of an empty list.
func EmptyMessage(active bool) string {
	if active {
		return "No entries match your current filters. Try adjusting your search criteria."
	}
	return "No entries yet. Start logging your wellness events!"
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category label is not one of the
// three supported event kinds.
var ErrUnknownCategory = errors.New("unknown category")

// ErrFieldNotSupported is returned when a detail field is set on a category
// that does not carry it (e.g. a dosage on an exercise session).
var ErrFieldNotSupported = errors.New("field not supported for category")

// Category is the closed set of event kinds a user can log.
type Category int

const (
	Exercise Category = iota + 1
	SVTEpisode
	Medication
)

// Categories lists every category in display order.
var Categories = []Category{Exercise, SVTEpisode, Medication}

// Field names a category-specific detail field.
type Field string

const (
	FieldDuration Field = "duration"
	FieldDosage   Field = "dosage"
	FieldComments Field = "comments"
)

var labels = map[Category]string{
	Exercise:   "Exercise",
	SVTEpisode: "SVT Episode",
	Medication: "Medication",
}

var aliases = map[string]Category{
	"exercise":    Exercise,
	"svt":         SVTEpisode,
	"svt episode": SVTEpisode,
	"svtepisode":  SVTEpisode,
	"medication":  Medication,
	"med":         Medication,
}

// String returns the persisted label ("Exercise", "SVT Episode", "Medication").
func (c Category) String() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// Slug is the lower-case, space-free form used in file names and markers.
func (c Category) Slug() string {
	return strings.ToLower(strings.ReplaceAll(c.String(), " ", ""))
}

// Supports reports whether entries of this category carry the given field.
// Comments are shared by every category.
func (c Category) Supports(f Field) bool {
	switch f {
	case FieldComments:
		return c.Valid()
	case FieldDuration:
		return c == SVTEpisode
	case FieldDosage:
		return c == Medication
	}
	return false
}

// ParseCategory accepts the persisted label exactly, or one of the short
// case-insensitive aliases used on the command line.
func ParseCategory(s string) (Category, error) {
	for c, l := range labels {
		if s == l {
			return c, nil
		}
	}
	if c, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalJSON writes the category as its persisted label.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON only accepts the exact persisted labels.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	for k, l := range labels {
		if s == l {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

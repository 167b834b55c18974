package model

import (
	"fmt"
	"time"
)

// Entry represents a single logged wellness event.
type Entry struct {
	ID        string    `json:"id"`
	Type      Category  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Details   Details   `json:"details"`
}

// Details holds the optional, category-dependent fields of an entry.
// A nil field is absent, never an empty placeholder.
type Details struct {
	Duration *string `json:"duration,omitempty"`
	Dosage   *string `json:"dosage,omitempty"`
	Comments *string `json:"comments,omitempty"`
}

// Envelope is the structured bulk export format.
type Envelope struct {
	Version      string    `json:"version"`
	ExportedAt   time.Time `json:"exportedAt"`
	Source       string    `json:"source"`
	TotalEntries int       `json:"totalEntries"`
	Entries      []Entry   `json:"entries"`
}

// Patch describes an edit. Nil fields are left untouched; a pointer to an
// empty string clears the field.
type Patch struct {
	Timestamp *time.Time
	Duration  *string
	Dosage    *string
	Comments  *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Timestamp == nil && p.Duration == nil && p.Dosage == nil && p.Comments == nil
}

// Value returns the field value, or "" when the field is absent.
func (d Details) Value(f Field) string {
	var p *string
	switch f {
	case FieldDuration:
		p = d.Duration
	case FieldDosage:
		p = d.Dosage
	case FieldComments:
		p = d.Comments
	}
	if p == nil {
		return ""
	}
	return *p
}

// Apply returns a copy of e with the patch applied. Fields the category does
// not carry are rejected rather than silently stored.
func (e Entry) Apply(p Patch) (Entry, error) {
	out := e
	if p.Timestamp != nil {
		out.Timestamp = *p.Timestamp
	}
	set := []struct {
		field Field
		value *string
		dst   **string
	}{
		{FieldDuration, p.Duration, &out.Details.Duration},
		{FieldDosage, p.Dosage, &out.Details.Dosage},
		{FieldComments, p.Comments, &out.Details.Comments},
	}
	for _, s := range set {
		if s.value == nil {
			continue
		}
		if !e.Type.Supports(s.field) {
			return e, fmt.Errorf("%w: %s on %s", ErrFieldNotSupported, s.field, e.Type)
		}
		*s.dst = OptionalString(*s.value)
	}
	return out, nil
}

// OptionalString returns nil for "", otherwise a pointer to a copy of s.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

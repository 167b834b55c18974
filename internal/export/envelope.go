package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/wellness-logger/internal/model"
)

const (
	// EnvelopeVersion is written to every JSON export.
	EnvelopeVersion = "1.1.0"
	// Source identifies this program in JSON exports.
	Source = "wlog-cli"
)

// ErrInvalidImport matches every import validation failure.
var ErrInvalidImport = errors.New("invalid import")

// ValidationError describes why an import was rejected. Index is the
// offending array position, or -1 when the document as a whole is wrong.
type ValidationError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "invalid import: " + msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is makes every ValidationError match ErrInvalidImport.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidImport }

// NewEnvelope wraps the collection for a JSON export taken at now.
func NewEnvelope(entries []model.Entry, now time.Time) model.Envelope {
	if entries == nil {
		entries = []model.Entry{}
	}
	return model.Envelope{
		Version:      EnvelopeVersion,
		ExportedAt:   now.UTC(),
		Source:       Source,
		TotalEntries: len(entries),
		Entries:      entries,
	}
}

// MarshalEnvelope renders env as indented JSON.
func MarshalEnvelope(env model.Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}
	return data, nil
}

var requiredFields = []string{"id", "type", "timestamp", "details"}

// ParseImport validates a JSON document holding either a bare array of
// entries or an envelope with an entries field. Either every entry is valid
// and all are returned, or a *ValidationError is returned and nothing is.
func ParseImport(data []byte) ([]model.Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, &ValidationError{Index: -1, Reason: "malformed JSON", Err: err}
		}
		if raw, ok := env["entries"]; ok && !isNull(raw) {
			data = raw
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, &ValidationError{Index: -1, Reason: "expected an array of entries"}
	}

	entries := make([]model.Entry, 0, len(items))
	seen := make(map[string]int, len(items))
	for i, raw := range items {
		e, err := parseEntry(raw)
		if err != nil {
			err.Index = i
			return nil, err
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, &ValidationError{Index: i, Reason: fmt.Sprintf("duplicate id %q (first seen at entry %d)", e.ID, prev)}
		}
		seen[e.ID] = i
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(raw json.RawMessage) (model.Entry, *ValidationError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Entry{}, &ValidationError{Reason: "entry is not an object"}
	}
	for _, name := range requiredFields {
		if v, ok := fields[name]; !ok || isBlank(v) {
			return model.Entry{}, &ValidationError{Reason: "missing " + name}
		}
	}

	var id, ts string
	if err := json.Unmarshal(fields["id"], &id); err != nil {
		return model.Entry{}, &ValidationError{Reason: "id must be a string", Err: err}
	}
	if err := json.Unmarshal(fields["timestamp"], &ts); err != nil {
		return model.Entry{}, &ValidationError{Reason: "timestamp must be a string", Err: err}
	}
	when, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return model.Entry{}, &ValidationError{Reason: "unparseable timestamp", Err: err}
	}

	e := model.Entry{ID: id, Timestamp: when}
	if err := json.Unmarshal(fields["type"], &e.Type); err != nil {
		return model.Entry{}, &ValidationError{Reason: "bad type", Err: err}
	}
	if err := json.Unmarshal(fields["details"], &e.Details); err != nil {
		return model.Entry{}, &ValidationError{Reason: "details must be an object", Err: err}
	}
	return e, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isBlank(raw json.RawMessage) bool {
	v := string(bytes.TrimSpace(raw))
	return v == "null" || v == `""` || v == ""
}

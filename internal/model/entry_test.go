package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/wellness-logger/internal/model"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  model.Category
	}{
		{"Exercise", model.Exercise},
		{"SVT Episode", model.SVTEpisode},
		{"Medication", model.Medication},
		{"svt", model.SVTEpisode},
		{" MED ", model.Medication},
		{"exercise", model.Exercise},
	}
	for _, tt := range tests {
		got, err := model.ParseCategory(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := model.ParseCategory("Yoga")
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestCategorySupports(t *testing.T) {
	assert.True(t, model.SVTEpisode.Supports(model.FieldDuration))
	assert.False(t, model.SVTEpisode.Supports(model.FieldDosage))
	assert.True(t, model.Medication.Supports(model.FieldDosage))
	assert.False(t, model.Exercise.Supports(model.FieldDuration))
	assert.True(t, model.Exercise.Supports(model.FieldComments))
	assert.Equal(t, "svtepisode", model.SVTEpisode.Slug())
}

func TestEntryJSONOmitsAbsentDetails(t *testing.T) {
	e := model.Entry{
		ID:        "e1",
		Type:      model.SVTEpisode,
		Timestamp: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		Details:   model.Details{Duration: model.OptionalString("3 minutes")},
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"e1","type":"SVT Episode","timestamp":"2024-03-01T08:30:00Z","details":{"duration":"3 minutes"}}`,
		string(data))

	var back model.Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, model.SVTEpisode, back.Type)
	assert.Nil(t, back.Details.Comments)
	assert.Equal(t, "3 minutes", back.Details.Value(model.FieldDuration))
}

func TestEntryUnmarshalRejectsUnknownType(t *testing.T) {
	var e model.Entry
	err := json.Unmarshal([]byte(`{"id":"x","type":"Yoga","timestamp":"2024-01-01T00:00:00Z","details":{}}`), &e)
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestEntryApply(t *testing.T) {
	base := model.Entry{
		ID:        "m1",
		Type:      model.Medication,
		Timestamp: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Details: model.Details{
			Dosage:   model.OptionalString("1/2 tablet"),
			Comments: model.OptionalString("with food"),
		},
	}

	moved := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	dosage := "1 tablet"
	empty := ""
	got, err := base.Apply(model.Patch{Timestamp: &moved, Dosage: &dosage, Comments: &empty})
	require.NoError(t, err)
	assert.Equal(t, moved, got.Timestamp)
	assert.Equal(t, "1 tablet", got.Details.Value(model.FieldDosage))
	assert.Nil(t, got.Details.Comments)

	// The original is untouched.
	assert.Equal(t, "1/2 tablet", *base.Details.Dosage)
	assert.Equal(t, "with food", *base.Details.Comments)

	duration := "2 minutes"
	_, err = base.Apply(model.Patch{Duration: &duration})
	assert.ErrorIs(t, err, model.ErrFieldNotSupported)
}

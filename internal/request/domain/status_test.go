package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wastehub/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"pending to accepted", model.RequestStatusPending, model.RequestStatusAccepted, true},
		{"pending to cancelled", model.RequestStatusPending, model.RequestStatusCancelled, true},
		{"accepted to in_progress", model.RequestStatusAccepted, model.RequestStatusInProgress, true},
		{"accepted to completed", model.RequestStatusAccepted, model.RequestStatusCompleted, true},
		{"in_progress to completed", model.RequestStatusInProgress, model.RequestStatusCompleted, true},

		{"pending to in_progress skips accepted", model.RequestStatusPending, model.RequestStatusInProgress, false},
		{"pending to completed skips accepted", model.RequestStatusPending, model.RequestStatusCompleted, false},
		{"accepted to cancelled", model.RequestStatusAccepted, model.RequestStatusCancelled, false},
		{"in_progress to cancelled", model.RequestStatusInProgress, model.RequestStatusCancelled, false},
		{"completed is terminal", model.RequestStatusCompleted, model.RequestStatusCancelled, false},
		{"cancelled is terminal", model.RequestStatusCancelled, model.RequestStatusAccepted, false},
		{"no backward transition", model.RequestStatusAccepted, model.RequestStatusPending, false},
		{"unknown status", "UNKNOWN", model.RequestStatusAccepted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(model.RequestStatusCompleted))
	assert.True(t, IsTerminal(model.RequestStatusCancelled))
	assert.False(t, IsTerminal(model.RequestStatusPending))
	assert.False(t, IsTerminal(model.RequestStatusAccepted))
	assert.False(t, IsTerminal(model.RequestStatusInProgress))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		model.RequestStatusPending,
		model.RequestStatusAccepted,
		model.RequestStatusInProgress,
		model.RequestStatusCompleted,
		model.RequestStatusCancelled,
	} {
		assert.True(t, ValidStatus(s), s)
	}

	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus("DONE"))
}

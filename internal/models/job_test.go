package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOpenForApplication(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		status   JobStatus
		deadline *time.Time
		want     bool
	}{
		{"open without deadline", JobStatusOpen, nil, true},
		{"open with future deadline", JobStatusOpen, &tomorrow, true},
		{"open with passed deadline", JobStatusOpen, &yesterday, false},
		{"deadline exactly now still open", JobStatusOpen, &now, true},
		{"closed", JobStatusClosed, nil, false},
		{"filled", JobStatusFilled, &tomorrow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{Status: tt.status, ApplicationDeadline: tt.deadline}
			assert.Equal(t, tt.want, IsOpenForApplication(job, now))
		})
	}
}

func TestHasDeadlinePassed(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	assert.False(t, HasDeadlinePassed(&Job{}, now))
	assert.True(t, HasDeadlinePassed(&Job{ApplicationDeadline: &past}, now))
}

func TestIsValidJobStatus(t *testing.T) {
	assert.True(t, IsValidJobStatus(JobStatusOpen))
	assert.True(t, IsValidJobStatus(JobStatusClosed))
	assert.True(t, IsValidJobStatus(JobStatusFilled))
	assert.False(t, IsValidJobStatus(JobStatus("archived")))
	assert.False(t, IsValidJobStatus(JobStatus("")))
}

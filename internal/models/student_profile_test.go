package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillsRoundTrip(t *testing.T) {
	profile := &StudentProfile{}
	assert.Empty(t, profile.GetSkills())

	profile.SetSkills([]string{"go", "postgres", "docker"})
	assert.Equal(t, []string{"go", "postgres", "docker"}, profile.GetSkills())
}

func TestHasResume(t *testing.T) {
	assert.False(t, (&StudentProfile{}).HasResume())
	assert.True(t, (&StudentProfile{ResumePath: "resumes/u1/cv.pdf"}).HasResume())
}

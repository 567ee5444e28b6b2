package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleProbe struct {
	Role string `json:"role" binding:"required" validate:"is-user-role"`
}

type statusProbe struct {
	Status string `json:"status" validate:"omitempty,is-application-status"`
}

func TestCustomRoleRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&roleProbe{Role: "student"}))
	assert.NoError(t, v.Validate(&roleProbe{Role: "alumni"}))
	assert.NoError(t, v.Validate(&roleProbe{Role: "employer"}))

	err := v.Validate(&roleProbe{Role: "superuser"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "role")
}

func TestCustomStatusRule_EmptyPasses(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&statusProbe{}))
	assert.NoError(t, v.Validate(&statusProbe{Status: "shortlisted"}))
	assert.Error(t, v.Validate(&statusProbe{Status: "bogus"}))
}

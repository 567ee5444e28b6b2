package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStudent(t *testing.T) {
	assert.True(t, (&User{Role: UserRoleStudent}).IsStudent())
	assert.True(t, (&User{Role: UserRoleAlumni}).IsStudent())
	assert.False(t, (&User{Role: UserRoleEmployer}).IsStudent())
	assert.False(t, (&User{Role: UserRoleAdmin}).IsStudent())
}

func TestCanDeleteUser(t *testing.T) {
	admin := &User{Role: UserRoleAdmin}
	admin.ID = "admin-1"
	student := &User{Role: UserRoleStudent}
	student.ID = "student-1"

	assert.True(t, CanDeleteUser("admin-1", student))
	assert.False(t, CanDeleteUser("admin-1", admin), "нельзя удалить себя")

	otherAdmin := &User{Role: UserRoleAdmin}
	otherAdmin.ID = "admin-2"
	assert.False(t, CanDeleteUser("admin-1", otherAdmin), "нельзя удалить другого админа")
}

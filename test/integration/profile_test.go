package integration_test

import (
	"net/http"
	"testing"

	"munext_backend/internal/models"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertStudentProfile(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "Student", "profile_student@test.com", "password123", models.UserRoleStudent)

	body := map[string]interface{}{
		"program":         "Computer Science",
		"faculty":         "School of Engineering",
		"graduation_year": 2027,
		"bio":             "Aspiring backend developer",
		"skills":          []string{"go", "postgres"},
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/profile", token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Computer Science")

	getRes, getBodyStr := ts.SendRequest(t, "GET", "/api/v1/student/profile", token, nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode, getBodyStr)
	assert.Contains(t, getBodyStr, "Aspiring backend developer")
}

func TestStudentProfile_EmployerForbidden(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _, _ := helpers.CreateAndLoginEmployer(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/student/profile", token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

// TestUpsertProfile_KeepsResumePath - повторное сохранение профиля
// не затирает путь к загруженному резюме.
func TestUpsertProfile_KeepsResumePath(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, user, profile := helpers.CreateAndLoginStudent(t, ts)

	body := map[string]interface{}{
		"program":         "Data Science",
		"faculty":         "School of Engineering",
		"graduation_year": 2026,
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/profile", token, body)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.StudentProfile
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&updated).Error)
	assert.Equal(t, profile.ResumePath, updated.ResumePath)
	assert.Equal(t, "Data Science", updated.Program)
}

func TestUploadResume(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, user, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendMultipart(t, "POST", "/api/v1/student/profile/resume", token,
		nil, "resume", "my_resume.pdf", []byte("%PDF-1.4 fake resume content"))
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Resume uploaded successfully")

	var updated models.StudentProfile
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&updated).Error)
	assert.Contains(t, updated.ResumePath, "resumes/"+user.ID)
}

func TestUploadResume_WrongType(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendMultipart(t, "POST", "/api/v1/student/profile/resume", token,
		nil, "resume", "resume.png", []byte("not a pdf"))
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, bodyStr)
}

func TestUploadLogo(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, user, _ := helpers.CreateAndLoginEmployer(t, ts)

	res, bodyStr := ts.SendMultipart(t, "POST", "/api/v1/employer/profile/logo", token,
		nil, "logo", "logo.png", []byte("fake png bytes"))
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.EmployerProfile
	require.NoError(t, ts.DB.Where("user_id = ?", user.ID).First(&updated).Error)
	assert.Contains(t, updated.LogoPath, "logos/"+user.ID)
}

func TestPublicEmployerProfile(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, user, profile := helpers.CreateAndLoginEmployer(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/profiles/employer/"+user.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, profile.CompanyName)

	missingRes, _ := ts.SendRequest(t, "GET", "/api/v1/profiles/employer/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, missingRes.StatusCode)
}

func TestPublicStudentProfile_WrongRole(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, user, _ := helpers.CreateAndLoginEmployer(t, ts)

	// Работодатель не отдается как студенческий профиль
	res, _ := ts.SendRequest(t, "GET", "/api/v1/profiles/student/"+user.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

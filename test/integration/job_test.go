package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"munext_backend/internal/models"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _, _ := helpers.CreateAndLoginEmployer(t, ts)

	body := map[string]interface{}{
		"title":            "Backend Developer Intern",
		"description":      "Work on our Go services",
		"job_type":         "internship",
		"location":         "Ulaanbaatar",
		"experience_level": "entry",
		"category":         "engineering",
		"skills_required":  []string{"go", "sql"},
		"screening_questions": []map[string]interface{}{
			{"question": "Why do you want this role?", "question_type": "text"},
		},
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/employer/jobs", token, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Backend Developer Intern")
	assert.Contains(t, bodyStr, "Why do you want this role?")
}

// TestCreateJob_RequiresProfile - без профиля компании вакансию
// опубликовать нельзя.
func TestCreateJob_RequiresProfile(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "No Profile", "noprofile_employer@test.com", "password123", models.UserRoleEmployer)

	body := map[string]interface{}{
		"title":            "Ghost Job",
		"description":      "Should not be created",
		"job_type":         "full-time",
		"location":         "Remote",
		"experience_level": "entry",
		"category":         "engineering",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/employer/jobs", token, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Please complete your employer profile first")
}

func TestCreateJob_InvalidSalaryRange(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, _, _ := helpers.CreateAndLoginEmployer(t, ts)

	body := map[string]interface{}{
		"title":            "Bad Salary Job",
		"description":      "Salary max below min",
		"job_type":         "full-time",
		"location":         "Ulaanbaatar",
		"experience_level": "entry",
		"category":         "engineering",
		"salary_min":       90000,
		"salary_max":       50000,
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/employer/jobs", token, body)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, bodyStr)
}

// TestPublicJobList_OnlyOpenJobs - публичная доска не показывает
// закрытые вакансии и вакансии с истекшим дедлайном.
func TestPublicJobList_OnlyOpenJobs(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)

	open := helpers.CreateTestJob(t, ts.DB, employer.ID, "Visible Open Job")

	closed := helpers.CreateTestJob(t, ts.DB, employer.ID, "Hidden Closed Job")
	require.NoError(t, ts.DB.Model(closed).Update("status", models.JobStatusClosed).Error)

	expired := helpers.CreateTestJob(t, ts.DB, employer.ID, "Hidden Expired Job")
	yesterday := time.Now().Add(-24 * time.Hour)
	require.NoError(t, ts.DB.Model(expired).Update("application_deadline", yesterday).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, open.Title)
	assert.NotContains(t, bodyStr, closed.Title)
	assert.NotContains(t, bodyStr, expired.Title)
}

func TestGetJob_IncrementsViews(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Viewed Job")

	for i := 0; i < 3; i++ {
		res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/jobs/"+job.ID, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	}

	var updated models.Job
	require.NoError(t, ts.DB.First(&updated, "id = ?", job.ID).Error)
	assert.Equal(t, 3, updated.ViewsCount)
}

func TestGetJob_StudentSeesPersonalFlags(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Flagged Job")

	studentToken, student, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	_, bodyStr := ts.SendRequest(t, "GET", "/api/v1/jobs/"+job.ID, studentToken, nil)

	var response struct {
		Data struct {
			IsSaved    bool `json:"is_saved"`
			HasApplied bool `json:"has_applied"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.True(t, response.Data.HasApplied)
	assert.False(t, response.Data.IsSaved)
}

func TestUpdateJob_OwnershipEnforced(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, owner, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, owner.ID, "Owned Job")

	otherToken, _, _ := helpers.CreateAndLoginEmployer(t, ts)

	body := map[string]interface{}{
		"title":            "Hijacked Job",
		"description":      "Should be rejected",
		"job_type":         "full-time",
		"location":         "Ulaanbaatar",
		"experience_level": "entry",
		"category":         "engineering",
	}
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/employer/jobs/"+job.ID, otherToken, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestUpdateJobStatus(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Status Job")

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/employer/jobs/"+job.ID+"/status", token, map[string]interface{}{
		"status": "filled",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Job
	require.NoError(t, ts.DB.First(&updated, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusFilled, updated.Status)
}

func TestSavedJobs_Toggle(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Saveable Job")

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	saveRes, saveBodyStr := ts.SendRequest(t, "POST", "/api/v1/student/saved-jobs/"+job.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, saveRes.StatusCode, saveBodyStr)
	assert.Contains(t, saveBodyStr, `"saved":true`)

	listRes, listBodyStr := ts.SendRequest(t, "GET", "/api/v1/student/saved-jobs", studentToken, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode, listBodyStr)
	assert.Contains(t, listBodyStr, job.Title)

	// Повторный вызов снимает сохранение
	unsaveRes, unsaveBodyStr := ts.SendRequest(t, "POST", "/api/v1/student/saved-jobs/"+job.ID, studentToken, nil)
	assert.Equal(t, http.StatusOK, unsaveRes.StatusCode, unsaveBodyStr)
	assert.Contains(t, unsaveBodyStr, `"saved":false`)

	_, emptyBodyStr := ts.SendRequest(t, "GET", "/api/v1/student/saved-jobs", studentToken, nil)
	assert.NotContains(t, emptyBodyStr, job.Title)
}

func TestMyJobs_ShowsApplicationCount(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	token, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Counted Job")

	_, s1, _ := helpers.CreateAndLoginStudent(t, ts)
	_, s2, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestApplication(t, ts.DB, job.ID, s1.ID)
	helpers.CreateTestApplication(t, ts.DB, job.ID, s2.ID)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/employer/jobs", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"applications_count":2`)
}

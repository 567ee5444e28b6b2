package integration_test

import (
	"net/http"
	"testing"

	"munext_backend/internal/models"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDashboard(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Dashboard Job")
	_, student, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"total_users"`)
	assert.Contains(t, bodyStr, `"active_jobs":1`)
	assert.Contains(t, bodyStr, `"pending_applications":1`)
	assert.Contains(t, bodyStr, `"recent_users"`)
}

func TestAdminDashboard_Forbidden(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/dashboard", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestAdminAnalyticsAndReports(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	helpers.CreateTestJob(t, ts.DB, employer.ID, "Analytics Job")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/analytics", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"jobs_by_category"`)
	assert.Contains(t, bodyStr, `"top_employers"`)

	for _, reportType := range []string{"", "users", "jobs", "applications"} {
		repRes, repBodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/reports?type="+reportType, adminToken, nil)
		assert.Equal(t, http.StatusOK, repRes.StatusCode, "type="+reportType+": "+repBodyStr)
	}
}

// TestAdminVerifyUser - верификация аккаунта создает уведомление
// пользователю в той же транзакции.
func TestAdminVerifyUser(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	unverified := &models.User{
		Name:         "Pending Employer",
		Email:        "pending_employer@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleEmployer,
	}
	helpers.CreateUser(t, ts.DB, unverified)
	require.NoError(t, ts.DB.Model(unverified).Update("is_verified", false).Error)

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/admin/users/"+unverified.ID+"/verify", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.User
	require.NoError(t, ts.DB.First(&updated, "id = ?", unverified.ID).Error)
	assert.True(t, updated.IsVerified)

	var notification models.Notification
	require.NoError(t, ts.DB.Where("user_id = ? AND type = ?", unverified.ID, models.NotificationTypeAccountVerified).First(&notification).Error)
	assert.Equal(t, "Your account has been verified by an administrator.", notification.Message)
}

func TestAdminUnverifyUser(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)

	res, bodyStr := ts.SendRequest(t, "PATCH", "/api/v1/admin/users/"+employer.ID+"/unverify", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.User
	require.NoError(t, ts.DB.First(&updated, "id = ?", employer.ID).Error)
	assert.False(t, updated.IsVerified)
}

// TestAdminDeleteUser_Guards - админ не удаляет себя и других админов.
func TestAdminDeleteUser_Guards(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, admin := helpers.CreateAndLoginAdmin(t, ts)
	_, otherAdmin := helpers.CreateAndLoginAdmin(t, ts)

	selfRes, selfBodyStr := ts.SendRequest(t, "DELETE", "/api/v1/admin/users/"+admin.ID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, selfRes.StatusCode, selfBodyStr)
	assert.Contains(t, selfBodyStr, "You cannot delete your own account")

	otherRes, otherBodyStr := ts.SendRequest(t, "DELETE", "/api/v1/admin/users/"+otherAdmin.ID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, otherRes.StatusCode, otherBodyStr)
	assert.Contains(t, otherBodyStr, "Cannot delete admin accounts")
}

func TestAdminDeleteUser(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, student, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, "DELETE", "/api/v1/admin/users/"+student.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var count int64
	ts.DB.Model(&models.User{}).Where("id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

// TestAdminListJobs - админ видит и закрытые вакансии.
func TestAdminListJobs(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)

	helpers.CreateTestJob(t, ts.DB, employer.ID, "Admin Open Job")
	closed := helpers.CreateTestJob(t, ts.DB, employer.ID, "Admin Closed Job")
	require.NoError(t, ts.DB.Model(closed).Update("status", models.JobStatusClosed).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/jobs", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Admin Open Job")
	assert.Contains(t, bodyStr, "Admin Closed Job")
}

func TestAdminModerateJob(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Moderated Job")

	statusRes, statusBodyStr := ts.SendRequest(t, "PATCH", "/api/v1/admin/jobs/"+job.ID+"/status", adminToken, map[string]interface{}{
		"status": "closed",
	})
	assert.Equal(t, http.StatusOK, statusRes.StatusCode, statusBodyStr)

	delRes, delBodyStr := ts.SendRequest(t, "DELETE", "/api/v1/admin/jobs/"+job.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode, delBodyStr)

	var count int64
	ts.DB.Model(&models.Job{}).Where("id = ?", job.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAdminListUsers_Filter(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/admin/users?role=employer", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, employer.Email)
	assert.NotContains(t, bodyStr, `"role":"student"`)
}

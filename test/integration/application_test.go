package integration_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"munext_backend/internal/models"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyFlow - отклик создается с резюме из профиля, работодатель
// получает уведомление в той же транзакции.
func TestApplyFlow(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Applied Job")

	studentToken, student, profile := helpers.CreateAndLoginStudent(t, ts)

	body := map[string]interface{}{
		"cover_letter": "I would love to join your team.",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Application submitted successfully")

	var application models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND student_id = ?", job.ID, student.ID).First(&application).Error)
	assert.Equal(t, profile.ResumePath, application.ResumePath)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)

	var notification models.Notification
	require.NoError(t, ts.DB.Where("user_id = ? AND type = ?", employer.ID, models.NotificationTypeNewApplication).First(&notification).Error)
	assert.Contains(t, notification.Message, "has applied for "+job.Title)
}

func TestApply_WithUploadedResume(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Upload Apply Job")

	studentToken, student, _ := helpers.CreateAndLoginStudent(t, ts)

	fields := map[string]string{
		"cover_letter":      "Please find my tailored resume attached.",
		"screening_answers": `{"q1": "yes"}`,
	}
	res, bodyStr := ts.SendMultipart(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken,
		fields, "resume", "tailored.pdf", []byte("%PDF-1.4 tailored resume"))
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var application models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND student_id = ?", job.ID, student.ID).First(&application).Error)
	assert.Contains(t, application.ResumePath, "application_resumes/"+student.ID)
}

func TestApply_Duplicate(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Duplicate Apply Job")

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	body := map[string]interface{}{"cover_letter": "First application."}
	first, firstBodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, body)
	require.Equal(t, http.StatusCreated, first.StatusCode, firstBodyStr)

	second, secondBodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, body)
	assert.Equal(t, http.StatusBadRequest, second.StatusCode, secondBodyStr)
	assert.Contains(t, secondBodyStr, "You have already applied for this job")
}

func TestApply_NoResume(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "No Resume Job")

	studentToken, user := helpers.CreateAndLoginUser(t, ts, "Bare Student", "bare_student@test.com", "password123", models.UserRoleStudent)
	profile := &models.StudentProfile{
		UserID:         user.ID,
		Program:        "Computer Science",
		Faculty:        "School of Engineering",
		GraduationYear: 2027,
	}
	require.NoError(t, ts.DB.Create(profile).Error)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, map[string]interface{}{
		"cover_letter": "No resume anywhere.",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Please upload a resume")
}

func TestApply_ClosedJob(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Closed Apply Job")
	require.NoError(t, ts.DB.Model(job).Update("status", models.JobStatusClosed).Error)

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, map[string]interface{}{
		"cover_letter": "Too late.",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "no longer accepting applications")
}

func TestWithdraw(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Withdraw Job")

	studentToken, student, _ := helpers.CreateAndLoginStudent(t, ts)
	application := helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	res, bodyStr := ts.SendRequest(t, "DELETE", "/api/v1/student/applications/"+application.ID+"/withdraw", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var count int64
	ts.DB.Model(&models.Application{}).Where("id = ?", application.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

// TestWithdraw_Reviewed - обработанный отклик отозвать нельзя.
func TestWithdraw_Reviewed(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Reviewed Withdraw Job")

	studentToken, student, _ := helpers.CreateAndLoginStudent(t, ts)
	application := helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)
	now := time.Now()
	require.NoError(t, ts.DB.Model(application).Updates(map[string]interface{}{
		"status":      models.ApplicationStatusReviewed,
		"reviewed_at": now,
	}).Error)

	res, bodyStr := ts.SendRequest(t, "DELETE", "/api/v1/student/applications/"+application.ID+"/withdraw", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Cannot withdraw application that has been reviewed")
}

// TestUpdateStatus_NotifiesStudent - смена статуса создает уведомление
// студенту в одной транзакции с обновлением.
func TestUpdateStatus_NotifiesStudent(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	employerToken, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Shortlist Job")

	_, student, _ := helpers.CreateAndLoginStudent(t, ts)
	application := helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/employer/applications/"+application.ID+"/status", employerToken, map[string]interface{}{
		"status": "shortlisted",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Application
	require.NoError(t, ts.DB.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationStatusShortlisted, updated.Status)
	assert.NotNil(t, updated.ReviewedAt)

	var notification models.Notification
	require.NoError(t, ts.DB.Where("user_id = ? AND type = ?", student.ID, models.NotificationTypeApplicationStatus).First(&notification).Error)
	assert.Contains(t, notification.Message, "You have been shortlisted for "+job.Title)
}

func TestUpdateStatus_ForeignApplication(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, owner, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, owner.ID, "Foreign Status Job")

	_, student, _ := helpers.CreateAndLoginStudent(t, ts)
	application := helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	otherToken, _, _ := helpers.CreateAndLoginEmployer(t, ts)
	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/employer/applications/"+application.ID+"/status", otherToken, map[string]interface{}{
		"status": "reviewed",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestListForJob(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	employerToken, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Listing Job")

	_, s1, _ := helpers.CreateAndLoginStudent(t, ts)
	_, s2, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestApplication(t, ts.DB, job.ID, s1.ID)
	helpers.CreateTestApplication(t, ts.DB, job.ID, s2.ID)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/employer/jobs/"+job.ID+"/applications", employerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"total":2`)
}

func TestMyApplications_StatusFilter(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	jobA := helpers.CreateTestJob(t, ts.DB, employer.ID, "Filter Job A")
	jobB := helpers.CreateTestJob(t, ts.DB, employer.ID, "Filter Job B")

	studentToken, student, _ := helpers.CreateAndLoginStudent(t, ts)
	helpers.CreateTestApplication(t, ts.DB, jobA.ID, student.ID)
	rejected := helpers.CreateTestApplication(t, ts.DB, jobB.ID, student.ID)
	require.NoError(t, ts.DB.Model(rejected).Update("status", models.ApplicationStatusRejected).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/student/applications?status=rejected", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"total":1`)
	assert.Contains(t, bodyStr, jobB.ID)
}

// TestApply_RequiredScreeningAnswer - без ответа на обязательный вопрос
// отклик не принимается.
func TestApply_RequiredScreeningAnswer(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Screening Job")

	question := &models.ScreeningQuestion{
		JobID:      job.ID,
		Question:   "Are you eligible to work in Mongolia?",
		IsRequired: true,
	}
	require.NoError(t, ts.DB.Create(question).Error)

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, map[string]interface{}{
		"cover_letter": "No answers attached.",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "screening_answers."+question.ID)

	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, map[string]interface{}{
		"cover_letter":      "Answers attached.",
		"screening_answers": map[string]string{question.ID: "Yes"},
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
}

// TestApply_DuplicateUploadLeavesNoFile - повторный отклик отклоняется
// до загрузки резюме, файл в хранилище не остается.
func TestApply_DuplicateUploadLeavesNoFile(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Duplicate Upload Job")

	studentToken, _, _ := helpers.CreateAndLoginStudent(t, ts)

	first, firstBodyStr := ts.SendRequest(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken, map[string]interface{}{
		"cover_letter": "First application.",
	})
	require.Equal(t, http.StatusCreated, first.StatusCode, firstBodyStr)

	second, secondBodyStr := ts.SendMultipart(t, "POST", "/api/v1/student/applications/"+job.ID, studentToken,
		map[string]string{"cover_letter": "Second try with a file."},
		"resume", "retry.pdf", []byte("%PDF-1.4 retry resume"))
	assert.Equal(t, http.StatusBadRequest, second.StatusCode, secondBodyStr)
	assert.Contains(t, secondBodyStr, "You have already applied for this job")

	_, err := os.Stat(filepath.Join(ts.StorageDir, "application_resumes"))
	assert.True(t, os.IsNotExist(err), "файл отклоненного отклика не должен попадать в хранилище")
}

// TestUpdateStatus_PendingKeepsReviewedAt - возврат в pending обновляет
// reviewed_at, а не сбрасывает его.
func TestUpdateStatus_PendingKeepsReviewedAt(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	employerToken, employer, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateTestJob(t, ts.DB, employer.ID, "Pending Reset Job")

	_, student, _ := helpers.CreateAndLoginStudent(t, ts)
	application := helpers.CreateTestApplication(t, ts.DB, job.ID, student.ID)

	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/employer/applications/"+application.ID+"/status", employerToken, map[string]interface{}{
		"status": "shortlisted",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, "PUT", "/api/v1/employer/applications/"+application.ID+"/status", employerToken, map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var updated models.Application
	require.NoError(t, ts.DB.First(&updated, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationStatusPending, updated.Status)
	assert.NotNil(t, updated.ReviewedAt)

	// pending не порождает уведомления
	var count int64
	ts.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", student.ID, models.NotificationTypeApplicationStatus).Count(&count)
	assert.EqualValues(t, 1, count)
}

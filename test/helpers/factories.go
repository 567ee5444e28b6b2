package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"munext_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя напрямую в транзакции.
// Сырой пароль хешируется, пользователь сразу верифицирован.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "Не удалось хешировать пароль")
		user.PasswordHash = string(hashed)
	}
	user.IsVerified = true
	now := time.Now()
	user.EmailVerifiedAt = &now

	require.NoError(t, tx.Create(user).Error, "Не удалось создать пользователя %s", user.Email)
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password,
		Role:         role,
	}
	CreateUser(t, ts.DB, user)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Data.AccessToken, "Токен не должен быть пустым")

	return loginResponse.Data.AccessToken, user
}

// CreateAndLoginStudent создает студента с профилем и уникальным email
func CreateAndLoginStudent(t *testing.T, ts *TestServer) (string, *models.User, *models.StudentProfile) {
	email := fmt.Sprintf("student_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, "Test Student", email, "password123", models.UserRoleStudent)

	profile := &models.StudentProfile{
		UserID:         user.ID,
		Program:        "Computer Science",
		Faculty:        "School of Engineering",
		GraduationYear: 2027,
		Location:       "Ulaanbaatar",
		ResumePath:     "resumes/" + user.ID + "/profile.pdf",
	}
	profile.SetSkills([]string{"go", "sql"})
	require.NoError(t, ts.DB.Create(profile).Error, "Не удалось создать профиль студента")

	return token, user, profile
}

// CreateAndLoginEmployer создает работодателя с профилем компании
func CreateAndLoginEmployer(t *testing.T, ts *TestServer) (string, *models.User, *models.EmployerProfile) {
	email := fmt.Sprintf("employer_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, "Test Employer", email, "password123", models.UserRoleEmployer)

	profile := &models.EmployerProfile{
		UserID:      user.ID,
		CompanyName: "Test Company Inc.",
		Industry:    "Technology",
		Location:    "Ulaanbaatar",
	}
	require.NoError(t, ts.DB.Create(profile).Error, "Не удалось создать профиль работодателя")

	return token, user, profile
}

// CreateAndLoginAdmin создает администратора
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Admin", email, "password123", models.UserRoleAdmin)
}

// CreateTestJob создает открытую вакансию напрямую в транзакции
func CreateTestJob(t *testing.T, tx *gorm.DB, employerID, title string) *models.Job {
	job := &models.Job{
		EmployerID:      employerID,
		Title:           title,
		Description:     "Test description",
		JobType:         models.JobTypeFullTime,
		Location:        "Ulaanbaatar",
		ExperienceLevel: models.ExperienceLevelEntry,
		Category:        "engineering",
		Status:          models.JobStatusOpen,
	}
	require.NoError(t, tx.Create(job).Error, "Не удалось создать вакансию")
	return job
}

// CreateTestApplication создает отклик напрямую в транзакции
func CreateTestApplication(t *testing.T, tx *gorm.DB, jobID, studentID string) *models.Application {
	application := &models.Application{
		JobID:       jobID,
		StudentID:   studentID,
		CoverLetter: "I am very interested in this position.",
		ResumePath:  "resumes/" + studentID + "/profile.pdf",
		Status:      models.ApplicationStatusPending,
		AppliedAt:   time.Now(),
	}
	require.NoError(t, tx.Create(application).Error, "Не удалось создать отклик")
	return application
}

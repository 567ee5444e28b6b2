package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"munext_backend/internal/models"
	"munext_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	email := fmt.Sprintf("newstudent_%d@test.com", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"name":     "New Student",
		"email":    email,
		"password": "super_password123",
		"role":     "student",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, regBodyStr)
	assert.Contains(t, regBodyStr, "Registration successful")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, logBodyStr)

	var loginResponse struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Data.AccessToken)
	require.NotEmpty(t, loginResponse.Data.RefreshToken)

	meRes, meBodyStr := ts.SendRequest(t, "GET", "/api/v1/auth/me", loginResponse.Data.AccessToken, nil)
	assert.Equal(t, http.StatusOK, meRes.StatusCode, meBodyStr)
	assert.Contains(t, meBodyStr, email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "User One",
		Email:        "duplicate@test.com",
		PasswordHash: "pass12345",
		Role:         models.UserRoleStudent,
	})

	registerBody := map[string]interface{}{
		"name":     "User Two",
		"email":    "duplicate@test.com",
		"password": "pass12345",
		"role":     "student",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Email already in use")
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	registerBody := map[string]interface{}{
		"name":     "Wannabe Admin",
		"email":    "wannabe@test.com",
		"password": "pass12345",
		"role":     "admin",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)
	_, user := helpers.CreateAndLoginUser(t, ts, "Student", fmt.Sprintf("wp_%d@test.com", time.Now().UnixNano()), "password123", models.UserRoleStudent)

	loginBody := map[string]interface{}{
		"email":    user.Email,
		"password": "wrong_password",
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

// TestRefresh_Rotation - обмен refresh-токена выдает новую пару,
// старый токен после обмена мертв.
func TestRefresh_Rotation(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	email := fmt.Sprintf("rotate_%d@test.com", time.Now().UnixNano())
	helpers.CreateUser(t, ts.DB, &models.User{
		Name:         "Rotator",
		Email:        email,
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	})

	_, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})

	var loginResponse struct {
		Data struct {
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBodyStr), &loginResponse))
	oldToken := loginResponse.Data.RefreshToken

	refRes, refBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": oldToken,
	})
	assert.Equal(t, http.StatusOK, refRes.StatusCode, refBodyStr)

	// Повторный обмен старого токена должен провалиться
	repeatRes, repeatBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": oldToken,
	})
	assert.Equal(t, http.StatusUnauthorized, repeatRes.StatusCode, repeatBodyStr)
}

// TestRefresh_CleansExpiredTokens - ротация попутно удаляет просроченные
// refresh-токены пользователя.
func TestRefresh_CleansExpiredTokens(t *testing.T) {
	t.Parallel()

	ts := helpers.NewTestServer(t)

	email := fmt.Sprintf("cleaner_%d@test.com", time.Now().UnixNano())
	user := &models.User{
		Name:         "Cleaner",
		Email:        email,
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	}
	helpers.CreateUser(t, ts.DB, user)

	expired := &models.RefreshToken{
		UserID:    user.ID,
		Token:     fmt.Sprintf("expired_token_%d", time.Now().UnixNano()),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, ts.DB.Create(expired).Error)

	_, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	var loginResponse struct {
		Data struct {
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(logBodyStr), &loginResponse))

	refRes, refBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": loginResponse.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, refRes.StatusCode, refBodyStr)

	var count int64
	ts.DB.Model(&models.RefreshToken{}).Where("token = ?", expired.Token).Count(&count)
	assert.EqualValues(t, 0, count)
}

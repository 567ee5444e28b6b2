package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок бизнес-логики
доски вакансий: аккаунты, профили, вакансии, отклики, уведомления.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - фабрика для конфликтов текущего состояния.
// По контракту API конфликт состояния отдается как 400, а не 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusBadRequest)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & Accounts ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusUnprocessableEntity,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Unauthorized",
	http.StatusForbidden,
)

// ErrCannotModifySelf - админ пытается удалить собственный аккаунт.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"You cannot delete your own account",
	http.StatusForbidden,
)

// ErrCannotDeleteAdmin - попытка удалить другой админ-аккаунт.
var ErrCannotDeleteAdmin = New(
	CodeForbidden,
	"business_logic",
	"Cannot delete admin accounts",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrProfileRequired = New(
	CodeInvalidOperation,
	"profile",
	"Please complete your employer profile first",
	http.StatusForbidden,
)

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Profile not found",
	http.StatusNotFound,
)

var ErrNoResume = New(
	CodeConflict,
	"application",
	"Please upload a resume or add one to your profile",
	http.StatusBadRequest,
)

// --- Jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

// ErrJobNotOpen - вакансия закрыта или дедлайн истек.
var ErrJobNotOpen = New(
	CodeConflict,
	"job",
	"This job is no longer accepting applications",
	http.StatusBadRequest,
)

var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Invalid job status",
	http.StatusBadRequest,
)

// --- Applications ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"You have already applied for this job",
	http.StatusBadRequest,
)

// ErrApplicationReviewed - отозвать можно только необработанный отклик.
var ErrApplicationReviewed = New(
	CodeConflict,
	"application",
	"Cannot withdraw application that has been reviewed",
	http.StatusBadRequest,
)

var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"application",
	"Invalid application status",
	http.StatusBadRequest,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// --- Uploads & Files ---

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusUnprocessableEntity,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnprocessableEntity,
)

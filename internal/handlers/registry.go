package handlers

import (
	"munext_backend/internal/services"
	"munext_backend/internal/validator"
)

// AppHandlers собирает все хендлеры приложения
type AppHandlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.Auth),
		Profile:      NewProfileHandler(base, sc.Profile),
		Job:          NewJobHandler(base, sc.Job),
		Application:  NewApplicationHandler(base, sc.Application),
		Notification: NewNotificationHandler(base, sc.Notification),
		Admin:        NewAdminHandler(base, sc.Admin),
	}
}

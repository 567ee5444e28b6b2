package services

import (
	"munext_backend/internal/config"
	"munext_backend/internal/email"
	"munext_backend/internal/repositories"
	"munext_backend/internal/storage"
)

// ServiceContainer собирает все сервисы приложения
type ServiceContainer struct {
	Auth         AuthService
	Profile      ProfileService
	Job          JobService
	Application  ApplicationService
	Notification NotificationService
	Admin        AdminService
}

// NewServiceContainer связывает репозитории, хранилище и почту в сервисы
func NewServiceContainer(store storage.Storage, emailProvider email.Provider, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	jobRepo := repositories.NewJobRepository()
	applicationRepo := repositories.NewApplicationRepository()
	notificationRepo := repositories.NewNotificationRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, emailProvider),
		Profile:      NewProfileService(profileRepo, userRepo, store, cfg.Upload),
		Job:          NewJobService(jobRepo, profileRepo, applicationRepo),
		Application:  NewApplicationService(applicationRepo, jobRepo, profileRepo, userRepo, notificationRepo, store, cfg.Upload),
		Notification: NewNotificationService(notificationRepo),
		Admin:        NewAdminService(userRepo, jobRepo, applicationRepo, notificationRepo, analyticsRepo, emailProvider),
	}
}

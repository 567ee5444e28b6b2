package services

import (
	"time"

	"munext_backend/internal/email"
	"munext_backend/internal/logger"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	Dashboard(db *gorm.DB) (*repositories.Dashboard, error)
	Analytics(db *gorm.DB) (*repositories.Analytics, error)
	Report(db *gorm.DB, reportType string) (interface{}, error)

	// User management
	ListUsers(db *gorm.DB, criteria repositories.UserCriteria) (*dto.PaginatedResponse, error)
	GetUser(db *gorm.DB, userID string) (*models.User, error)
	VerifyUser(db *gorm.DB, userID string) (*models.User, error)
	UnverifyUser(db *gorm.DB, userID string) (*models.User, error)
	DeleteUser(db *gorm.DB, actorID, userID string) error

	// Job moderation
	ListJobs(db *gorm.DB, criteria repositories.JobSearchCriteria) (*dto.PaginatedResponse, error)
	DeleteJob(db *gorm.DB, jobID string) error
	UpdateJobStatus(db *gorm.DB, jobID string, status models.JobStatus) (*models.Job, error)

	// Applications overview
	ListApplications(db *gorm.DB, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error)
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	applicationRepo  repositories.ApplicationRepository
	notificationRepo repositories.NotificationRepository
	analyticsRepo    repositories.AnalyticsRepository
	emailProvider    email.Provider
}

func NewAdminService(
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	notificationRepo repositories.NotificationRepository,
	analyticsRepo repositories.AnalyticsRepository,
	emailProvider email.Provider,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		notificationRepo: notificationRepo,
		analyticsRepo:    analyticsRepo,
		emailProvider:    emailProvider,
	}
}

func (s *AdminServiceImpl) Dashboard(db *gorm.DB) (*repositories.Dashboard, error) {
	dashboard, err := s.analyticsRepo.GetDashboard(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dashboard, nil
}

func (s *AdminServiceImpl) Analytics(db *gorm.DB) (*repositories.Analytics, error) {
	analytics, err := s.analyticsRepo.GetAnalytics(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return analytics, nil
}

// Report собирает отчет заданного типа. Неизвестный тип дает overview.
func (s *AdminServiceImpl) Report(db *gorm.DB, reportType string) (interface{}, error) {
	var (
		report interface{}
		err    error
	)
	switch reportType {
	case "users":
		report, err = s.analyticsRepo.GetUsersReport(db)
	case "jobs":
		report, err = s.analyticsRepo.GetJobsReport(db)
	case "applications":
		report, err = s.analyticsRepo.GetApplicationsReport(db)
	default:
		report, err = s.analyticsRepo.GetOverviewReport(db)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return report, nil
}

func (s *AdminServiceImpl) ListUsers(db *gorm.DB, criteria repositories.UserCriteria) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(users, total, criteria.Page, criteria.PageSize), nil
}

func (s *AdminServiceImpl) GetUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

// VerifyUser отмечает аккаунт проверенным. Уведомление пишется в той же
// транзакции, что и смена флага.
func (s *AdminServiceImpl) VerifyUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.GetUser(db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.SetVerified(tx, userID, true, &now); err != nil {
			return err
		}
		return s.notificationRepo.CreateAccountVerifiedNotification(tx, userID)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendWelcome(user.Email, user.Name); err != nil {
		logger.WithError(err).Warn("Failed to send welcome email", "user_id", userID)
	}

	return s.GetUser(db, userID)
}

func (s *AdminServiceImpl) UnverifyUser(db *gorm.DB, userID string) (*models.User, error) {
	if _, err := s.GetUser(db, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetVerified(db, userID, false, nil); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetUser(db, userID)
}

// DeleteUser удаляет аккаунт с проверкой правил самозащиты админки
func (s *AdminServiceImpl) DeleteUser(db *gorm.DB, actorID, userID string) error {
	user, err := s.GetUser(db, userID)
	if err != nil {
		return err
	}

	if !models.CanDeleteUser(actorID, user) {
		if user.ID == actorID {
			return apperrors.ErrCannotModifySelf
		}
		return apperrors.ErrCannotDeleteAdmin
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) ListJobs(db *gorm.DB, criteria repositories.JobSearchCriteria) (*dto.PaginatedResponse, error) {
	criteria.OpenOnly = false
	jobs, total, err := s.jobRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, criteria.Page, criteria.PageSize), nil
}

func (s *AdminServiceImpl) DeleteJob(db *gorm.DB, jobID string) error {
	if err := s.jobRepo.Delete(db, jobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) UpdateJobStatus(db *gorm.DB, jobID string, status models.JobStatus) (*models.Job, error) {
	if !models.IsValidJobStatus(status) {
		return nil, apperrors.ErrInvalidJobStatus
	}
	if err := s.jobRepo.UpdateStatus(db, jobID, status); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *AdminServiceImpl) ListApplications(db *gorm.DB, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error) {
	applications, total, err := s.applicationRepo.ListAll(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(applications, total, criteria.Page, criteria.PageSize), nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"munext_backend/internal/config"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/internal/storage"
	"munext_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationService interface {
	// Student side
	Apply(ctx context.Context, db *gorm.DB, studentID, jobID string, req *dto.ApplyRequest, resume *multipart.FileHeader) (*models.Application, error)
	MyApplications(db *gorm.DB, studentID string, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error)
	GetForStudent(db *gorm.DB, studentID, applicationID string) (*models.Application, error)
	Withdraw(db *gorm.DB, studentID, applicationID string) error

	// Employer side
	ListForJob(db *gorm.DB, employerID, jobID string, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error)
	GetForEmployer(db *gorm.DB, employerID, applicationID string) (*models.Application, error)
	UpdateStatus(db *gorm.DB, employerID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
	UpdateNotes(db *gorm.DB, employerID, applicationID, notes string) (*models.Application, error)
}

type ApplicationServiceImpl struct {
	applicationRepo  repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	storage          storage.Storage
	uploadCfg        config.UploadConfig
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	store storage.Storage,
	uploadCfg config.UploadConfig,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo:  applicationRepo,
		jobRepo:          jobRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		storage:          store,
		uploadCfg:        uploadCfg,
	}
}

// Apply - подача отклика. Отклик и уведомление работодателю пишутся
// в одной транзакции: либо есть оба, либо ни одного.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, studentID, jobID string, req *dto.ApplyRequest, resume *multipart.FileHeader) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !models.IsOpenForApplication(job, time.Now()) {
		return nil, apperrors.ErrJobNotOpen
	}

	student, err := s.userRepo.FindByID(db, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !student.IsStudent() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	// Проверка дубликата идет до загрузки резюме: на отказе файл не должен
	// оставаться в хранилище. Гонку закрывает уникальный индекс при вставке.
	if _, err := s.applicationRepo.FindByJobAndStudent(db, jobID, studentID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if !apperrors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := validateRequiredAnswers(job.ScreeningQuestions, req.ScreeningAnswers); err != nil {
		return nil, err
	}

	resumePath, err := s.resolveResume(ctx, db, studentID, resume)
	if err != nil {
		return nil, err
	}

	answers, err := marshalAnswers(req.ScreeningAnswers)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	application := &models.Application{
		JobID:            jobID,
		StudentID:        studentID,
		CoverLetter:      req.CoverLetter,
		ResumePath:       resumePath,
		Status:           models.ApplicationStatusPending,
		ScreeningAnswers: answers,
		AppliedAt:        time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.Create(tx, application); err != nil {
			return err
		}
		return s.notificationRepo.CreateNewApplicationNotification(
			tx, job.EmployerID, job.ID, application.ID, student.Name, job.Title)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	return s.applicationRepo.FindByIDWithRelations(db, application.ID)
}

func (s *ApplicationServiceImpl) MyApplications(db *gorm.DB, studentID string, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error) {
	applications, total, err := s.applicationRepo.ListByStudent(db, studentID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(applications, total, criteria.Page, criteria.PageSize), nil
}

func (s *ApplicationServiceImpl) GetForStudent(db *gorm.DB, studentID, applicationID string) (*models.Application, error) {
	application, err := s.findApplication(db, applicationID)
	if err != nil {
		return nil, err
	}
	if application.StudentID != studentID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return application, nil
}

// Withdraw - отзыв отклика. Разрешен только пока статус pending.
func (s *ApplicationServiceImpl) Withdraw(db *gorm.DB, studentID, applicationID string) error {
	application, err := s.GetForStudent(db, studentID, applicationID)
	if err != nil {
		return err
	}

	if !models.CanWithdraw(application) {
		return apperrors.ErrApplicationReviewed
	}

	if err := s.applicationRepo.Delete(db, applicationID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationServiceImpl) ListForJob(db *gorm.DB, employerID, jobID string, criteria repositories.ApplicationCriteria) (*dto.PaginatedResponse, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, total, err := s.applicationRepo.ListByJob(db, jobID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(applications, total, criteria.Page, criteria.PageSize), nil
}

func (s *ApplicationServiceImpl) GetForEmployer(db *gorm.DB, employerID, applicationID string) (*models.Application, error) {
	application, err := s.findApplication(db, applicationID)
	if err != nil {
		return nil, err
	}
	if application.Job == nil || application.Job.EmployerID != employerID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return application, nil
}

// UpdateStatus меняет статус отклика. Переходы reviewed/shortlisted/rejected
// создают уведомление студенту в той же транзакции, что и смена статуса.
func (s *ApplicationServiceImpl) UpdateStatus(db *gorm.DB, employerID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	if !models.IsValidApplicationStatus(status) {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	application, err := s.GetForEmployer(db, employerID, applicationID)
	if err != nil {
		return nil, err
	}

	// reviewed_at обновляется при любой смене статуса, включая возврат в pending
	now := time.Now()
	reviewedAt := &now

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.UpdateStatus(tx, applicationID, status, reviewedAt); err != nil {
			return err
		}
		if models.StatusNotifiesApplicant(status) {
			return s.notificationRepo.CreateApplicationStatusNotification(
				tx, application.StudentID, application.JobID, application.ID, application.Job.Title, status)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.applicationRepo.FindByIDWithRelations(db, applicationID)
}

func (s *ApplicationServiceImpl) UpdateNotes(db *gorm.DB, employerID, applicationID, notes string) (*models.Application, error) {
	if _, err := s.GetForEmployer(db, employerID, applicationID); err != nil {
		return nil, err
	}
	if err := s.applicationRepo.UpdateNotes(db, applicationID, notes); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.applicationRepo.FindByIDWithRelations(db, applicationID)
}

func (s *ApplicationServiceImpl) findApplication(db *gorm.DB, applicationID string) (*models.Application, error) {
	application, err := s.applicationRepo.FindByIDWithRelations(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

// resolveResume выбирает резюме отклика: загруженный файл, иначе
// резюме из профиля. Без резюме отклик не принимается.
func (s *ApplicationServiceImpl) resolveResume(ctx context.Context, db *gorm.DB, studentID string, resume *multipart.FileHeader) (string, error) {
	if resume != nil {
		if err := validateUpload(resume, s.uploadCfg.MaxResumeSize, s.uploadCfg.ResumeTypes); err != nil {
			return "", err
		}

		path := fmt.Sprintf("application_resumes/%s/%s%s", studentID, uuid.NewString(), filepath.Ext(resume.Filename))
		src, err := resume.Open()
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		defer src.Close()

		if err := s.storage.Save(ctx, path, src, resume.Header.Get("Content-Type")); err != nil {
			return "", apperrors.InternalError(err)
		}
		return path, nil
	}

	profile, err := s.profileRepo.FindStudentProfileByUserID(db, studentID)
	if err == nil && profile.HasResume() {
		return profile.ResumePath, nil
	}
	return "", apperrors.ErrNoResume
}

// validateRequiredAnswers требует непустой ответ на каждый обязательный
// вопрос вакансии. Ответы ключуются по id вопроса.
func validateRequiredAnswers(questions []models.ScreeningQuestion, answers map[string]string) error {
	missing := map[string]string{}
	for _, question := range questions {
		if !question.IsRequired {
			continue
		}
		if strings.TrimSpace(answers[question.ID]) == "" {
			missing["screening_answers."+question.ID] = "Answer is required"
		}
	}
	if len(missing) > 0 {
		return apperrors.ValidationError(missing)
	}
	return nil
}

func marshalAnswers(answers map[string]string) (datatypes.JSON, error) {
	if answers == nil {
		answers = map[string]string{}
	}
	data, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

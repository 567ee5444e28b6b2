package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"munext_backend/internal/config"
	"munext_backend/internal/logger"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/internal/storage"
	"munext_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	// Student profile
	GetStudentProfile(db *gorm.DB, userID string) (*models.StudentProfile, error)
	UpsertStudentProfile(db *gorm.DB, userID string, req *dto.StudentProfileRequest) (*models.StudentProfile, error)
	UploadResume(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.FileResponse, error)
	DeleteResume(ctx context.Context, db *gorm.DB, userID string) error

	// Employer profile
	GetEmployerProfile(db *gorm.DB, userID string) (*models.EmployerProfile, error)
	UpsertEmployerProfile(db *gorm.DB, userID string, req *dto.EmployerProfileRequest) (*models.EmployerProfile, error)
	UploadLogo(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.FileResponse, error)
	DeleteLogo(ctx context.Context, db *gorm.DB, userID string) error

	// Public views
	GetPublicStudentProfile(db *gorm.DB, userID string) (*models.User, error)
	GetPublicEmployerProfile(db *gorm.DB, userID string) (*models.User, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	storage     storage.Storage
	uploadCfg   config.UploadConfig
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
	uploadCfg config.UploadConfig,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		storage:     store,
		uploadCfg:   uploadCfg,
	}
}

// ---------------- Student ----------------

func (s *ProfileServiceImpl) GetStudentProfile(db *gorm.DB, userID string) (*models.StudentProfile, error) {
	profile, err := s.profileRepo.FindStudentProfileByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpsertStudentProfile(db *gorm.DB, userID string, req *dto.StudentProfileRequest) (*models.StudentProfile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !user.IsStudent() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile := &models.StudentProfile{
		UserID:            userID,
		StudentNumber:     req.StudentNumber,
		Program:           req.Program,
		Faculty:           req.Faculty,
		GraduationYear:    req.GraduationYear,
		GPA:               req.GPA,
		Bio:               req.Bio,
		LinkedinURL:       req.LinkedinURL,
		GithubURL:         req.GithubURL,
		PortfolioURL:      req.PortfolioURL,
		Phone:             req.Phone,
		Location:          req.Location,
		AvailableFrom:     req.AvailableFrom,
		WorkAuthorization: req.WorkAuthorization,
	}
	profile.SetSkills(req.Skills)

	if err := s.profileRepo.UpsertStudentProfile(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Перечитываем: upsert не возвращает сохраненный resume_path
	return s.GetStudentProfile(db, userID)
}

func (s *ProfileServiceImpl) UploadResume(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.FileResponse, error) {
	profile, err := s.GetStudentProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if err := validateUpload(file, s.uploadCfg.MaxResumeSize, s.uploadCfg.ResumeTypes); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.saveUpload(ctx, path, file); err != nil {
		return nil, apperrors.InternalError(err)
	}

	oldPath := profile.ResumePath
	if err := s.profileRepo.UpdateStudentResume(db, userID, path); err != nil {
		// Запись не обновилась, свежезалитый файл не нужен
		_ = s.storage.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	// Старый файл удаляется после фиксации нового пути.
	// Неудачное удаление оставляет мусор, но не ломает замену.
	if oldPath != "" {
		if err := s.storage.Delete(ctx, oldPath); err != nil {
			logger.WithError(err).Warn("Failed to delete old resume", "path", oldPath)
		}
	}

	url, _ := s.storage.GetURL(ctx, path)
	return &dto.FileResponse{Path: path, URL: url}, nil
}

func (s *ProfileServiceImpl) DeleteResume(ctx context.Context, db *gorm.DB, userID string) error {
	profile, err := s.GetStudentProfile(db, userID)
	if err != nil {
		return err
	}
	if profile.ResumePath == "" {
		return nil
	}

	if err := s.profileRepo.UpdateStudentResume(db, userID, ""); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.storage.Delete(ctx, profile.ResumePath); err != nil {
		logger.WithError(err).Warn("Failed to delete resume file", "path", profile.ResumePath)
	}
	return nil
}

// ---------------- Employer ----------------

func (s *ProfileServiceImpl) GetEmployerProfile(db *gorm.DB, userID string) (*models.EmployerProfile, error) {
	profile, err := s.profileRepo.FindEmployerProfileByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpsertEmployerProfile(db *gorm.DB, userID string, req *dto.EmployerProfileRequest) (*models.EmployerProfile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !user.IsEmployer() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	profile := &models.EmployerProfile{
		UserID:             userID,
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Industry:           req.Industry,
		CompanySize:        req.CompanySize,
		Website:            req.Website,
		ContactPerson:      req.ContactPerson,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		Location:           req.Location,
		FoundedYear:        req.FoundedYear,
	}

	if err := s.profileRepo.UpsertEmployerProfile(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetEmployerProfile(db, userID)
}

func (s *ProfileServiceImpl) UploadLogo(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.FileResponse, error) {
	profile, err := s.GetEmployerProfile(db, userID)
	if err != nil {
		return nil, err
	}

	if err := validateUpload(file, s.uploadCfg.MaxLogoSize, s.uploadCfg.LogoTypes); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("logos/%s/%s%s", userID, uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.saveUpload(ctx, path, file); err != nil {
		return nil, apperrors.InternalError(err)
	}

	oldPath := profile.LogoPath
	if err := s.profileRepo.UpdateEmployerLogo(db, userID, path); err != nil {
		_ = s.storage.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	if oldPath != "" {
		if err := s.storage.Delete(ctx, oldPath); err != nil {
			logger.WithError(err).Warn("Failed to delete old logo", "path", oldPath)
		}
	}

	url, _ := s.storage.GetURL(ctx, path)
	return &dto.FileResponse{Path: path, URL: url}, nil
}

func (s *ProfileServiceImpl) DeleteLogo(ctx context.Context, db *gorm.DB, userID string) error {
	profile, err := s.GetEmployerProfile(db, userID)
	if err != nil {
		return err
	}
	if profile.LogoPath == "" {
		return nil
	}

	if err := s.profileRepo.UpdateEmployerLogo(db, userID, ""); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.storage.Delete(ctx, profile.LogoPath); err != nil {
		logger.WithError(err).Warn("Failed to delete logo file", "path", profile.LogoPath)
	}
	return nil
}

// ---------------- Public views ----------------

func (s *ProfileServiceImpl) GetPublicStudentProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(db, userID)
	if err != nil || !user.IsStudent() || user.StudentProfile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return user, nil
}

func (s *ProfileServiceImpl) GetPublicEmployerProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(db, userID)
	if err != nil || !user.IsEmployer() || user.EmployerProfile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return user, nil
}

// ---------------- Helpers ----------------

func (s *ProfileServiceImpl) saveUpload(ctx context.Context, path string, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	return s.storage.Save(ctx, path, src, contentType)
}

// validateUpload проверяет размер и MIME-тип до записи в хранилище
func validateUpload(file *multipart.FileHeader, maxSize int64, allowedTypes []string) error {
	if file == nil {
		return apperrors.NewBadRequestError("No file provided")
	}
	if file.Size > maxSize {
		return apperrors.ErrFileTooLarge
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(file.Header.Get("Content-Type"), ";")[0]))
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return apperrors.ErrInvalidFileType
}

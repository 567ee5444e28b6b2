package repositories

import (
	"errors"

	"munext_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	// Student profile
	UpsertStudentProfile(db *gorm.DB, profile *models.StudentProfile) error
	FindStudentProfileByUserID(db *gorm.DB, userID string) (*models.StudentProfile, error)
	UpdateStudentResume(db *gorm.DB, userID, path string) error

	// Employer profile
	UpsertEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error
	FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error)
	UpdateEmployerLogo(db *gorm.DB, userID, path string) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

// UpsertStudentProfile создает или обновляет профиль по user_id.
// resume_path намеренно не входит в список обновляемых колонок:
// путь к резюме меняется только через UpdateStudentResume.
func (r *ProfileRepositoryImpl) UpsertStudentProfile(db *gorm.DB, profile *models.StudentProfile) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"student_number", "program", "faculty", "graduation_year", "gpa",
			"bio", "skills", "linkedin_url", "github_url", "portfolio_url",
			"phone", "location", "available_from", "work_authorization",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindStudentProfileByUserID(db *gorm.DB, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateStudentResume(db *gorm.DB, userID, path string) error {
	result := db.Model(&models.StudentProfile{}).Where("user_id = ?", userID).
		Update("resume_path", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// UpsertEmployerProfile создает или обновляет профиль по user_id.
// logo_path обновляется только через UpdateEmployerLogo.
func (r *ProfileRepositoryImpl) UpsertEmployerProfile(db *gorm.DB, profile *models.EmployerProfile) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_name", "company_description", "industry", "company_size",
			"website", "contact_person", "contact_email", "contact_phone",
			"location", "founded_year", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindEmployerProfileByUserID(db *gorm.DB, userID string) (*models.EmployerProfile, error) {
	var profile models.EmployerProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateEmployerLogo(db *gorm.DB, userID, path string) error {
	result := db.Model(&models.EmployerProfile{}).Where("user_id = ?", userID).
		Update("logo_path", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

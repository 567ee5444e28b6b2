package repositories

import (
	"errors"
	"time"

	"munext_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	FindByIDWithRelations(db *gorm.DB, id string) (*models.Application, error)
	FindByJobAndStudent(db *gorm.DB, jobID, studentID string) (*models.Application, error)
	ListByStudent(db *gorm.DB, studentID string, criteria ApplicationCriteria) ([]models.Application, int64, error)
	ListByJob(db *gorm.DB, jobID string, criteria ApplicationCriteria) ([]models.Application, int64, error)
	ListAll(db *gorm.DB, criteria ApplicationCriteria) ([]models.Application, int64, error)
	UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, reviewedAt *time.Time) error
	UpdateNotes(db *gorm.DB, id string, notes string) error
	Delete(db *gorm.DB, id string) error
}

type ApplicationRepositoryImpl struct{}

// ApplicationCriteria фильтры списков откликов
type ApplicationCriteria struct {
	Status   string `form:"status" binding:"omitempty,is-application-status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create вставляет отклик. Составной уникальный индекс (job_id, student_id)
// гарантирует не больше одного отклика на вакансию даже при гонке
// параллельных запросов.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	if err := db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByIDWithRelations(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Job").Preload("Job.Employer").Preload("Job.Employer.EmployerProfile").
		Preload("Student").Preload("Student.StudentProfile").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndStudent(db *gorm.DB, jobID, studentID string) (*models.Application, error) {
	var application models.Application
	err := db.First(&application, "job_id = ? AND student_id = ?", jobID, studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) ListByStudent(db *gorm.DB, studentID string, criteria ApplicationCriteria) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Where("student_id = ?", studentID)
	return r.list(query, criteria, "Job", "Job.Employer", "Job.Employer.EmployerProfile")
}

func (r *ApplicationRepositoryImpl) ListByJob(db *gorm.DB, jobID string, criteria ApplicationCriteria) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Where("job_id = ?", jobID)
	return r.list(query, criteria, "Student", "Student.StudentProfile")
}

func (r *ApplicationRepositoryImpl) ListAll(db *gorm.DB, criteria ApplicationCriteria) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{})
	return r.list(query, criteria, "Student", "Job", "Job.Employer")
}

func (r *ApplicationRepositoryImpl) list(query *gorm.DB, criteria ApplicationCriteria, preloads ...string) ([]models.Application, int64, error) {
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(criteria.Page, criteria.PageSize)

	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var applications []models.Application
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus, reviewedAt *time.Time) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": reviewedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdateNotes(db *gorm.DB, id string, notes string) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).Update("notes", notes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

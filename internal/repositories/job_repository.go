package repositories

import (
	"errors"
	"time"

	"munext_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindByIDWithRelations(db *gorm.DB, id string) (*models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error
	Delete(db *gorm.DB, id string) error

	// Публичный поиск и админский список
	Search(db *gorm.DB, criteria JobSearchCriteria) ([]models.Job, int64, error)
	FindByEmployer(db *gorm.DB, employerID string, page, pageSize int) ([]models.Job, int64, error)
	IncrementViews(db *gorm.DB, id string) error

	// Screening questions
	ReplaceScreeningQuestions(db *gorm.DB, jobID string, questions []models.ScreeningQuestion) error

	// Saved jobs
	SaveJob(db *gorm.DB, userID, jobID string) error
	UnsaveJob(db *gorm.DB, userID, jobID string) error
	IsJobSaved(db *gorm.DB, userID, jobID string) (bool, error)
	FindSavedJobs(db *gorm.DB, userID string, page, pageSize int) ([]models.Job, int64, error)
}

type JobRepositoryImpl struct{}

// JobSearchCriteria фильтры публичного поиска и админского списка
type JobSearchCriteria struct {
	Search          string `form:"search"`
	Category        string `form:"category"`
	JobType         string `form:"job_type" binding:"omitempty,is-job-type"`
	ExperienceLevel string `form:"experience_level" binding:"omitempty,is-experience-level"`
	Location        string `form:"location"`
	IsRemote        *bool  `form:"is_remote"`
	Status          string `form:"status" binding:"omitempty,is-job-status"`
	Page            int    `form:"page"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`

	// OpenOnly включает предикат "принимает отклики": статус open
	// и дедлайн не прошел. Публичный список всегда ставит его.
	OpenOnly bool `form:"-"`
}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	// Создает вакансию вместе с вложенными screening questions
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDWithRelations(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Employer").Preload("Employer.EmployerProfile").
		Preload("ScreeningQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`screening_questions."order" ASC`)
		}).
		First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	return db.Omit("ScreeningQuestions", "Employer", "Applications").Save(job).Error
}

func (r *JobRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.JobStatus) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Search(db *gorm.DB, criteria JobSearchCriteria) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{})

	if criteria.OpenOnly {
		query = query.Where("status = ?", models.JobStatusOpen).
			Where("application_deadline IS NULL OR application_deadline >= ?", time.Now())
	} else if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.JobType != "" {
		query = query.Where("job_type = ?", criteria.JobType)
	}
	if criteria.ExperienceLevel != "" {
		query = query.Where("experience_level = ?", criteria.ExperienceLevel)
	}
	if criteria.Location != "" {
		query = query.Where("location ILIKE ?", "%"+criteria.Location+"%")
	}
	if criteria.IsRemote != nil {
		query = query.Where("is_remote = ?", *criteria.IsRemote)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(criteria.Page, criteria.PageSize)

	var jobs []models.Job
	err := query.Preload("Employer").Preload("Employer.EmployerProfile").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepositoryImpl) FindByEmployer(db *gorm.DB, employerID string, page, pageSize int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).Where("employer_id = ?", employerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)

	var jobs []models.Job
	err := query.
		Select("jobs.*, (SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id) AS applications_count").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// IncrementViews атомарно увеличивает счетчик просмотров.
// Параллельные просмотры не теряются.
func (r *JobRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Job{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// ReplaceScreeningQuestions заменяет весь набор вопросов вакансии
func (r *JobRepositoryImpl) ReplaceScreeningQuestions(db *gorm.DB, jobID string, questions []models.ScreeningQuestion) error {
	if err := db.Delete(&models.ScreeningQuestion{}, "job_id = ?", jobID).Error; err != nil {
		return err
	}
	if len(questions) == 0 {
		return nil
	}
	for i := range questions {
		questions[i].JobID = jobID
	}
	return db.Create(&questions).Error
}

// Saved jobs

func (r *JobRepositoryImpl) SaveJob(db *gorm.DB, userID, jobID string) error {
	return db.Exec(
		"INSERT INTO saved_jobs (user_id, job_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		userID, jobID,
	).Error
}

func (r *JobRepositoryImpl) UnsaveJob(db *gorm.DB, userID, jobID string) error {
	return db.Exec(
		"DELETE FROM saved_jobs WHERE user_id = ? AND job_id = ?",
		userID, jobID,
	).Error
}

func (r *JobRepositoryImpl) IsJobSaved(db *gorm.DB, userID, jobID string) (bool, error) {
	var count int64
	err := db.Table("saved_jobs").
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *JobRepositoryImpl) FindSavedJobs(db *gorm.DB, userID string, page, pageSize int) ([]models.Job, int64, error) {
	query := db.Model(&models.Job{}).
		Joins("JOIN saved_jobs ON saved_jobs.job_id = jobs.id").
		Where("saved_jobs.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)

	var jobs []models.Job
	err := query.Preload("Employer").Preload("Employer.EmployerProfile").
		Order("jobs.created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

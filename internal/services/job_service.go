package services

import (
	"encoding/json"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	// Public board
	ListJobs(db *gorm.DB, criteria repositories.JobSearchCriteria) (*dto.PaginatedResponse, error)
	GetJob(db *gorm.DB, jobID, viewerID string) (*dto.JobDetailResponse, error)

	// Employer side
	CreateJob(db *gorm.DB, employerID string, req *dto.JobRequest) (*models.Job, error)
	UpdateJob(db *gorm.DB, employerID, jobID string, req *dto.JobRequest) (*models.Job, error)
	UpdateJobStatus(db *gorm.DB, employerID, jobID string, status models.JobStatus) (*models.Job, error)
	DeleteJob(db *gorm.DB, employerID, jobID string) error
	MyJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.PaginatedResponse, error)

	// Student side
	ToggleSavedJob(db *gorm.DB, studentID, jobID string) (bool, error)
	ListSavedJobs(db *gorm.DB, studentID string, page, pageSize int) (*dto.PaginatedResponse, error)
}

type JobServiceImpl struct {
	jobRepo         repositories.JobRepository
	profileRepo     repositories.ProfileRepository
	applicationRepo repositories.ApplicationRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	profileRepo repositories.ProfileRepository,
	applicationRepo repositories.ApplicationRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:         jobRepo,
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
	}
}

// ListJobs - публичная доска. Показывает только вакансии,
// принимающие отклики.
func (s *JobServiceImpl) ListJobs(db *gorm.DB, criteria repositories.JobSearchCriteria) (*dto.PaginatedResponse, error) {
	criteria.OpenOnly = true
	jobs, total, err := s.jobRepo.Search(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, criteria.Page, criteria.PageSize), nil
}

// GetJob - публичная карточка вакансии. Каждый просмотр атомарно
// увеличивает счетчик.
func (s *JobServiceImpl) GetJob(db *gorm.DB, jobID, viewerID string) (*dto.JobDetailResponse, error) {
	job, err := s.jobRepo.FindByIDWithRelations(db, jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.jobRepo.IncrementViews(db, jobID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	job.ViewsCount++

	resp := &dto.JobDetailResponse{Job: job}
	if viewerID != "" {
		if saved, err := s.jobRepo.IsJobSaved(db, viewerID, jobID); err == nil {
			resp.IsSaved = saved
		}
		if _, err := s.applicationRepo.FindByJobAndStudent(db, jobID, viewerID); err == nil {
			resp.HasApplied = true
		}
	}

	return resp, nil
}

// CreateJob требует заполненного профиля работодателя
func (s *JobServiceImpl) CreateJob(db *gorm.DB, employerID string, req *dto.JobRequest) (*models.Job, error) {
	if _, err := s.profileRepo.FindEmployerProfileByUserID(db, employerID); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileRequired
		}
		return nil, apperrors.InternalError(err)
	}

	if err := validateSalaryRange(req); err != nil {
		return nil, err
	}

	job := buildJob(req)
	job.EmployerID = employerID
	job.Status = models.JobStatusOpen
	job.ScreeningQuestions = buildScreeningQuestions(req.ScreeningQuestions)

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.jobRepo.FindByIDWithRelations(db, job.ID)
}

// UpdateJob разрешен только владельцу вакансии
func (s *JobServiceImpl) UpdateJob(db *gorm.DB, employerID, jobID string, req *dto.JobRequest) (*models.Job, error) {
	job, err := s.findOwnedJob(db, employerID, jobID)
	if err != nil {
		return nil, err
	}

	if err := validateSalaryRange(req); err != nil {
		return nil, err
	}

	updated := buildJob(req)
	updated.BaseModel = job.BaseModel
	updated.EmployerID = job.EmployerID
	updated.Status = job.Status
	updated.ViewsCount = job.ViewsCount

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.jobRepo.Update(tx, updated); err != nil {
			return err
		}
		return s.jobRepo.ReplaceScreeningQuestions(tx, jobID, buildScreeningQuestions(req.ScreeningQuestions))
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.jobRepo.FindByIDWithRelations(db, jobID)
}

func (s *JobServiceImpl) UpdateJobStatus(db *gorm.DB, employerID, jobID string, status models.JobStatus) (*models.Job, error) {
	if !models.IsValidJobStatus(status) {
		return nil, apperrors.ErrInvalidJobStatus
	}

	if _, err := s.findOwnedJob(db, employerID, jobID); err != nil {
		return nil, err
	}

	if err := s.jobRepo.UpdateStatus(db, jobID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.jobRepo.FindByID(db, jobID)
}

func (s *JobServiceImpl) DeleteJob(db *gorm.DB, employerID, jobID string) error {
	if _, err := s.findOwnedJob(db, employerID, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(db, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) MyJobs(db *gorm.DB, employerID string, page, pageSize int) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.FindByEmployer(db, employerID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, page, pageSize), nil
}

// ToggleSavedJob добавляет вакансию в сохраненные или убирает из них.
// Возвращает новое состояние.
func (s *JobServiceImpl) ToggleSavedJob(db *gorm.DB, studentID, jobID string) (bool, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return false, apperrors.ErrJobNotFound
		}
		return false, apperrors.InternalError(err)
	}

	saved, err := s.jobRepo.IsJobSaved(db, studentID, jobID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}

	if saved {
		if err := s.jobRepo.UnsaveJob(db, studentID, jobID); err != nil {
			return false, apperrors.InternalError(err)
		}
		return false, nil
	}

	if err := s.jobRepo.SaveJob(db, studentID, jobID); err != nil {
		return false, apperrors.InternalError(err)
	}
	return true, nil
}

func (s *JobServiceImpl) ListSavedJobs(db *gorm.DB, studentID string, page, pageSize int) (*dto.PaginatedResponse, error) {
	jobs, total, err := s.jobRepo.FindSavedJobs(db, studentID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(jobs, total, page, pageSize), nil
}

// findOwnedJob возвращает вакансию, если она принадлежит работодателю
func (s *JobServiceImpl) findOwnedJob(db *gorm.DB, employerID, jobID string) (*models.Job, error) {
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
	return job, nil
}

func buildJob(req *dto.JobRequest) *models.Job {
	salaryPeriod := req.SalaryPeriod
	if salaryPeriod == "" {
		salaryPeriod = "per year"
	}
	return &models.Job{
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		JobType:             models.JobType(req.JobType),
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		SalaryPeriod:        salaryPeriod,
		ExperienceLevel:     models.ExperienceLevel(req.ExperienceLevel),
		Category:            req.Category,
		SkillsRequired:      toJSONArray(req.SkillsRequired),
		Benefits:            toJSONArray(req.Benefits),
		ApplicationDeadline: req.ApplicationDeadline,
		StartDate:           req.StartDate,
		IsRemote:            req.IsRemote,
	}
}

func buildScreeningQuestions(reqs []dto.ScreeningQuestionRequest) []models.ScreeningQuestion {
	questions := make([]models.ScreeningQuestion, 0, len(reqs))
	for i, q := range reqs {
		questionType := models.QuestionType(q.QuestionType)
		if questionType == "" {
			questionType = models.QuestionTypeText
		}
		isRequired := true
		if q.IsRequired != nil {
			isRequired = *q.IsRequired
		}
		order := q.Order
		if order == 0 {
			order = i
		}
		questions = append(questions, models.ScreeningQuestion{
			Question:     q.Question,
			QuestionType: questionType,
			IsRequired:   isRequired,
			Options:      toJSONArray(q.Options),
			Order:        order,
		})
	}
	return questions
}

func validateSalaryRange(req *dto.JobRequest) error {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return apperrors.ValidationError(map[string]string{
			"salary_max": "Must be greater than or equal to salary_min",
		})
	}
	return nil
}

func toJSONArray(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return datatypes.JSON(data)
}

package dto

import (
	"time"

	"munext_backend/internal/models"
)

type ScreeningQuestionRequest struct {
	Question     string   `json:"question" binding:"required,max=500"`
	QuestionType string   `json:"question_type" binding:"omitempty,is-question-type"`
	IsRequired   *bool    `json:"is_required"`
	Options      []string `json:"options" binding:"omitempty,max=20"`
	Order        int      `json:"order" binding:"omitempty,min=0"`
}

type JobRequest struct {
	Title               string                     `json:"title" binding:"required,max=200"`
	Description         string                     `json:"description" binding:"required"`
	Requirements        string                     `json:"requirements"`
	Responsibilities    string                     `json:"responsibilities"`
	JobType             string                     `json:"job_type" binding:"required,is-job-type"`
	Location            string                     `json:"location" binding:"required,max=150"`
	SalaryMin           *float64                   `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax           *float64                   `json:"salary_max" binding:"omitempty,min=0"`
	SalaryPeriod        string                     `json:"salary_period" binding:"omitempty,max=30"`
	ExperienceLevel     string                     `json:"experience_level" binding:"required,is-experience-level"`
	Category            string                     `json:"category" binding:"required,max=100"`
	SkillsRequired      []string                   `json:"skills_required" binding:"omitempty,max=50"`
	Benefits            []string                   `json:"benefits" binding:"omitempty,max=50"`
	ApplicationDeadline *time.Time                 `json:"application_deadline"`
	StartDate           *time.Time                 `json:"start_date"`
	IsRemote            bool                       `json:"is_remote"`
	ScreeningQuestions  []ScreeningQuestionRequest `json:"screening_questions" binding:"omitempty,max=20,dive"`
}

type JobStatusRequest struct {
	Status string `json:"status" binding:"required,is-job-status"`
}

// JobDetailResponse публичная карточка вакансии. Флаги заполняются
// только для аутентифицированного студента.
type JobDetailResponse struct {
	*models.Job
	IsSaved    bool `json:"is_saved"`
	HasApplied bool `json:"has_applied"`
}

type SavedJobResponse struct {
	Saved bool `json:"saved"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	EmployerID          string          `gorm:"not null;index" json:"employer_id"`
	Title               string          `gorm:"not null" json:"title"`
	Description         string          `gorm:"not null" json:"description"`
	Requirements        string          `json:"requirements"`
	Responsibilities    string          `json:"responsibilities"`
	JobType             JobType         `gorm:"type:varchar(20);not null" json:"job_type"`
	Location            string          `gorm:"not null" json:"location"`
	SalaryMin           *float64        `json:"salary_min"`
	SalaryMax           *float64        `json:"salary_max"`
	SalaryPeriod        string          `gorm:"default:'per year'" json:"salary_period"`
	ExperienceLevel     ExperienceLevel `gorm:"type:varchar(20);not null" json:"experience_level"`
	Category            string          `gorm:"not null;index" json:"category"`
	SkillsRequired      datatypes.JSON  `gorm:"type:jsonb" json:"skills_required"`
	Benefits            datatypes.JSON  `gorm:"type:jsonb" json:"benefits"`
	ApplicationDeadline *time.Time      `json:"application_deadline"`
	StartDate           *time.Time      `json:"start_date"`
	IsRemote            bool            `gorm:"default:false" json:"is_remote"`
	Status              JobStatus       `gorm:"type:varchar(20);default:'open'" json:"status"`
	ViewsCount          int             `gorm:"default:0" json:"views_count"`

	// Relations
	Employer           *User               `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"employer,omitempty"`
	ScreeningQuestions []ScreeningQuestion `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"screening_questions,omitempty"`
	Applications       []Application       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`

	// Заполняется подзапросом в списке вакансий работодателя
	ApplicationsCount int64 `gorm:"->;-:migration" json:"applications_count,omitempty"`
}

type ScreeningQuestion struct {
	BaseModel
	JobID        string         `gorm:"not null;index" json:"job_id"`
	Question     string         `gorm:"not null" json:"question"`
	QuestionType QuestionType   `gorm:"type:varchar(20);default:'text'" json:"question_type"`
	IsRequired   bool           `gorm:"default:true" json:"is_required"`
	Options      datatypes.JSON `gorm:"type:jsonb" json:"options"` // для multiple_choice
	Order        int            `gorm:"column:order;default:0" json:"order"`
}

// IsOpenForApplication - производный предикат "вакансия принимает отклики":
// статус open и дедлайн либо не задан, либо еще не прошел.
// Чистая функция над состоянием, без обращения к хранилищу.
func IsOpenForApplication(job *Job, now time.Time) bool {
	if job.Status != JobStatusOpen {
		return false
	}
	if job.ApplicationDeadline == nil {
		return true
	}
	return !job.ApplicationDeadline.Before(now)
}

// HasDeadlinePassed сообщает, истек ли дедлайн подачи
func HasDeadlinePassed(job *Job, now time.Time) bool {
	if job.ApplicationDeadline == nil {
		return false
	}
	return job.ApplicationDeadline.Before(now)
}

// IsValidJobStatus проверяет входной статус вакансии
func IsValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusFilled:
		return true
	}
	return false
}

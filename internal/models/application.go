package models

import (
	"time"

	"gorm.io/datatypes"
)

type Application struct {
	BaseModel
	JobID            string            `gorm:"not null;uniqueIndex:idx_applications_job_student" json:"job_id"`
	StudentID        string            `gorm:"not null;uniqueIndex:idx_applications_job_student" json:"student_id"`
	CoverLetter      string            `gorm:"not null" json:"cover_letter"`
	ResumePath       string            `json:"resume_path"`
	Status           ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ScreeningAnswers datatypes.JSON    `gorm:"type:jsonb" json:"screening_answers"` // {"question_id": "answer"}
	AppliedAt        time.Time         `gorm:"not null" json:"applied_at"`
	ReviewedAt       *time.Time        `json:"reviewed_at"`
	Notes            string            `json:"notes"`

	// Relations
	Job     *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (a *Application) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// IsValidApplicationStatus проверяет входной статус отклика
func IsValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusShortlisted, ApplicationStatusRejected:
		return true
	}
	return false
}

// CanWithdraw - отзыв разрешен только пока отклик не обработан
func CanWithdraw(a *Application) bool {
	return a.Status == ApplicationStatusPending
}

// StatusNotifiesApplicant - переходы, порождающие уведомление студенту.
// Возврат в pending уведомления не создает.
func StatusNotifiesApplicant(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusReviewed, ApplicationStatusShortlisted, ApplicationStatusRejected:
		return true
	}
	return false
}

// ApplicantStatusMessage - человекочитаемая часть уведомления о смене статуса
func ApplicantStatusMessage(s ApplicationStatus) string {
	switch s {
	case ApplicationStatusReviewed:
		return "Your application has been reviewed"
	case ApplicationStatusShortlisted:
		return "Congratulations! You have been shortlisted"
	case ApplicationStatusRejected:
		return "Your application status has been updated"
	}
	return ""
}

package models

type UserRole string
type JobStatus string
type JobType string
type ExperienceLevel string
type ApplicationStatus string
type QuestionType string

const (
	UserRoleStudent  UserRole = "student"
	UserRoleAlumni   UserRole = "alumni"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusFilled JobStatus = "filled"

	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeCoop       JobType = "co-op"

	ExperienceLevelEntry        ExperienceLevel = "entry"
	ExperienceLevelIntermediate ExperienceLevel = "intermediate"
	ExperienceLevelSenior       ExperienceLevel = "senior"
	ExperienceLevelExecutive    ExperienceLevel = "executive"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"

	QuestionTypeText           QuestionType = "text"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeYesNo          QuestionType = "yes_no"
)

// Типы уведомлений. Уведомления создаются только доменными событиями,
// никогда напрямую клиентом.
const (
	NotificationTypeNewApplication    = "new_application"
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeAccountVerified   = "account_verified"
)

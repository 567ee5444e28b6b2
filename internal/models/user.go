package models

import "time"

type User struct {
	BaseModel
	Name              string   `gorm:"not null" json:"name"`
	Email             string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string   `gorm:"not null" json:"-"`
	Role              UserRole `gorm:"type:varchar(20);not null" json:"role"`
	IsVerified        bool     `gorm:"default:false" json:"is_verified"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at"`
	VerificationToken string     `json:"-"`

	// Relations
	StudentProfile  *StudentProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	EmployerProfile *EmployerProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"employer_profile,omitempty"`
	Jobs            []Job            `gorm:"foreignKey:EmployerID" json:"jobs,omitempty"`
	Applications    []Application    `gorm:"foreignKey:StudentID" json:"applications,omitempty"`
	SavedJobs       []Job            `gorm:"many2many:saved_jobs" json:"saved_jobs,omitempty"`
	Notifications   []Notification   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RefreshTokens   []RefreshToken   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// IsStudent - студенты и выпускники считаются одной стороной доски
func (u *User) IsStudent() bool {
	return u.Role == UserRoleStudent || u.Role == UserRoleAlumni
}

func (u *User) IsEmployer() bool {
	return u.Role == UserRoleEmployer
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanDeleteUser - правило самозащиты админки: нельзя удалить себя
// и нельзя удалить другой админ-аккаунт.
func CanDeleteUser(actorID string, target *User) bool {
	if target.ID == actorID {
		return false
	}
	return target.Role != UserRoleAdmin
}

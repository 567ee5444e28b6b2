package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type StudentProfile struct {
	BaseModel
	UserID            string         `gorm:"uniqueIndex;not null" json:"user_id"`
	StudentNumber     string         `json:"student_number"`
	Program           string         `gorm:"not null" json:"program"`
	Faculty           string         `gorm:"not null" json:"faculty"`
	GraduationYear    int            `gorm:"not null" json:"graduation_year"`
	GPA               *float64       `json:"gpa"`
	Bio               string         `json:"bio"`
	Skills            datatypes.JSON `gorm:"type:jsonb" json:"skills"` // ["go", "sql"]
	ResumePath        string         `json:"resume_path"`
	LinkedinURL       string         `json:"linkedin_url"`
	GithubURL         string         `json:"github_url"`
	PortfolioURL      string         `json:"portfolio_url"`
	Phone             string         `json:"phone"`
	Location          string         `json:"location"`
	AvailableFrom     *time.Time     `json:"available_from"`
	WorkAuthorization string         `json:"work_authorization"`
}

func (p *StudentProfile) HasResume() bool {
	return p.ResumePath != ""
}

// GetSkills возвращает навыки как slice строк
func (p *StudentProfile) GetSkills() []string {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

// SetSkills устанавливает навыки
func (p *StudentProfile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}

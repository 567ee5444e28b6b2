package dto

import "time"

type StudentProfileRequest struct {
	StudentNumber     string     `json:"student_number" binding:"omitempty,max=50"`
	Program           string     `json:"program" binding:"required,max=150"`
	Faculty           string     `json:"faculty" binding:"required,max=150"`
	GraduationYear    int        `json:"graduation_year" binding:"required,min=1950,max=2100"`
	GPA               *float64   `json:"gpa" binding:"omitempty,min=0,max=4"`
	Bio               string     `json:"bio" binding:"omitempty,max=2000"`
	Skills            []string   `json:"skills" binding:"omitempty,max=50"`
	LinkedinURL       string     `json:"linkedin_url" binding:"omitempty,url"`
	GithubURL         string     `json:"github_url" binding:"omitempty,url"`
	PortfolioURL      string     `json:"portfolio_url" binding:"omitempty,url"`
	Phone             string     `json:"phone" binding:"omitempty,max=30"`
	Location          string     `json:"location" binding:"omitempty,max=150"`
	AvailableFrom     *time.Time `json:"available_from"`
	WorkAuthorization string     `json:"work_authorization" binding:"omitempty,max=100"`
}

type EmployerProfileRequest struct {
	CompanyName        string `json:"company_name" binding:"required,max=150"`
	CompanyDescription string `json:"company_description" binding:"omitempty,max=5000"`
	Industry           string `json:"industry" binding:"omitempty,max=100"`
	CompanySize        string `json:"company_size" binding:"omitempty,max=50"`
	Website            string `json:"website" binding:"omitempty,url"`
	ContactPerson      string `json:"contact_person" binding:"omitempty,max=100"`
	ContactEmail       string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone       string `json:"contact_phone" binding:"omitempty,max=30"`
	Location           string `json:"location" binding:"omitempty,max=150"`
	FoundedYear        *int   `json:"founded_year" binding:"omitempty,min=1800,max=2100"`
}

// FileResponse ответ на загрузку файла
type FileResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

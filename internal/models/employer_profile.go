package models

type EmployerProfile struct {
	BaseModel
	UserID             string `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName        string `gorm:"not null" json:"company_name"`
	CompanyDescription string `json:"company_description"`
	Industry           string `json:"industry"`
	CompanySize        string `json:"company_size"`
	LogoPath           string `json:"logo_path"`
	Website            string `json:"website"`
	ContactPerson      string `json:"contact_person"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Location           string `json:"location"`
	FoundedYear        *int   `json:"founded_year"`
}

func (p *EmployerProfile) HasLogo() bool {
	return p.LogoPath != ""
}

package repositories

import (
	"math"
	"time"

	"munext_backend/internal/models"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	GetDashboard(db *gorm.DB) (*Dashboard, error)
	GetAnalytics(db *gorm.DB) (*Analytics, error)
	GetOverviewReport(db *gorm.DB) (*OverviewReport, error)
	GetUsersReport(db *gorm.DB) (*UsersReport, error)
	GetJobsReport(db *gorm.DB) (*JobsReport, error)
	GetApplicationsReport(db *gorm.DB) (*ApplicationsReport, error)
}

type AnalyticsRepositoryImpl struct{}

func NewAnalyticsRepository() AnalyticsRepository {
	return &AnalyticsRepositoryImpl{}
}

// DashboardStats сводные счетчики для главной страницы админки
type DashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalStudents       int64 `json:"total_students"`
	TotalEmployers      int64 `json:"total_employers"`
	TotalJobs           int64 `json:"total_jobs"`
	ActiveJobs          int64 `json:"active_jobs"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
	VerifiedUsers       int64 `json:"verified_users"`
	UnverifiedUsers     int64 `json:"unverified_users"`
}

type Dashboard struct {
	Stats              DashboardStats       `json:"stats"`
	RecentUsers        []models.User        `json:"recent_users"`
	RecentJobs         []models.Job         `json:"recent_jobs"`
	RecentApplications []models.Application `json:"recent_applications"`
}

// GroupCount результат GROUP BY по одной колонке
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// MonthlyRoleCount рост регистраций по месяцам и ролям
type MonthlyRoleCount struct {
	Month string `json:"month"` // YYYY-MM
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// EmployerJobCount работодатель с количеством вакансий
type EmployerJobCount struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	JobsCount   int64  `json:"jobs_count"`
}

type Analytics struct {
	UserGrowth           []MonthlyRoleCount `json:"user_growth"`
	JobsByCategory       []GroupCount       `json:"jobs_by_category"`
	ApplicationsByStatus []GroupCount       `json:"applications_by_status"`
	TopEmployers         []EmployerJobCount `json:"top_employers"`
	JobsByType           []GroupCount       `json:"jobs_by_type"`
}

type OverviewReport struct {
	TotalUsers            int64        `json:"total_users"`
	UsersByRole           []GroupCount `json:"users_by_role"`
	TotalJobs             int64        `json:"total_jobs"`
	JobsByStatus          []GroupCount `json:"jobs_by_status"`
	TotalApplications     int64        `json:"total_applications"`
	AvgApplicationsPerJob float64      `json:"average_applications_per_job"`
}

type UsersReport struct {
	TotalUsers    int64        `json:"total_users"`
	VerifiedUsers int64        `json:"verified_users"`
	UsersByRole   []GroupCount `json:"users_by_role"`
	RecentSignups int64        `json:"recent_signups"`
}

type JobsReport struct {
	TotalJobs      int64        `json:"total_jobs"`
	ActiveJobs     int64        `json:"active_jobs"`
	JobsByCategory []GroupCount `json:"jobs_by_category"`
	JobsByType     []GroupCount `json:"jobs_by_type"`
	AvgViewsPerJob float64      `json:"average_views_per_job"`
}

type ApplicationsReport struct {
	TotalApplications    int64        `json:"total_applications"`
	ApplicationsByStatus []GroupCount `json:"applications_by_status"`
	RecentApplications   int64        `json:"recent_applications"`
}

func (r *AnalyticsRepositoryImpl) GetDashboard(db *gorm.DB) (*Dashboard, error) {
	var d Dashboard

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&d.Stats.TotalUsers, db.Model(&models.User{})},
		{&d.Stats.TotalStudents, db.Model(&models.User{}).Where("role IN ?", []string{string(models.UserRoleStudent), string(models.UserRoleAlumni)})},
		{&d.Stats.TotalEmployers, db.Model(&models.User{}).Where("role = ?", models.UserRoleEmployer)},
		{&d.Stats.TotalJobs, db.Model(&models.Job{})},
		{&d.Stats.ActiveJobs, db.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)},
		{&d.Stats.TotalApplications, db.Model(&models.Application{})},
		{&d.Stats.PendingApplications, db.Model(&models.Application{}).Where("status = ?", models.ApplicationStatusPending)},
		{&d.Stats.VerifiedUsers, db.Model(&models.User{}).Where("is_verified = ?", true)},
		{&d.Stats.UnverifiedUsers, db.Model(&models.User{}).Where("is_verified = ?", false)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Order("created_at DESC").Limit(5).Find(&d.RecentUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Employer").Preload("Employer.EmployerProfile").
		Order("created_at DESC").Limit(5).Find(&d.RecentJobs).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Student").Preload("Job").
		Order("created_at DESC").Limit(5).Find(&d.RecentApplications).Error; err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *AnalyticsRepositoryImpl) GetAnalytics(db *gorm.DB) (*Analytics, error) {
	var a Analytics

	since := time.Now().AddDate(0, -12, 0)
	err := db.Model(&models.User{}).
		Select("to_char(created_at, 'YYYY-MM') AS month, role, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("month, role").
		Order("month").
		Scan(&a.UserGrowth).Error
	if err != nil {
		return nil, err
	}

	if a.JobsByCategory, err = groupCount(db.Model(&models.Job{}), "category"); err != nil {
		return nil, err
	}
	if a.ApplicationsByStatus, err = groupCount(db.Model(&models.Application{}), "status"); err != nil {
		return nil, err
	}
	if a.JobsByType, err = groupCount(db.Model(&models.Job{}), "job_type"); err != nil {
		return nil, err
	}

	err = db.Model(&models.User{}).
		Select(`users.id, users.name, users.email,
			COALESCE(employer_profiles.company_name, '') AS company_name,
			(SELECT COUNT(*) FROM jobs WHERE jobs.employer_id = users.id) AS jobs_count`).
		Joins("LEFT JOIN employer_profiles ON employer_profiles.user_id = users.id").
		Where("users.role = ?", models.UserRoleEmployer).
		Order("jobs_count DESC").
		Limit(10).
		Scan(&a.TopEmployers).Error
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *AnalyticsRepositoryImpl) GetOverviewReport(db *gorm.DB) (*OverviewReport, error) {
	var report OverviewReport
	var err error

	if err = db.Model(&models.User{}).Count(&report.TotalUsers).Error; err != nil {
		return nil, err
	}
	if report.UsersByRole, err = groupCount(db.Model(&models.User{}), "role"); err != nil {
		return nil, err
	}
	if err = db.Model(&models.Job{}).Count(&report.TotalJobs).Error; err != nil {
		return nil, err
	}
	if report.JobsByStatus, err = groupCount(db.Model(&models.Job{}), "status"); err != nil {
		return nil, err
	}
	if err = db.Model(&models.Application{}).Count(&report.TotalApplications).Error; err != nil {
		return nil, err
	}

	// Деление на max(jobs, 1) защищает от пустой доски
	jobs := report.TotalJobs
	if jobs < 1 {
		jobs = 1
	}
	report.AvgApplicationsPerJob = roundTwo(float64(report.TotalApplications) / float64(jobs))

	return &report, nil
}

func (r *AnalyticsRepositoryImpl) GetUsersReport(db *gorm.DB) (*UsersReport, error) {
	var report UsersReport
	var err error

	if err = db.Model(&models.User{}).Count(&report.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&models.User{}).Where("is_verified = ?", true).Count(&report.VerifiedUsers).Error; err != nil {
		return nil, err
	}
	if report.UsersByRole, err = groupCount(db.Model(&models.User{}), "role"); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -30)
	if err = db.Model(&models.User{}).Where("created_at >= ?", since).Count(&report.RecentSignups).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *AnalyticsRepositoryImpl) GetJobsReport(db *gorm.DB) (*JobsReport, error) {
	var report JobsReport
	var err error

	if err = db.Model(&models.Job{}).Count(&report.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen).Count(&report.ActiveJobs).Error; err != nil {
		return nil, err
	}
	if report.JobsByCategory, err = groupCount(db.Model(&models.Job{}), "category"); err != nil {
		return nil, err
	}
	if report.JobsByType, err = groupCount(db.Model(&models.Job{}), "job_type"); err != nil {
		return nil, err
	}

	var avgViews *float64
	if err = db.Model(&models.Job{}).Select("AVG(views_count)").Scan(&avgViews).Error; err != nil {
		return nil, err
	}
	if avgViews != nil {
		report.AvgViewsPerJob = roundTwo(*avgViews)
	}

	return &report, nil
}

func (r *AnalyticsRepositoryImpl) GetApplicationsReport(db *gorm.DB) (*ApplicationsReport, error) {
	var report ApplicationsReport
	var err error

	if err = db.Model(&models.Application{}).Count(&report.TotalApplications).Error; err != nil {
		return nil, err
	}
	if report.ApplicationsByStatus, err = groupCount(db.Model(&models.Application{}), "status"); err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -30)
	if err = db.Model(&models.Application{}).Where("created_at >= ?", since).Count(&report.RecentApplications).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func groupCount(query *gorm.DB, column string) ([]GroupCount, error) {
	var results []GroupCount
	err := query.
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&results).Error
	return results, err
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

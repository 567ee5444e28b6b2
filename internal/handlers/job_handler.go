package handlers

import (
	"munext_backend/internal/middleware"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services"
	"munext_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

// RegisterRoutes регистрирует маршруты вакансий
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичная доска. OptionalAuth дает персональные флаги
	// is_saved / has_applied аутентифицированным студентам.
	jobs := rg.Group("/jobs")
	jobs.Use(middleware.OptionalAuthMiddleware())
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/:id", h.GetJob)
	}

	employer := rg.Group("/employer/jobs")
	employer.Use(middleware.AuthMiddleware(), middleware.EmployerMiddleware())
	{
		employer.GET("", h.MyJobs)
		employer.POST("", h.CreateJob)
		employer.PUT("/:id", h.UpdateJob)
		employer.PATCH("/:id/status", h.UpdateJobStatus)
		employer.DELETE("/:id", h.DeleteJob)
	}

	student := rg.Group("/student/saved-jobs")
	student.Use(middleware.AuthMiddleware(), middleware.StudentMiddleware())
	{
		student.GET("", h.ListSavedJobs)
		student.POST("/:id", h.ToggleSavedJob)
	}
}

// ---------------- Public ----------------

func (h *JobHandler) ListJobs(c *gin.Context) {
	var criteria repositories.JobSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.jobService.ListJobs(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(h.GetDB(c), c.Param("id"), h.OptionalUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, job)
}

// ---------------- Employer ----------------

func (h *JobHandler) MyJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	result, err := h.jobService.MyJobs(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Job created successfully", job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Job updated successfully", job)
}

func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJobStatus(h.GetDB(c), userID, c.Param("id"), models.JobStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Job status updated successfully", job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Job deleted successfully")
}

// ---------------- Student ----------------

func (h *JobHandler) ToggleSavedJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	saved, err := h.jobService.ToggleSavedJob(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "Job removed from saved jobs"
	if saved {
		message = "Job saved successfully"
	}
	h.RespondOKWithMessage(c, message, dto.SavedJobResponse{Saved: saved})
}

func (h *JobHandler) ListSavedJobs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	result, err := h.jobService.ListSavedJobs(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

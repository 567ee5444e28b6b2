package handlers

import (
	"encoding/json"
	"strings"

	"munext_backend/internal/middleware"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

// RegisterRoutes регистрирует маршруты откликов
func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	student := rg.Group("")
	student.Use(middleware.AuthMiddleware(), middleware.StudentMiddleware())
	{
		student.GET("/student/applications", h.MyApplications)
		student.POST("/student/applications/:id", h.Apply)
		student.GET("/student/applications/:id", h.GetMyApplication)
		student.DELETE("/student/applications/:id/withdraw", h.Withdraw)
	}

	employer := rg.Group("/employer")
	employer.Use(middleware.AuthMiddleware(), middleware.EmployerMiddleware())
	{
		employer.GET("/jobs/:id/applications", h.ListForJob)
		employer.GET("/applications/:id", h.GetForEmployer)
		employer.PUT("/applications/:id/status", h.UpdateStatus)
		employer.PUT("/applications/:id/notes", h.UpdateNotes)
	}
}

// ---------------- Student ----------------

// Apply принимает как JSON, так и multipart с опциональным файлом резюме.
// В multipart-запросе screening_answers передаются JSON-строкой.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resume, _ := c.FormFile("resume")
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if raw := c.PostForm("screening_answers"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.ScreeningAnswers); err != nil {
				h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid screening answers format"))
				return
			}
		}
	}

	application, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), userID, c.Param("id"), &req, resume)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, "Application submitted successfully", application)
}

func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria repositories.ApplicationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.applicationService.MyApplications(h.GetDB(c), userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *ApplicationHandler) GetMyApplication(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.GetForStudent(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, application)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Application withdrawn successfully")
}

// ---------------- Employer ----------------

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var criteria repositories.ApplicationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.applicationService.ListForJob(h.GetDB(c), userID, c.Param("id"), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *ApplicationHandler) GetForEmployer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.GetForEmployer(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, application)
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), models.ApplicationStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Application status updated successfully", application)
}

func (h *ApplicationHandler) UpdateNotes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplicationNotesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateNotes(h.GetDB(c), userID, c.Param("id"), req.Notes)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Notes updated successfully", application)
}

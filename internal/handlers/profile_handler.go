package handlers

import (
	"munext_backend/internal/middleware"
	"munext_backend/internal/services"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes регистрирует маршруты профилей
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Публичные карточки профилей
	profiles := rg.Group("/profiles")
	{
		profiles.GET("/student/:id", h.PublicStudentProfile)
		profiles.GET("/employer/:id", h.PublicEmployerProfile)
	}

	student := rg.Group("/student/profile")
	student.Use(middleware.AuthMiddleware(), middleware.StudentMiddleware())
	{
		student.GET("", h.GetStudentProfile)
		student.POST("", h.UpsertStudentProfile)
		student.POST("/resume", h.UploadResume)
		student.DELETE("/resume", h.DeleteResume)
	}

	employer := rg.Group("/employer/profile")
	employer.Use(middleware.AuthMiddleware(), middleware.EmployerMiddleware())
	{
		employer.GET("", h.GetEmployerProfile)
		employer.POST("", h.UpsertEmployerProfile)
		employer.POST("/logo", h.UploadLogo)
		employer.DELETE("/logo", h.DeleteLogo)
	}
}

// ---------------- Student ----------------

func (h *ProfileHandler) GetStudentProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetStudentProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, profile)
}

func (h *ProfileHandler) UpsertStudentProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.StudentProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertStudentProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Profile saved successfully", profile)
}

func (h *ProfileHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Resume file is required"))
		return
	}

	result, err := h.profileService.UploadResume(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Resume uploaded successfully", result)
}

func (h *ProfileHandler) DeleteResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteResume(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Resume deleted successfully")
}

// ---------------- Employer ----------------

func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetEmployerProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, profile)
}

func (h *ProfileHandler) UpsertEmployerProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EmployerProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpsertEmployerProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Profile saved successfully", profile)
}

func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Logo file is required"))
		return
	}

	result, err := h.profileService.UploadLogo(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Logo uploaded successfully", result)
}

func (h *ProfileHandler) DeleteLogo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteLogo(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Logo deleted successfully")
}

// ---------------- Public ----------------

func (h *ProfileHandler) PublicStudentProfile(c *gin.Context) {
	user, err := h.profileService.GetPublicStudentProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, user)
}

func (h *ProfileHandler) PublicEmployerProfile(c *gin.Context) {
	user, err := h.profileService.GetPublicEmployerProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, user)
}

package handlers

import (
	"munext_backend/internal/middleware"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services"
	"munext_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

// RegisterRoutes регистрирует маршруты админки
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/analytics", h.Analytics)
		admin.GET("/reports", h.Report)

		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.PATCH("/users/:id/verify", h.VerifyUser)
		admin.PATCH("/users/:id/unverify", h.UnverifyUser)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/jobs", h.ListJobs)
		admin.PATCH("/jobs/:id/status", h.UpdateJobStatus)
		admin.DELETE("/jobs/:id", h.DeleteJob)

		admin.GET("/applications", h.ListApplications)
	}
}

// ---------------- Overview ----------------

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, dashboard)
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	analytics, err := h.adminService.Analytics(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, analytics)
}

func (h *AdminHandler) Report(c *gin.Context) {
	report, err := h.adminService.Report(h.GetDB(c), c.Query("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, report)
}

// ---------------- Users ----------------

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var criteria repositories.UserCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.adminService.ListUsers(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, user)
}

func (h *AdminHandler) VerifyUser(c *gin.Context) {
	user, err := h.adminService.VerifyUser(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "User verified successfully", user)
}

func (h *AdminHandler) UnverifyUser(c *gin.Context) {
	user, err := h.adminService.UnverifyUser(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "User verification removed", user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(h.GetDB(c), actorID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "User deleted successfully")
}

// ---------------- Jobs ----------------

func (h *AdminHandler) ListJobs(c *gin.Context) {
	var criteria repositories.JobSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.adminService.ListJobs(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

func (h *AdminHandler) UpdateJobStatus(c *gin.Context) {
	var req dto.JobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.adminService.UpdateJobStatus(h.GetDB(c), c.Param("id"), models.JobStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOKWithMessage(c, "Job status updated successfully", job)
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	if err := h.adminService.DeleteJob(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Job deleted successfully")
}

// ---------------- Applications ----------------

func (h *AdminHandler) ListApplications(c *gin.Context) {
	var criteria repositories.ApplicationCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	result, err := h.adminService.ListApplications(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, result)
}

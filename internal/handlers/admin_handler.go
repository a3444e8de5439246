package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/services"
)

// AdminHandler serves the administration area
type AdminHandler struct {
	userRoleService *services.UserRoleService
	jobService      *services.JobService
}

func NewAdminHandler(userRoleService *services.UserRoleService, jobService *services.JobService) *AdminHandler {
	return &AdminHandler{userRoleService: userRoleService, jobService: jobService}
}

// @Summary List User Roles
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param role query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /admin/roles [get]
func (h *AdminHandler) ListRoles(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	query := listQuery(c, "role")
	roles, total, err := h.userRoleService.List(c.Request.Context(), principal, query)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roles":      roles,
		"pagination": pagination(query, total),
	})
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

// @Summary Set User Role
// @Description Change another user's role. Only god may grant or revoke god.
// @Tags Admin
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body SetRoleRequest true "Role"
// @Success 200 {object} models.UserRole
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/roles/{user_id} [put]
func (h *AdminHandler) SetRole(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, principal)
		return
	}
	role, err := h.userRoleService.SetRole(c.Request.Context(), principal, c.Param("user_id"), req.Role)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// JobStatus returns the current worker status
// @Summary Get background job status
// @Description Get statistics about background jobs (active, completed, failed, queue length)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} jobs.WorkerStats
// @Router /admin/jobs/status [get]
func (h *AdminHandler) JobStatus(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	status, err := h.jobService.GetStatus(principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, status)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/services"
)

// ReferenceHandler serves categories and banks
type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// @Summary List Categories
// @Description System categories plus the caller's own, ordered by name
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /categories [get]
func (h *ReferenceHandler) ListCategories(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	categories, err := h.referenceService.ListCategories(c.Request.Context(), principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// @Summary Create Category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body services.ReferenceInput true "Category"
// @Success 201 {object} models.Category
// @Security BearerAuth
// @Router /categories [post]
func (h *ReferenceHandler) CreateCategory(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var input services.ReferenceInput
	if err := BindNestedOrFlat(c, "category", &input); err != nil {
		badRequest(c, principal)
		return
	}
	category, err := h.referenceService.CreateCategory(c.Request.Context(), principal, input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// @Summary Rename Category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category_id path string true "Category ID"
// @Param request body services.ReferenceInput true "Category"
// @Success 200 {object} models.Category
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /categories/{category_id} [put]
func (h *ReferenceHandler) UpdateCategory(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var input services.ReferenceInput
	if err := BindNestedOrFlat(c, "category", &input); err != nil {
		badRequest(c, principal)
		return
	}
	category, err := h.referenceService.RenameCategory(c.Request.Context(), principal, c.Param("category_id"), input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// @Summary Delete Category
// @Tags Categories
// @Param category_id path string true "Category ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /categories/{category_id} [delete]
func (h *ReferenceHandler) DeleteCategory(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.referenceService.DeleteCategory(c.Request.Context(), principal, c.Param("category_id")); err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List Banks
// @Description System banks plus the caller's own, ordered by name
// @Tags Banks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /banks [get]
func (h *ReferenceHandler) ListBanks(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	banks, err := h.referenceService.ListBanks(c.Request.Context(), principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

// @Summary Create Bank
// @Tags Banks
// @Accept json
// @Produce json
// @Param request body services.ReferenceInput true "Bank"
// @Success 201 {object} models.Bank
// @Security BearerAuth
// @Router /banks [post]
func (h *ReferenceHandler) CreateBank(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var input services.ReferenceInput
	if err := BindNestedOrFlat(c, "bank", &input); err != nil {
		badRequest(c, principal)
		return
	}
	bank, err := h.referenceService.CreateBank(c.Request.Context(), principal, input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bank": bank})
}

// @Summary Rename Bank
// @Tags Banks
// @Accept json
// @Produce json
// @Param bank_id path string true "Bank ID"
// @Param request body services.ReferenceInput true "Bank"
// @Success 200 {object} models.Bank
// @Security BearerAuth
// @Router /banks/{bank_id} [put]
func (h *ReferenceHandler) UpdateBank(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var input services.ReferenceInput
	if err := BindNestedOrFlat(c, "bank", &input); err != nil {
		badRequest(c, principal)
		return
	}
	bank, err := h.referenceService.RenameBank(c.Request.Context(), principal, c.Param("bank_id"), input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bank": bank})
}

// @Summary Delete Bank
// @Tags Banks
// @Param bank_id path string true "Bank ID"
// @Success 204
// @Security BearerAuth
// @Router /banks/{bank_id} [delete]
func (h *ReferenceHandler) DeleteBank(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.referenceService.DeleteBank(c.Request.Context(), principal, c.Param("bank_id")); err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.Status(http.StatusNoContent)
}

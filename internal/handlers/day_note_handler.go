package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type DayNoteHandler struct {
	dayNoteService *services.DayNoteService
}

func NewDayNoteHandler(dayNoteService *services.DayNoteService) *DayNoteHandler {
	return &DayNoteHandler{dayNoteService: dayNoteService}
}

// @Summary Get Day Note
// @Tags Notes
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} models.DayNoteResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /notes/{date} [get]
func (h *DayNoteHandler) Show(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	note, err := h.dayNoteService.Get(c.Request.Context(), principal, c.Param("date"))
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note.ToResponse()})
}

// @Summary Save Day Note
// @Description Create or replace the caller's note for a day
// @Tags Notes
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param request body validation.DayNoteInput true "Note"
// @Success 200 {object} models.DayNoteResponse
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notes/{date} [put]
func (h *DayNoteHandler) Save(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var input validation.DayNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, principal)
		return
	}
	note, err := h.dayNoteService.Save(c.Request.Context(), principal, c.Param("date"), input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note.ToResponse()})
}

// @Summary Delete Day Note
// @Tags Notes
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204
// @Security BearerAuth
// @Router /notes/{date} [delete]
func (h *DayNoteHandler) Delete(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.dayNoteService.Delete(c.Request.Context(), principal, c.Param("date")); err != nil {
		respondError(c, principal, err, i18n.MsgInternal)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type DebtHandler struct {
	syncService *services.SyncService
}

func NewDebtHandler(syncService *services.SyncService) *DebtHandler {
	return &DebtHandler{syncService: syncService}
}

// @Summary Load Book
// @Description Get every debt and payment of the caller. refresh=true bypasses the cache.
// @Tags Debts
// @Produce json
// @Param refresh query bool false "Reload from the store"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /book [get]
func (h *DebtHandler) Book(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	load := h.syncService.Load
	if c.Query("refresh") == "true" {
		load = h.syncService.Refresh
	}
	book, err := load(c.Request.Context(), principal)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}

	debts := make([]models.DebtResponse, 0, len(book.Debts))
	for i := range book.Debts {
		debts = append(debts, book.Debts[i].ToResponse())
	}
	payments := make([]models.PaymentResponse, 0, len(book.Payments))
	for i := range book.Payments {
		payments = append(payments, book.Payments[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts, "payments": payments})
}

// @Summary List Debts
// @Description Get a paginated list of the caller's debts
// @Tags Debts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param debt_type query string false "Filter by debt type"
// @Param sort query string false "Sort as field-direction, e.g. due_date-asc"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts [get]
func (h *DebtHandler) Index(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	query := listQuery(c, "status", "debt_type", "category_id", "bank_id")
	debts, total, err := h.syncService.ListDebts(c.Request.Context(), principal, query)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}

	responses := make([]models.DebtResponse, 0, len(debts))
	for i := range debts {
		responses = append(responses, debts[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"debts":      responses,
		"pagination": pagination(query, total),
	})
}

// @Summary Get Debt
// @Description Get a debt with its payments, remaining balance and next payment date
// @Tags Debts
// @Produce json
// @Param debt_id path string true "Debt ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /debts/{debt_id} [get]
func (h *DebtHandler) Show(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	schedule, err := h.syncService.Debt(c.Request.Context(), principal, c.Param("debt_id"))
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}

	payments := make([]models.PaymentResponse, 0, len(schedule.Payments))
	for i := range schedule.Payments {
		payments = append(payments, schedule.Payments[i].ToResponse())
	}
	var next *string
	if schedule.NextPaymentDate != nil {
		formatted := schedule.NextPaymentDate.Format(models.DateLayout)
		next = &formatted
	}

	c.JSON(http.StatusOK, gin.H{
		"debt":              schedule.Debt.ToResponse(),
		"payments":          payments,
		"paid":              schedule.Paid,
		"remaining_balance": schedule.RemainingBalance,
		"next_payment_date": next,
	})
}

// @Summary Create Debt
// @Description Validate and record a new debt. Accepts {"debt": {...}} or a flat body.
// @Tags Debts
// @Accept json
// @Produce json
// @Param request body validation.DebtInput true "Debt"
// @Success 201 {object} models.DebtResponse
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var input validation.DebtInput
	if err := BindNestedOrFlat(c, "debt", &input); err != nil {
		badRequest(c, principal)
		return
	}

	debt, err := h.syncService.CreateDebt(c.Request.Context(), principal, input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgCreateDebtFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"debt": debt.ToResponse()})
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// @Summary Update Debt Status
// @Description Move a debt forward (pending -> in_progress -> completed)
// @Tags Debts
// @Accept json
// @Produce json
// @Param debt_id path string true "Debt ID"
// @Param request body UpdateStatusRequest true "Status"
// @Success 200 {object} models.DebtResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /debts/{debt_id}/status [patch]
func (h *DebtHandler) UpdateStatus(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := BindNestedOrFlat(c, "debt", &req); err != nil || req.Status == "" {
		badRequest(c, principal)
		return
	}

	debt, err := h.syncService.UpdateDebtStatus(c.Request.Context(), principal, c.Param("debt_id"), req.Status)
	if err != nil {
		respondError(c, principal, err, i18n.MsgStatusFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt": debt.ToResponse()})
}

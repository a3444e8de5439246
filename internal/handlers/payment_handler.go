package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type PaymentHandler struct {
	syncService *services.SyncService
}

func NewPaymentHandler(syncService *services.SyncService) *PaymentHandler {
	return &PaymentHandler{syncService: syncService}
}

// @Summary List Payments
// @Description Get a paginated list of the caller's payments
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param debt_id query string false "Filter by debt"
// @Param from query string false "Paid on or after (YYYY-MM-DD)"
// @Param to query string false "Paid on or before (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	query := listQuery(c, "debt_id", "from", "to")
	if debtID := c.Param("debt_id"); debtID != "" {
		query.Filters["debt_id"] = debtID
	}

	payments, total, err := h.syncService.ListPayments(c.Request.Context(), principal, query)
	if err != nil {
		respondError(c, principal, err, i18n.MsgLoadFailed)
		return
	}

	responses := make([]models.PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, payments[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"payments":   responses,
		"pagination": pagination(query, total),
	})
}

// @Summary Record Payment
// @Description Record a payment against a debt. The remaining balance is computed from the debt's history and the debt status follows it.
// @Tags Payments
// @Accept json
// @Produce json
// @Param debt_id path string true "Debt ID"
// @Param request body validation.PaymentInput true "Payment"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts/{debt_id}/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var input validation.PaymentInput
	if err := BindNestedOrFlat(c, "payment", &input); err != nil {
		badRequest(c, principal)
		return
	}

	result, err := h.syncService.CreatePayment(c.Request.Context(), principal, c.Param("debt_id"), input)
	if err != nil {
		respondError(c, principal, err, i18n.MsgCreatePayFailed)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"payment": result.Payment.ToResponse(),
		"debt":    result.Debt.ToResponse(),
	})
}

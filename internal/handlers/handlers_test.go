package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/cache"
	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

type mockDebtRepo struct {
	repository.DebtRepository
	debts   []models.Debt
	findErr error
}

func (m *mockDebtRepo) FindAll(ctx context.Context, userID string) ([]models.Debt, error) {
	return m.debts, m.findErr
}

func (m *mockDebtRepo) Create(ctx context.Context, debt *models.Debt) error {
	debt.ID = "new-debt"
	return nil
}

func (m *mockDebtRepo) FindByID(ctx context.Context, userID, id string) (*models.Debt, error) {
	for _, d := range m.debts {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDebtRepo) UpdateStatus(ctx context.Context, userID, id string, from []string, to string) error {
	return nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
}

func (m *mockPaymentRepo) FindAll(ctx context.Context, userID string) ([]models.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepo) FindByDebt(ctx context.Context, userID, debtID string) ([]models.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepo) List(ctx context.Context, userID string, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return nil, 0, nil
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = "new-payment"
	return nil
}

// mockTx runs the callback against the mocks without a real transaction
type mockTx struct {
	debts    repository.DebtRepository
	payments repository.PaymentRepository
}

func (m mockTx) WithinTransaction(ctx context.Context, fn func(repository.DebtRepository, repository.PaymentRepository) error) error {
	return fn(m.debts, m.payments)
}

func openDebt(status string) models.Debt {
	return models.Debt{
		ID:                "d1",
		Amount:            decimal.NewFromInt(100),
		Installments:      3,
		InstallmentAmount: decimal.NewFromInt(34),
		DebtType:          models.DebtTypeOther,
		DueDate:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:            status,
	}
}

func newTestHandlers(debts *mockDebtRepo, settings config.FormSettings) *Handlers {
	validator := validation.New(settings, "2000-01-01")
	payments := &mockPaymentRepo{}
	tx := mockTx{debts: debts, payments: payments}
	syncSvc := services.NewSyncService(debts, payments, tx, nil, cache.NewMemoryCache(0), validator, nil, nil, "")
	dayNotes := services.NewDayNoteService(nil, validator)
	report := services.NewReportService(syncSvc, dayNotes)

	return NewHandlers(&services.Services{
		Sync:      syncSvc,
		Reference: services.NewReferenceService(nil, nil, validator),
		DayNote:   dayNotes,
		Report:    report,
		Export:    services.NewExportService(report),
		Validator: validator,
	})
}

func newTestRouter(h *Handlers, principal *policy.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != nil {
			middleware.SetPrincipal(c, *principal)
		}
		c.Next()
	})
	r.GET("/book", h.Debt.Book)
	r.POST("/debts", h.Debt.Create)
	r.GET("/debts/:debt_id", h.Debt.Show)
	r.PATCH("/debts/:debt_id/status", h.Debt.UpdateStatus)
	r.POST("/debts/:debt_id/payments", h.Payment.Create)
	r.GET("/payments", h.Payment.Index)
	r.GET("/categories", h.Reference.ListCategories)
	r.GET("/reports/export", h.Report.Export)
	r.GET("/settings", h.Settings.Show)
	return r
}

var englishUser = &policy.Principal{UserID: "u1", Role: models.RoleUser, Locale: "en"}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDebtHandler_Create(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodPost, "/debts", `{"debt": {"name": "Car", "amount": 100, "debt_type": "other", "due_date": "2024-01-15", "installments": "3", "description": "loan"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Debt models.DebtResponse `json:"debt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-debt", resp.Debt.ID)
	assert.Equal(t, models.DebtStatusPending, resp.Debt.Status)
	assert.True(t, resp.Debt.InstallmentAmount.Equal(decimal.NewFromInt(34)))
}

func TestDebtHandler_CreateValidationErrors(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodPost, "/debts", `{"amount": "-5", "debt_type": "other", "due_date": "2024-01-15", "installments": "1", "description": "x"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Errors []validation.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "name", resp.Errors[0].Field)
	assert.Equal(t, "amount", resp.Errors[1].Field)
}

func TestDebtHandler_BadBody(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodPost, "/debts", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebtHandler_Unauthenticated(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), nil)

	w := doJSON(r, http.MethodGet, "/book", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDebtHandler_LoadFailureIsLocalized(t *testing.T) {
	debts := &mockDebtRepo{findErr: errors.New("connection refused")}
	r := newTestRouter(newTestHandlers(debts, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodGet, "/book", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Could not load debts and payments", resp["error"])
}

func TestDebtHandler_Show(t *testing.T) {
	debts := &mockDebtRepo{debts: []models.Debt{openDebt(models.DebtStatusPending)}}
	r := newTestRouter(newTestHandlers(debts, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodGet, "/debts/d1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"next_payment_date":"2024-01-15"`)

	w = doJSON(r, http.MethodGet, "/debts/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebtHandler_UpdateStatus(t *testing.T) {
	debts := &mockDebtRepo{debts: []models.Debt{openDebt(models.DebtStatusInProgress)}}
	r := newTestRouter(newTestHandlers(debts, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodPatch, "/debts/d1/status", `{"status": "pending"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPatch, "/debts/d1/status", `{"status": "completed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestPaymentHandler_Create(t *testing.T) {
	debts := &mockDebtRepo{debts: []models.Debt{openDebt(models.DebtStatusPending)}}
	r := newTestRouter(newTestHandlers(debts, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodPost, "/debts/d1/payments", `{"payment": {"payment_amount": "34", "payment_date": "2024-01-15"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Payment models.PaymentResponse `json:"payment"`
		Debt    models.DebtResponse    `json:"debt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Payment.RemainingBalance.Equal(decimal.NewFromInt(66)))
	assert.Equal(t, models.DebtStatusInProgress, resp.Debt.Status)

	w = doJSON(r, http.MethodPost, "/debts/missing/payments", `{"payment_amount": "1", "payment_date": "2024-01-15"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_IndexRejectsMalformedDates(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodGet, "/payments?from=2024-01-01&to=31/01/2024", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"to"`)

	w = doJSON(r, http.MethodGet, "/payments?from=2024-01-01&to=2024-01-31", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReferenceHandler_FeatureDisabled(t *testing.T) {
	settings := config.DefaultFormSettings()
	settings.EnabledFeatures.Categories = false
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, settings), englishUser)

	w := doJSON(r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "This feature is disabled")
}

func TestReportHandler_Export(t *testing.T) {
	debts := &mockDebtRepo{debts: []models.Debt{openDebt(models.DebtStatusPending)}}
	r := newTestRouter(newTestHandlers(debts, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodGet, "/reports/export?format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "debt_report_")

	w = doJSON(r, http.MethodGet, "/reports/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsHandler(t *testing.T) {
	r := newTestRouter(newTestHandlers(&mockDebtRepo{}, config.DefaultFormSettings()), englishUser)

	w := doJSON(r, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RequiredFields  config.RequiredFields  `json:"requiredFields"`
		EnabledFeatures config.EnabledFeatures `json:"enabledFeatures"`
		DebtTypes       []string               `json:"debtTypes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.RequiredFields.Name)
	assert.Equal(t, models.DebtTypes, resp.DebtTypes)
}

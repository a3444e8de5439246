package handlers

import (
	"github.com/sjperalta/debtbook-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Debt      *DebtHandler
	Payment   *PaymentHandler
	Reference *ReferenceHandler
	DayNote   *DayNoteHandler
	Report    *ReportHandler
	Admin     *AdminHandler
	Settings  *SettingsHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Debt:      NewDebtHandler(svcs.Sync),
		Payment:   NewPaymentHandler(svcs.Sync),
		Reference: NewReferenceHandler(svcs.Reference),
		DayNote:   NewDayNoteHandler(svcs.DayNote),
		Report:    NewReportHandler(svcs.Report, svcs.Export),
		Admin:     NewAdminHandler(svcs.UserRole, svcs.Job),
		Settings:  NewSettingsHandler(svcs.Validator.Settings()),
	}
}

package services

import (
	"github.com/sjperalta/debtbook-api/internal/cache"
	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/storage"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

// Services holds all service instances
type Services struct {
	Sync      *SyncService
	Reference *ReferenceService
	DayNote   *DayNoteService
	UserRole  *UserRoleService
	Report    *ReportService
	Export    *ExportService
	Job       *JobService
	Validator *validation.Validator
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, books cache.BookCache, legacy storage.LegacySource, cfg *config.Config) *Services {
	minDueDate := ""
	if !cfg.MinDueDate.IsZero() {
		minDueDate = cfg.MinDueDate.Format(models.DateLayout)
	}
	validator := validation.New(cfg.Form, minDueDate)

	syncSvc := NewSyncService(repos.Debt, repos.Payment, repos.Tx, repos.Legacy, books, validator, worker, legacy, cfg.LegacyOwnerID)
	dayNoteSvc := NewDayNoteService(repos.DayNote, validator)
	reportSvc := NewReportService(syncSvc, dayNoteSvc)

	return &Services{
		Sync:      syncSvc,
		Reference: NewReferenceService(repos.Category, repos.Bank, validator),
		DayNote:   dayNoteSvc,
		UserRole:  NewUserRoleService(repos.UserRole, validator),
		Report:    reportSvc,
		Export:    NewExportService(reportSvc),
		Job:       NewJobService(worker),
		Validator: validator,
	}
}

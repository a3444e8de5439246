package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sjperalta/debtbook-api/internal/amortization"
	"github.com/sjperalta/debtbook-api/internal/cache"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/statemachine"
	"github.com/sjperalta/debtbook-api/internal/storage"
	"github.com/sjperalta/debtbook-api/internal/validation"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// SyncService keeps each principal's cached Book consistent with the store.
// The cache is only touched after the store has confirmed a write, and writes
// that depend on existing state read that state inside the same transaction.
type SyncService struct {
	debtRepo      repository.DebtRepository
	paymentRepo   repository.PaymentRepository
	tx            repository.Transactor
	legacyRepo    repository.LegacyImportRepository
	books         cache.BookCache
	validator     *validation.Validator
	worker        *jobs.Worker
	legacy        storage.LegacySource
	legacyOwnerID string
	now           func() time.Time

	// per-user locks serializing cache fills and patches
	bookLocks sync.Map
}

func NewSyncService(
	debtRepo repository.DebtRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.Transactor,
	legacyRepo repository.LegacyImportRepository,
	books cache.BookCache,
	validator *validation.Validator,
	worker *jobs.Worker,
	legacy storage.LegacySource,
	legacyOwnerID string,
) *SyncService {
	return &SyncService{
		debtRepo:      debtRepo,
		paymentRepo:   paymentRepo,
		tx:            tx,
		legacyRepo:    legacyRepo,
		books:         books,
		validator:     validator,
		worker:        worker,
		legacy:        legacy,
		legacyOwnerID: legacyOwnerID,
		now:           time.Now,
	}
}

// FetchAll loads debts and payments in parallel. If either fetch fails the
// whole load fails with one error covering every failure, and nothing is cached.
func (s *SyncService) FetchAll(ctx context.Context, principal policy.Principal) (*models.Book, error) {
	var (
		debts       []models.Debt
		payments    []models.Payment
		debtsErr    error
		paymentsErr error
		g           errgroup.Group
	)

	g.Go(func() error {
		debts, debtsErr = s.debtRepo.FindAll(ctx, principal.UserID)
		return debtsErr
	})
	g.Go(func() error {
		payments, paymentsErr = s.paymentRepo.FindAll(ctx, principal.UserID)
		return paymentsErr
	})
	_ = g.Wait()

	if debtsErr != nil || paymentsErr != nil {
		var errs []error
		if debtsErr != nil {
			errs = append(errs, fmt.Errorf("fetch debts: %w", debtsErr))
		}
		if paymentsErr != nil {
			errs = append(errs, fmt.Errorf("fetch payments: %w", paymentsErr))
		}
		return nil, errors.Join(errs...)
	}

	return models.NewBook(debts, payments), nil
}

// Load returns the principal's book, from cache when possible
func (s *SyncService) Load(ctx context.Context, principal policy.Principal) (*models.Book, error) {
	if book, ok := s.cached(ctx, principal.UserID); ok {
		return book, nil
	}

	unlock := s.lockBook(principal.UserID)
	defer unlock()

	// filled while we waited for the lock
	if book, ok := s.cached(ctx, principal.UserID); ok {
		return book, nil
	}

	book, err := s.FetchAll(ctx, principal)
	if err != nil {
		return nil, err
	}
	_ = s.store(ctx, principal.UserID, book)
	return book, nil
}

// Refresh drops the cached book and loads it again from the store
func (s *SyncService) Refresh(ctx context.Context, principal policy.Principal) (*models.Book, error) {
	if err := s.books.Delete(ctx, principal.UserID); err != nil {
		logger.Warn("Book cache delete failed", "user_id", principal.UserID, "error", err)
	}
	return s.Load(ctx, principal)
}

// Debt returns one debt with its derived schedule
func (s *SyncService) Debt(ctx context.Context, principal policy.Principal, id string) (*amortization.Schedule, error) {
	book, err := s.Load(ctx, principal)
	if err != nil {
		return nil, err
	}
	debt, ok := book.Debt(id)
	if !ok {
		return nil, ErrNotFound
	}
	schedule := amortization.Derive(*debt, book.PaymentsFor(id))
	return &schedule, nil
}

// ListDebts pages through the principal's debts straight from the store
func (s *SyncService) ListDebts(ctx context.Context, principal policy.Principal, query *repository.ListQuery) ([]models.Debt, int64, error) {
	return s.debtRepo.List(ctx, principal.UserID, query)
}

// ListPayments pages through the principal's payments straight from the
// store. The from and to filters must be dates.
func (s *SyncService) ListPayments(ctx context.Context, principal policy.Principal, query *repository.ListQuery) ([]models.Payment, int64, error) {
	for _, key := range []string{"from", "to"} {
		query.Filters[key] = strings.TrimSpace(query.Filters[key])
	}
	if err := s.validator.DateFilters(query.Filters["from"], query.Filters["to"], principal.Locale); err != nil {
		return nil, 0, err
	}
	return s.paymentRepo.List(ctx, principal.UserID, query)
}

// CreateDebt validates and persists a debt, then adds the stored record to
// the cached book.
func (s *SyncService) CreateDebt(ctx context.Context, principal policy.Principal, input validation.DebtInput) (*models.Debt, error) {
	debt, err := s.validator.Debt(input, principal.Locale)
	if err != nil {
		return nil, err
	}
	owner := principal.UserID
	debt.UserID = &owner

	if err := s.debtRepo.Create(ctx, debt); err != nil {
		return nil, fmt.Errorf("create debt: %w", translate(err))
	}

	s.updateCached(ctx, principal, func(book *models.Book) {
		book.AddDebt(*debt)
	})
	logger.Info("Debt created", "debt_id", debt.ID, "user_id", principal.UserID)
	return debt, nil
}

// PaymentResult is a recorded payment and the debt after its status update
type PaymentResult struct {
	Payment *models.Payment
	Debt    *models.Debt
}

// CreatePayment records a payment against a debt. In one transaction the
// debt row is locked, the remaining balance is computed from the stored
// history, the payment is inserted and the debt status follows the
// transition policy. Any failure rolls all of it back.
func (s *SyncService) CreatePayment(ctx context.Context, principal policy.Principal, debtID string, input validation.PaymentInput) (*PaymentResult, error) {
	payment, err := s.validator.Payment(debtID, input, principal.Locale)
	if err != nil {
		return nil, err
	}
	owner := principal.UserID
	payment.UserID = &owner

	var debt models.Debt
	err = s.tx.WithinTransaction(ctx, func(debts repository.DebtRepository, payments repository.PaymentRepository) error {
		stored, err := debts.FindByID(ctx, principal.UserID, debtID)
		if err != nil {
			return err
		}
		debt = *stored

		history, err := payments.FindByDebt(ctx, principal.UserID, debtID)
		if err != nil {
			return fmt.Errorf("load payment history: %w", err)
		}
		payment.RemainingBalance = amortization.RemainingBalance(debt, append(history, *payment))

		if err := payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return advance(ctx, debts, principal.UserID, &debt,
			amortization.StatusAfterPayment(debt.Status, payment.RemainingBalance))
	})
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", translate(err))
	}

	s.updateCached(ctx, principal, func(book *models.Book) {
		book.AddPayment(*payment)
		advanceCached(book, debt)
	})

	logger.Info("Payment recorded",
		"payment_id", payment.ID,
		"debt_id", debtID,
		"remaining_balance", payment.RemainingBalance.String(),
		"status", debt.Status,
	)
	return &PaymentResult{Payment: payment, Debt: &debt}, nil
}

// UpdateDebtStatus moves a debt forward to status. Only the status column is
// written; backwards moves are rejected with ErrInvalidState.
func (s *SyncService) UpdateDebtStatus(ctx context.Context, principal policy.Principal, id, status string) (*models.Debt, error) {
	var debt models.Debt
	err := s.tx.WithinTransaction(ctx, func(debts repository.DebtRepository, _ repository.PaymentRepository) error {
		stored, err := debts.FindByID(ctx, principal.UserID, id)
		if err != nil {
			return err
		}
		debt = *stored
		return advance(ctx, debts, principal.UserID, &debt, status)
	})
	if err != nil {
		return nil, fmt.Errorf("update debt status: %w", translate(err))
	}

	s.updateCached(ctx, principal, func(book *models.Book) {
		advanceCached(book, debt)
	})
	return &debt, nil
}

// advance moves debt to next through the state machine and writes the new
// status, guarded on the states next may be reached from.
func advance(ctx context.Context, debts repository.DebtRepository, userID string, debt *models.Debt, next string) error {
	if next == debt.Status {
		return nil
	}
	if err := statemachine.NewDebtFSM(debt).TransitionTo(ctx, next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if err := debts.UpdateStatus(ctx, userID, debt.ID, statemachine.SourcesOf(debt.Status), debt.Status); err != nil {
		return fmt.Errorf("write status %s: %w", debt.Status, err)
	}
	return nil
}

// advanceCached applies a committed status to the cached debt. A patch that
// arrives after a later one never moves the status back.
func advanceCached(book *models.Book, debt models.Debt) {
	cached, ok := book.Debt(debt.ID)
	if !ok {
		book.AddDebt(debt)
		return
	}
	if statemachine.IsForward(cached.Status, debt.Status) {
		cached.Status = debt.Status
	}
}

// MigrationResult describes what a legacy migration did
type MigrationResult struct {
	Skipped  bool
	Reason   string
	Debts    int
	Payments int
	Orphans  int
}

// MigrateLegacyData copies the legacy snapshot into the store when, and only
// when, the store holds no debts yet. It never fails: errors are logged and
// normal operation continues.
func (s *SyncService) MigrateLegacyData(ctx context.Context) MigrationResult {
	result, err := s.migrate(ctx)
	if err != nil {
		logger.Error("Legacy data migration failed", "error", err)
		return MigrationResult{Skipped: true, Reason: "error"}
	}
	if result.Skipped {
		logger.Info("Legacy data migration skipped", "reason", result.Reason)
		return result
	}
	logger.Info("Legacy data migrated", "debts", result.Debts, "payments", result.Payments, "orphan_payments", result.Orphans)
	return result
}

func (s *SyncService) migrate(ctx context.Context) (MigrationResult, error) {
	if s.legacy == nil {
		return MigrationResult{Skipped: true, Reason: "no legacy source"}, nil
	}

	count, err := s.legacyRepo.CountDebts(ctx)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("count debts: %w", err)
	}
	if count > 0 {
		return MigrationResult{Skipped: true, Reason: "store not empty"}, nil
	}

	snapshot, err := s.legacy.Load(ctx)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("load %s: %w", s.legacy.Describe(), err)
	}
	if snapshot.Empty() {
		return MigrationResult{Skipped: true, Reason: "legacy source empty"}, nil
	}

	var owner *string
	if s.legacyOwnerID != "" {
		id := s.legacyOwnerID
		owner = &id
	} else {
		logger.Warn("LEGACY_OWNER_ID is not set, migrated records will not be visible to any user")
	}

	known := make(map[string]bool, len(snapshot.Debts))
	for i := range snapshot.Debts {
		snapshot.Debts[i].UserID = owner
		known[snapshot.Debts[i].ID] = true
	}

	// a payment whose debt is gone would fail the whole import
	payments := make([]models.Payment, 0, len(snapshot.Payments))
	orphans := 0
	for _, p := range snapshot.Payments {
		if !known[p.DebtID] {
			orphans++
			logger.Warn("Skipping legacy payment without a debt", "payment_id", p.ID, "debt_id", p.DebtID)
			continue
		}
		p.UserID = owner
		payments = append(payments, p)
	}

	if err := s.legacyRepo.Import(ctx, snapshot.Debts, payments); err != nil {
		return MigrationResult{}, fmt.Errorf("import: %w", err)
	}
	return MigrationResult{Debts: len(snapshot.Debts), Payments: len(payments), Orphans: orphans}, nil
}

// ScanOverdue logs open debts whose next scheduled payment is already past
func (s *SyncService) ScanOverdue(ctx context.Context) error {
	debts, err := s.debtRepo.FindOpen(ctx)
	if err != nil {
		return fmt.Errorf("find open debts: %w", err)
	}
	ids := make([]string, 0, len(debts))
	for _, d := range debts {
		ids = append(ids, d.ID)
	}
	payments, err := s.paymentRepo.FindByDebts(ctx, ids)
	if err != nil {
		return fmt.Errorf("find payments: %w", err)
	}

	book := models.NewBook(debts, payments)
	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	overdue := 0
	for _, debt := range debts {
		next, ok := amortization.NextPaymentDate(debt, book.PaymentsFor(debt.ID))
		if ok && next.Before(today) {
			overdue++
			logger.Debug("Overdue debt", "debt_id", debt.ID, "next_payment_date", next.Format(models.DateLayout))
		}
	}
	logger.Info("Overdue scan finished", "open_debts", len(debts), "overdue", overdue)
	return nil
}

func (s *SyncService) cached(ctx context.Context, userID string) (*models.Book, bool) {
	book, ok, err := s.books.Get(ctx, userID)
	if err != nil {
		logger.Warn("Book cache read failed", "user_id", userID, "error", err)
		return nil, false
	}
	return book, ok
}

func (s *SyncService) store(ctx context.Context, userID string, book *models.Book) error {
	if err := s.books.Set(ctx, userID, book); err != nil {
		logger.Warn("Book cache write failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}

func (s *SyncService) lockBook(userID string) func() {
	v, _ := s.bookLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// updateCached applies fn to the cached book if there is one. A miss is left
// alone: the next Load fetches the confirmed record from the store. A book
// that cannot be written back is dropped so it is not served stale.
func (s *SyncService) updateCached(ctx context.Context, principal policy.Principal, fn func(*models.Book)) {
	unlock := s.lockBook(principal.UserID)
	defer unlock()

	book, ok := s.cached(ctx, principal.UserID)
	if !ok {
		return
	}
	fn(book)
	if err := s.store(ctx, principal.UserID, book); err != nil {
		s.invalidate(ctx, principal)
	}
}

// invalidate drops the cached book and schedules a background reload
func (s *SyncService) invalidate(ctx context.Context, principal policy.Principal) {
	if err := s.books.Delete(ctx, principal.UserID); err != nil {
		logger.Warn("Book cache delete failed", "user_id", principal.UserID, "error", err)
	}
	if s.worker == nil {
		return
	}
	s.worker.Enqueue("warm-book", func(ctx context.Context) error {
		_, err := s.Load(ctx, principal)
		return err
	})
}

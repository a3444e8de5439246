package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sjperalta/debtbook-api/internal/cache"
	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/storage"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

var testPrincipal = policy.Principal{UserID: "u1", Role: models.RoleUser, Locale: "en"}

// Mock DebtRepository (using embedding to avoid implementing all methods)
type mockDebtRepository struct {
	repository.DebtRepository
	mockFindAll  func(ctx context.Context, userID string) ([]models.Debt, error)
	mockCreate   func(ctx context.Context, debt *models.Debt) error
	mockFindOpen func(ctx context.Context) ([]models.Debt, error)
}

func (m *mockDebtRepository) FindAll(ctx context.Context, userID string) ([]models.Debt, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx, userID)
	}
	return nil, nil
}

func (m *mockDebtRepository) Create(ctx context.Context, debt *models.Debt) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, debt)
	}
	if debt.ID == "" {
		debt.ID = "new-debt"
	}
	debt.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

func (m *mockDebtRepository) FindOpen(ctx context.Context) ([]models.Debt, error) {
	if m.mockFindOpen != nil {
		return m.mockFindOpen(ctx)
	}
	return nil, nil
}

// Mock PaymentRepository
type mockPaymentRepository struct {
	repository.PaymentRepository
	mockFindAll     func(ctx context.Context, userID string) ([]models.Payment, error)
	mockCreate      func(ctx context.Context, payment *models.Payment) error
	mockFindByDebts func(ctx context.Context, debtIDs []string) ([]models.Payment, error)
	created         []models.Payment
}

func (m *mockPaymentRepository) FindAll(ctx context.Context, userID string) ([]models.Payment, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx, userID)
	}
	return nil, nil
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	if payment.ID == "" {
		payment.ID = "new-payment"
	}
	m.created = append(m.created, *payment)
	return nil
}

func (m *mockPaymentRepository) FindByDebts(ctx context.Context, debtIDs []string) ([]models.Payment, error) {
	if m.mockFindByDebts != nil {
		return m.mockFindByDebts(ctx, debtIDs)
	}
	return nil, nil
}

// passthroughTransactor runs fn directly against the given repositories
type passthroughTransactor struct {
	debts    repository.DebtRepository
	payments repository.PaymentRepository
}

func (p passthroughTransactor) WithinTransaction(ctx context.Context, fn func(repository.DebtRepository, repository.PaymentRepository) error) error {
	return fn(p.debts, p.payments)
}

// fakeStore is an in-memory store for debts and payments. Transactions run one
// at a time, the way a row lock on the debt serializes writers, and roll back
// when fn fails.
type fakeStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	debts        map[string]models.Debt
	payments     []models.Payment
	statusWrites []string
	nextID       int

	// beforeCreate runs inside the transaction before a payment is stored
	beforeCreate func(p *models.Payment) error
	statusErr    error
}

func newFakeStore(debts ...models.Debt) *fakeStore {
	s := &fakeStore{debts: make(map[string]models.Debt)}
	for _, d := range debts {
		owner := testPrincipal.UserID
		d.UserID = &owner
		s.debts[d.ID] = d
	}
	return s
}

func (s *fakeStore) WithinTransaction(ctx context.Context, fn func(repository.DebtRepository, repository.PaymentRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	debts := make(map[string]models.Debt, len(s.debts))
	for id, d := range s.debts {
		debts[id] = d
	}
	payments := append([]models.Payment(nil), s.payments...)
	writes := len(s.statusWrites)
	s.mu.Unlock()

	if err := fn(fakeStoreDebts{s: s}, fakeStorePayments{s: s}); err != nil {
		s.mu.Lock()
		s.debts = debts
		s.payments = payments
		s.statusWrites = s.statusWrites[:writes]
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *fakeStore) status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debts[id].Status
}

func (s *fakeStore) storedPayments() []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Payment(nil), s.payments...)
}

type fakeStoreDebts struct {
	repository.DebtRepository
	s *fakeStore
}

func (r fakeStoreDebts) FindAll(ctx context.Context, userID string) ([]models.Debt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var debts []models.Debt
	for _, d := range r.s.debts {
		debts = append(debts, d)
	}
	return debts, nil
}

func (r fakeStoreDebts) FindByID(ctx context.Context, userID, id string) (*models.Debt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.debts[id]
	if !ok || d.UserID == nil || *d.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r fakeStoreDebts) UpdateStatus(ctx context.Context, userID, id string, from []string, to string) error {
	if r.s.statusErr != nil {
		return r.s.statusErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.debts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if !slices.Contains(from, d.Status) {
		return repository.ErrStatusChanged
	}
	d.Status = to
	r.s.debts[id] = d
	r.s.statusWrites = append(r.s.statusWrites, id+":"+to)
	return nil
}

type fakeStorePayments struct {
	repository.PaymentRepository
	s *fakeStore
}

func (r fakeStorePayments) FindAll(ctx context.Context, userID string) ([]models.Payment, error) {
	return r.s.storedPayments(), nil
}

func (r fakeStorePayments) FindByDebt(ctx context.Context, userID, debtID string) ([]models.Payment, error) {
	var result []models.Payment
	for _, p := range r.s.storedPayments() {
		if p.DebtID == debtID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r fakeStorePayments) Create(ctx context.Context, payment *models.Payment) error {
	if r.s.beforeCreate != nil {
		if err := r.s.beforeCreate(payment); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextID++
	payment.ID = fmt.Sprintf("p%d", r.s.nextID)
	r.s.payments = append(r.s.payments, *payment)
	return nil
}

// fakeLegacyRepository behaves like an initially empty store
type fakeLegacyRepository struct {
	debts     []models.Debt
	payments  []models.Payment
	imports   int
	countErr  error
	importErr error
}

func (f *fakeLegacyRepository) CountDebts(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.debts)), nil
}

func (f *fakeLegacyRepository) Import(ctx context.Context, debts []models.Debt, payments []models.Payment) error {
	if f.importErr != nil {
		return f.importErr
	}
	f.imports++
	f.debts = append(f.debts, debts...)
	f.payments = append(f.payments, payments...)
	return nil
}

// fakeLegacySource serves a fixed snapshot
type fakeLegacySource struct {
	snapshot *storage.Snapshot
	err      error
}

func (f *fakeLegacySource) Load(ctx context.Context) (*storage.Snapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeLegacySource) Describe() string { return "fake" }

func newTestValidator() *validation.Validator {
	return validation.New(config.DefaultFormSettings(), "2000-01-01")
}

func newTestSyncService(debts *mockDebtRepository, payments *mockPaymentRepository) (*SyncService, *cache.MemoryCache) {
	books := cache.NewMemoryCache(0)
	tx := passthroughTransactor{debts: debts, payments: payments}
	return NewSyncService(debts, payments, tx, &fakeLegacyRepository{}, books, newTestValidator(), nil, nil, ""), books
}

// newStoreSyncService wires a sync service to an in-memory store
func newStoreSyncService(store *fakeStore, books cache.BookCache) *SyncService {
	return NewSyncService(fakeStoreDebts{s: store}, fakeStorePayments{s: store}, store, &fakeLegacyRepository{}, books, newTestValidator(), nil, nil, "")
}

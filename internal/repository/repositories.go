package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Debt     DebtRepository
	Payment  PaymentRepository
	Category CategoryRepository
	Bank     BankRepository
	DayNote  DayNoteRepository
	UserRole UserRoleRepository
	Legacy   LegacyImportRepository
	Tx       Transactor
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Debt:     NewDebtRepository(db),
		Payment:  NewPaymentRepository(db),
		Category: NewCategoryRepository(db),
		Bank:     NewBankRepository(db),
		DayNote:  NewDayNoteRepository(db),
		UserRole: NewUserRoleRepository(db),
		Legacy:   NewLegacyImportRepository(db),
		Tx:       NewTransactor(db),
	}
}

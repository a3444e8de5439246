package models

import "sort"

// Book is a principal's cached view of its debts and payments. Callers apply
// changes only after the store has confirmed them.
type Book struct {
	Debts    []Debt    `json:"debts"`
	Payments []Payment `json:"payments"`
}

// NewBook builds a book from freshly fetched collections
func NewBook(debts []Debt, payments []Payment) *Book {
	b := &Book{Debts: debts, Payments: payments}
	if b.Debts == nil {
		b.Debts = []Debt{}
	}
	if b.Payments == nil {
		b.Payments = []Payment{}
	}
	return b
}

// Clone returns a deep enough copy to mutate without touching the receiver
func (b *Book) Clone() *Book {
	debts := make([]Debt, len(b.Debts))
	copy(debts, b.Debts)
	payments := make([]Payment, len(b.Payments))
	copy(payments, b.Payments)
	return &Book{Debts: debts, Payments: payments}
}

// Debt finds a debt by id
func (b *Book) Debt(id string) (*Debt, bool) {
	for i := range b.Debts {
		if b.Debts[i].ID == id {
			return &b.Debts[i], true
		}
	}
	return nil, false
}

// PaymentsFor returns the payments of a debt ordered by payment date
func (b *Book) PaymentsFor(debtID string) []Payment {
	var result []Payment
	for _, p := range b.Payments {
		if p.DebtID == debtID {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PaymentDate.Before(result[j].PaymentDate)
	})
	return result
}

// AddDebt appends a persisted debt unless the book already holds it
func (b *Book) AddDebt(d Debt) {
	if _, ok := b.Debt(d.ID); ok {
		return
	}
	b.Debts = append(b.Debts, d)
}

// AddPayment appends a persisted payment unless the book already holds it
func (b *Book) AddPayment(p Payment) {
	for i := range b.Payments {
		if b.Payments[i].ID == p.ID {
			return
		}
	}
	b.Payments = append(b.Payments, p)
}

// SetStatus updates the cached status of a debt, returning false if unknown
func (b *Book) SetStatus(debtID, status string) bool {
	d, ok := b.Debt(debtID)
	if !ok {
		return false
	}
	d.Status = status
	return true
}

package mapping

import (
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/models"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
)

// ToModelExpense converts a domain Expense to a model Expense, rounding the amount for storage.
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ID:          d.ExpenseID,
		Amount:      accounting.RoundForStorage(d.Amount),
		Description: d.Description,
		Date:        d.Date,
		Payer:       string(d.Payer),
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ID,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		Payer:       domain.Participant(m.Payer),
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToModelLink converts a domain link to its row, rounding the percentage for storage.
func ToModelLink(d domain.RideExpenseLink) models.RideExpenseLink {
	return models.RideExpenseLink{
		RideID:     d.RideID,
		ExpenseID:  d.ExpenseID,
		Percentage: accounting.RoundForStorage(d.Percentage),
	}
}

// ToModelBalance converts a domain Balance to its row, rounding the amount for storage.
func ToModelBalance(d domain.Balance) models.ExpenseBalance {
	return models.ExpenseBalance{
		ID:        d.BalanceID,
		ExpenseID: d.ExpenseID,
		FromUser:  string(d.From),
		ToUser:    string(d.To),
		Amount:    accounting.RoundForStorage(d.Amount),
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainBalance converts an expense_balances row to a domain Balance
func ToDomainBalance(m models.ExpenseBalance) domain.Balance {
	return domain.Balance{
		BalanceID: m.ID,
		ExpenseID: m.ExpenseID,
		From:      domain.Participant(m.FromUser),
		To:        domain.Participant(m.ToUser),
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainExportedItem converts an exported_items row to its domain form
func ToDomainExportedItem(m models.ExportedItem) domain.ExportedItem {
	return domain.ExportedItem{
		ItemType:   domain.ItemType(m.ItemType),
		ItemID:     m.ItemID,
		ExportedAt: m.ExportedAt,
	}
}

// ToModelExportedItem converts a domain exported item to its row
func ToModelExportedItem(d domain.ExportedItem) models.ExportedItem {
	return models.ExportedItem{
		ItemType:   string(d.ItemType),
		ItemID:     d.ItemID,
		ExportedAt: d.ExportedAt,
	}
}

// ToDomainBalanceDetail joins a balance row with the expense it was derived from.
func ToDomainBalanceDetail(b models.ExpenseBalance, e models.Expense) domain.ExpenseBalanceDetail {
	return domain.ExpenseBalanceDetail{
		Balance:          ToDomainBalance(b),
		Description:      e.Description,
		ExpenseDate:      e.Date,
		ExpenseTotal:     e.Amount,
		ExpenseCreatedAt: e.CreatedAt,
	}
}

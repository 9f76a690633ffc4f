package dto

import (
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	"github.com/SscSPs/car_expense_app/internal/utils/accounting"
)

// SummaryRowResponse is one balance row joined with its expense.
type SummaryRowResponse struct {
	ExpenseID          int64  `json:"expense_id"`
	ExpenseDescription string `json:"expense_description"`
	FromUser           string `json:"from_user"`
	ToUser             string `json:"to_user"`
	Amount             string `json:"amount"`
	TotalAmount        string `json:"total_amount"`
}

// TotalBalanceResponse is a grouped sum of directed debts.
type TotalBalanceResponse struct {
	FromUser    string `json:"from_user"`
	ToUser      string `json:"to_user"`
	TotalAmount string `json:"total_amount"`
}

// DetailedBalanceResponse is a pending per-expense balance.
type DetailedBalanceResponse struct {
	ExpenseID     int64     `json:"expense_id"`
	BalanceID     int64     `json:"balance_id"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	TotalAmount   string    `json:"total_amount"`
	FromUser      string    `json:"from_user"`
	ToUser        string    `json:"to_user"`
	BalanceAmount string    `json:"balance_amount"`
}

// SettlementResponse is a netted amount one participant owes another.
type SettlementResponse struct {
	FromUser string `json:"from_user"`
	ToUser   string `json:"to_user"`
	Amount   string `json:"amount"`
}

// ExpenseBalancesResponse combines pending per-expense balances with their netted totals.
type ExpenseBalancesResponse struct {
	DetailedBalances []DetailedBalanceResponse `json:"detailedBalances"`
	TotalBalances    []SettlementResponse      `json:"totalBalances"`
}

// ExpenseBalances is the service-level result behind ExpenseBalancesResponse.
type ExpenseBalances struct {
	Details     []domain.ExpenseBalanceDetail
	Settlements []domain.Settlement
}

// ToSummaryRowResponses converts balance details to summary rows.
func ToSummaryRowResponses(details []domain.ExpenseBalanceDetail) []SummaryRowResponse {
	rows := make([]SummaryRowResponse, len(details))
	for i, d := range details {
		rows[i] = SummaryRowResponse{
			ExpenseID:          d.ExpenseID,
			ExpenseDescription: d.Description,
			FromUser:           string(d.From),
			ToUser:             string(d.To),
			Amount:             accounting.FormatMoney(d.Amount),
			TotalAmount:        accounting.FormatMoney(d.ExpenseTotal),
		}
	}
	return rows
}

// ToTotalBalanceResponses converts grouped settlements to their response DTOs.
func ToTotalBalanceResponses(rows []domain.Settlement) []TotalBalanceResponse {
	out := make([]TotalBalanceResponse, len(rows))
	for i, s := range rows {
		out[i] = TotalBalanceResponse{
			FromUser:    string(s.From),
			ToUser:      string(s.To),
			TotalAmount: accounting.FormatMoney(s.Amount),
		}
	}
	return out
}

// ToExpenseBalancesResponse converts the detailed and netted balances to the response DTO.
func ToExpenseBalancesResponse(b *ExpenseBalances) ExpenseBalancesResponse {
	resp := ExpenseBalancesResponse{
		DetailedBalances: make([]DetailedBalanceResponse, len(b.Details)),
		TotalBalances:    make([]SettlementResponse, len(b.Settlements)),
	}
	for i, d := range b.Details {
		resp.DetailedBalances[i] = DetailedBalanceResponse{
			ExpenseID:     d.ExpenseID,
			BalanceID:     d.BalanceID,
			Description:   d.Description,
			Date:          d.ExpenseDate,
			TotalAmount:   accounting.FormatMoney(d.ExpenseTotal),
			FromUser:      string(d.From),
			ToUser:        string(d.To),
			BalanceAmount: accounting.FormatMoney(d.Amount),
		}
	}
	for i, s := range b.Settlements {
		resp.TotalBalances[i] = SettlementResponse{
			FromUser: string(s.From),
			ToUser:   string(s.To),
			Amount:   accounting.FormatMoney(s.Amount),
		}
	}
	return resp
}

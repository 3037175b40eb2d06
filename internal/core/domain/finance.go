package domain

import "time"

// DebtStatus is the lifecycle state of an athlete debt.
type DebtStatus string

const (
	DebtPending   DebtStatus = "PENDING"
	DebtPaid      DebtStatus = "PAID"
	DebtOverdue   DebtStatus = "OVERDUE"
	DebtCancelled DebtStatus = "CANCELLED"
)

// Debt tracks a financial obligation of an athlete (Phase 2, declaration only).
type Debt struct {
	ID          string     `json:"id"`
	AthleteID   string     `json:"athleteId"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      DebtStatus `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Payment records a (partial) settlement of a debt.
type Payment struct {
	ID            string    `json:"id"`
	DebtID        string    `json:"debtId"`
	AmountPaid    float64   `json:"amountPaid"`
	PaymentDate   time.Time `json:"paymentDate"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// TransactionType classifies a club-wide financial record.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// FinancialRecord is a club-wide transaction (Phase 2, declaration only).
type FinancialRecord struct {
	ID              string          `json:"id"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          float64         `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedBy       string          `json:"createdBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// FinancialSummary backs the admin dashboard totals.
type FinancialSummary struct {
	TotalIncome   float64   `json:"totalIncome"`
	TotalExpenses float64   `json:"totalExpenses"`
	Balance       float64   `json:"balance"`
	PeriodStart   time.Time `json:"periodStart"`
	PeriodEnd     time.Time `json:"periodEnd"`
}

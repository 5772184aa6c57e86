package models

import "github.com/jinzhu/gorm"

// ExpenseKind distinguishes fixed from variable expenses
type ExpenseKind string

const (
	ExpenseFixed    ExpenseKind = "fixed"
	ExpenseVariable ExpenseKind = "variable"
)

// ValidExpenseKind reports whether k is a supported expense kind.
func ValidExpenseKind(k ExpenseKind) bool {
	return k == ExpenseFixed || k == ExpenseVariable
}

// Expense represents a fixed or variable operating expense. Expenses carry no
// derived fields; they feed dashboard aggregation and the AI price advisor.
type Expense struct {
	gorm.Model
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Kind        ExpenseKind `json:"kind"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// TableName sets the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

package devserver

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paysys/paysys/internal/model"
)

// Seed loads a demo user "demo" (password "demo123") with an account and a
// short history. It returns the user ID.
func Seed(b *Bank) (int, error) {
	id, err := b.AddUser(model.User{
		Name:        "Demo",
		LastName:    "User",
		Address:     "123 Main St",
		AccountType: model.AccountTypeChecking,
		PhoneNumber: "555-0100",
		Username:    "demo",
	}, "demo123")
	if err != nil {
		return 0, fmt.Errorf("seeding user: %w", err)
	}
	if _, err := b.OpenAccount(id, "", 0, decimal.NewFromInt(1250)); err != nil {
		return 0, fmt.Errorf("seeding account: %w", err)
	}

	history := []model.Transaction{
		{Amount: 2400, Date: "2025-01-01", Type: model.TypeCredit, Status: model.StatusComplete, Description: "Payroll"},
		{Amount: 1100, Date: "2025-01-02", Type: model.TypeDebit, Status: model.StatusComplete, Description: "Rent"},
		{Amount: 6, Date: "2025-01-03", Type: model.TypeDebit, Status: model.StatusPending, Description: "Coffee"},
		{Amount: 44, Date: "2025-01-04", Type: model.TypeTransfer, Status: model.StatusComplete, Description: "Split dinner"},
		{Amount: 30, Date: "2025-01-05", Type: model.TypeDebit, Status: model.StatusFail, Description: "Gym"},
	}
	for _, txn := range history {
		if err := b.Record(id, txn); err != nil {
			return 0, fmt.Errorf("seeding history: %w", err)
		}
	}
	return id, nil
}

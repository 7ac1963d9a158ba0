package models

import "time"

// Типы транзакций
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

type Transaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	WalletID    int       `json:"wallet_id"`
	ToWalletID  *int      `json:"to_wallet_id,omitempty"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	CategoryID  *int      `json:"category_id,omitempty"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionView — транзакция с названиями кошельков и категории для выдачи наружу.
type TransactionView struct {
	Transaction
	WalletName   string `json:"wallet_name"`
	ToWalletName string `json:"to_wallet_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

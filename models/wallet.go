package models

// Типы кошельков
const (
	WalletCash    = "cash"
	WalletBank    = "bank"
	WalletEwallet = "ewallet"
)

// Wallet.Balance — производное значение: начальный баланс плюс свёртка журнала
// транзакций по этому кошельку. Колонка wallets.balance хранит только начальный баланс.
type Wallet struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance int64  `json:"balance"`
}

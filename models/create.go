package models

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD or RFC3339")

type CreateUser struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
}

func (c *CreateUser) Validate() error {
	if len(c.Username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(c.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

type CreateWallet struct {
	Name    string `json:"name" example:"Cash"`
	Type    string `json:"type" example:"cash"`
	Balance int64  `json:"balance" example:"0"`
}

// Validate проверяет входные данные и подставляет тип по умолчанию.
func (c *CreateWallet) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Type == "" {
		c.Type = WalletCash
	}
	if c.Type != WalletCash && c.Type != WalletBank && c.Type != WalletEwallet {
		return errors.New("type must be 'cash', 'bank' or 'ewallet'")
	}
	if c.Balance < 0 {
		return errors.New("balance must not be negative")
	}
	return nil
}

type CreateCategory struct {
	Name string `json:"name" example:"Salary"`
	Type string `json:"type" example:"income"`
}

func (c *CreateCategory) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Type != TypeIncome && c.Type != TypeExpense {
		return errors.New("type must be 'income' or 'expense'")
	}
	return nil
}

type CreateTransaction struct {
	Amount      int64  `json:"amount" example:"500000"`
	Type        string `json:"type" example:"income"`
	WalletID    int    `json:"wallet_id" example:"1"`
	ToWalletID  *int   `json:"to_wallet_id,omitempty"`
	CategoryID  *int   `json:"category_id,omitempty"`
	Description string `json:"description,omitempty" example:"monthly salary"`
	Date        string `json:"date,omitempty" example:"2025-11-18"`
}

// Validate прогоняет все проверки, не требующие обращения к базе. Ссылочная
// целостность (владение кошельком и категорией) проверяется в слое хранения.
func (c *CreateTransaction) Validate() error {
	if c.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	switch c.Type {
	case TypeIncome, TypeExpense:
		if c.CategoryID == nil {
			return errors.New("category_id is required for income and expense transactions")
		}
		if c.ToWalletID != nil {
			return errors.New("to_wallet_id is only allowed for transfer transactions")
		}
	case TypeTransfer:
		if c.ToWalletID == nil {
			return errors.New("to_wallet_id is required for transfer transactions")
		}
		if *c.ToWalletID == c.WalletID {
			return errors.New("to_wallet_id must differ from wallet_id")
		}
		if c.CategoryID != nil {
			return errors.New("category_id is not allowed for transfer transactions")
		}
	default:
		return errors.New("type must be 'income', 'expense' or 'transfer'")
	}
	if c.WalletID <= 0 {
		return errors.New("wallet_id is required")
	}
	if _, err := c.ResolveDate(time.Now()); err != nil {
		return err
	}
	return nil
}

// ResolveDate разбирает дату из запроса; пустая строка означает «сейчас».
func (c *CreateTransaction) ResolveDate(now time.Time) (time.Time, error) {
	if c.Date == "" {
		return now, nil
	}
	if d, err := time.Parse("2006-01-02", c.Date); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, c.Date); err == nil {
		return d, nil
	}
	return time.Time{}, ErrInvalidDate
}

// TransactionFilter — параметры выборки журнала транзакций.
type TransactionFilter struct {
	Type       string
	CategoryID int
	MinAmount  int64
	MaxAmount  int64
	Sort       string
}

func (f *TransactionFilter) Validate() error {
	if f.Type != "" && f.Type != TypeIncome && f.Type != TypeExpense && f.Type != TypeTransfer {
		return errors.New("invalid type filter: must be 'income', 'expense' or 'transfer'")
	}
	if f.MinAmount < 0 || f.MaxAmount < 0 {
		return errors.New("min_amount and max_amount must not be negative")
	}
	if f.Sort != "" && f.Sort != "asc" && f.Sort != "desc" {
		return errors.New("invalid sort parameter: must be 'asc' or 'desc'")
	}
	return nil
}

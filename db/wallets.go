package db

import (
	"database/sql"

	"github.com/dhafinr/dompetku/backend/models"
)

// Баланс кошелька всегда выводится из журнала: начальный баланс плюс доходы,
// минус расходы, минус исходящие и плюс входящие переводы.
const walletBalanceQuery = `
	SELECT w.id, w.user_id, w.name, w.type,
	       w.balance + COALESCE(SUM(CASE
	           WHEN t.type = 'income'   AND t.wallet_id = w.id    THEN t.amount
	           WHEN t.type = 'expense'  AND t.wallet_id = w.id    THEN -t.amount
	           WHEN t.type = 'transfer' AND t.wallet_id = w.id    THEN -t.amount
	           WHEN t.type = 'transfer' AND t.to_wallet_id = w.id THEN t.amount
	           ELSE 0
	       END), 0) AS balance
	FROM wallets w
	LEFT JOIN transactions t ON t.wallet_id = w.id OR t.to_wallet_id = w.id`

func (s *Storage) GetWallets(userID int) ([]models.Wallet, error) {
	rows, err := s.DB.Query(walletBalanceQuery+" WHERE w.user_id = $1 GROUP BY w.id ORDER BY w.id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets = []models.Wallet{}
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.Balance); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

func (s *Storage) GetWallet(userID, id int) (*models.Wallet, error) {
	var w models.Wallet
	err := s.DB.QueryRow(
		walletBalanceQuery+" WHERE w.id = $1 AND w.user_id = $2 GROUP BY w.id",
		id, userID,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.Balance)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Storage) CreateWallet(userID int, input *models.CreateWallet) (*models.Wallet, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	wallet := &models.Wallet{UserID: userID, Name: input.Name, Type: input.Type, Balance: input.Balance}
	err := s.DB.QueryRow(
		"INSERT INTO wallets (user_id, name, type, balance) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, input.Name, input.Type, input.Balance,
	).Scan(&wallet.ID)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// DeleteWallet проверяет владение до удаления и выполняет обе операции в одной
// транзакции. Кошелёк, на который ссылается журнал, удалить нельзя.
func (s *Storage) DeleteWallet(userID, id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(
		"SELECT id FROM wallets WHERE id = $1 AND user_id = $2 FOR UPDATE",
		id, userID,
	).Scan(&owned)
	if err == sql.ErrNoRows {
		return ErrWalletNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM wallets WHERE id = $1", id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrWalletInUse
		}
		return err
	}
	return tx.Commit()
}

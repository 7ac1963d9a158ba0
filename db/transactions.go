package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dhafinr/dompetku/backend/models"
)

const transactionViewQuery = `
	SELECT t.id, t.user_id, t.wallet_id, t.to_wallet_id, t.amount, t.type,
	       t.category_id, t.description, t.date, t.created_at,
	       w.name, tw.name, c.name
	FROM transactions t
	JOIN wallets w ON w.id = t.wallet_id
	LEFT JOIN wallets tw ON tw.id = t.to_wallet_id
	LEFT JOIN categories c ON c.id = t.category_id`

func scanTransactionView(row interface{ Scan(...interface{}) error }) (*models.TransactionView, error) {
	var v models.TransactionView
	var toWalletID, categoryID sql.NullInt64
	var toWalletName, categoryName sql.NullString
	err := row.Scan(
		&v.ID, &v.UserID, &v.WalletID, &toWalletID, &v.Amount, &v.Type,
		&categoryID, &v.Description, &v.Date, &v.CreatedAt,
		&v.WalletName, &toWalletName, &categoryName,
	)
	if err != nil {
		return nil, err
	}
	if toWalletID.Valid {
		id := int(toWalletID.Int64)
		v.ToWalletID = &id
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		v.CategoryID = &id
	}
	v.ToWalletName = toWalletName.String
	v.CategoryName = categoryName.String
	return &v, nil
}

// GetTransactions возвращает журнал пользователя с названиями кошельков и категории.
// Без параметра sort записи идут от новых к старым.
func (s *Storage) GetTransactions(userID int, filter *models.TransactionFilter) ([]models.TransactionView, error) {
	if filter == nil {
		filter = &models.TransactionFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := transactionViewQuery + " WHERE t.user_id = $1"
	args := []interface{}{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if filter.MinAmount > 0 {
		args = append(args, filter.MinAmount)
		query += fmt.Sprintf(" AND t.amount >= $%d", len(args))
	}
	if filter.MaxAmount > 0 {
		args = append(args, filter.MaxAmount)
		query += fmt.Sprintf(" AND t.amount <= $%d", len(args))
	}

	if filter.Sort == "asc" {
		query += " ORDER BY t.date ASC"
	} else {
		query += " ORDER BY t.date DESC"
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions = []models.TransactionView{}
	for rows.Next() {
		v, err := scanTransactionView(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *v)
	}
	return transactions, rows.Err()
}

func (s *Storage) GetTransaction(userID, id int) (*models.TransactionView, error) {
	row := s.DB.QueryRow(transactionViewQuery+" WHERE t.id = $1 AND t.user_id = $2", id, userID)
	v, err := scanTransactionView(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// checkReferences проверяет ссылочную целостность входных данных внутри уже
// открытой транзакции: кошельки и категория должны существовать и принадлежать
// пользователю, тип категории — совпадать с типом операции.
func checkReferences(tx *sql.Tx, userID int, input *models.CreateTransaction) error {
	var walletID int
	err := tx.QueryRow(
		"SELECT id FROM wallets WHERE id = $1 AND user_id = $2",
		input.WalletID, userID,
	).Scan(&walletID)
	if err == sql.ErrNoRows {
		return ErrWalletNotFound
	}
	if err != nil {
		return err
	}

	switch input.Type {
	case models.TypeIncome, models.TypeExpense:
		var categoryType string
		err := tx.QueryRow(
			"SELECT type FROM categories WHERE id = $1 AND user_id = $2",
			*input.CategoryID, userID,
		).Scan(&categoryType)
		if err == sql.ErrNoRows {
			return ErrCategoryNotFound
		}
		if err != nil {
			return err
		}
		if categoryType != input.Type {
			return ErrCategoryTypeMismatch
		}
	case models.TypeTransfer:
		var toWalletID int
		err := tx.QueryRow(
			"SELECT id FROM wallets WHERE id = $1 AND user_id = $2",
			*input.ToWalletID, userID,
		).Scan(&toWalletID)
		if err == sql.ErrNoRows {
			return ErrWalletNotFound
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateTransaction выполняет проверки и вставку в одной транзакции базы,
// закрывая гонку между проверкой ссылок и записью.
func (s *Storage) CreateTransaction(userID int, input *models.CreateTransaction) (*models.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	date, err := input.ResolveDate(time.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := checkReferences(tx, userID, input); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		UserID:      userID,
		WalletID:    input.WalletID,
		ToWalletID:  input.ToWalletID,
		Amount:      input.Amount,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Date:        date,
	}
	err = tx.QueryRow(
		`INSERT INTO transactions (user_id, wallet_id, to_wallet_id, amount, type, category_id, description, date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
		userID, input.WalletID, nullableInt(input.ToWalletID), input.Amount, input.Type,
		nullableInt(input.CategoryID), input.Description, date,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransaction сначала убеждается, что цель существует и принадлежит
// пользователю, затем прогоняет проверки create против нового ввода. created_at
// не перезаписывается.
func (s *Storage) UpdateTransaction(userID, id int, input *models.CreateTransaction) (*models.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	date, err := input.ResolveDate(time.Now())
	if err != nil {
		return nil, err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var createdAt time.Time
	err = tx.QueryRow(
		"SELECT created_at FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE",
		id, userID,
	).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := checkReferences(tx, userID, input); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`UPDATE transactions
		 SET wallet_id = $1, to_wallet_id = $2, amount = $3, type = $4, category_id = $5, description = $6, date = $7
		 WHERE id = $8`,
		input.WalletID, nullableInt(input.ToWalletID), input.Amount, input.Type,
		nullableInt(input.CategoryID), input.Description, date, id,
	)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Transaction{
		ID:          id,
		UserID:      userID,
		WalletID:    input.WalletID,
		ToWalletID:  input.ToWalletID,
		Amount:      input.Amount,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}

// DeleteTransaction: владение проверяется до удаления, обе операции — в одной
// транзакции базы. Повторное удаление того же id снова даёт ErrTransactionNotFound.
func (s *Storage) DeleteTransaction(userID, id int) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int
	err = tx.QueryRow(
		"SELECT id FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE",
		id, userID,
	).Scan(&owned)
	if err == sql.ErrNoRows {
		return ErrTransactionNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM transactions WHERE id = $1", id); err != nil {
		return err
	}
	return tx.Commit()
}

// GetBalance — общий баланс пользователя: доходы минус расходы. Переводы
// перекладывают деньги между кошельками того же пользователя и на итог не влияют.
func (s *Storage) GetBalance(userID int) (int64, error) {
	var balance int64
	err := s.DB.QueryRow(
		`SELECT COALESCE(SUM(CASE
		     WHEN type = 'income'  THEN amount
		     WHEN type = 'expense' THEN -amount
		     ELSE 0
		 END), 0) FROM transactions WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	return balance, err
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

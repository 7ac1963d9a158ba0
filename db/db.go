package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Ошибки слоя хранения; обработчики сопоставляют их с HTTP-статусами через errors.Is.
var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrWalletInUse          = errors.New("wallet is referenced by transactions")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryInUse        = errors.New("category is referenced by transactions")
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

type Storage struct {
	DB *sql.DB
}

func NewStorage(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS wallets (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'cash',
		balance BIGINT NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		type TEXT NOT NULL
	)`)
	if err != nil {
		return nil, err
	}

	// wallet_id и category_id без ON DELETE: удаление кошелька или категории,
	// на которые ссылается журнал, должно падать с нарушением внешнего ключа.
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		wallet_id INT NOT NULL REFERENCES wallets(id),
		to_wallet_id INT REFERENCES wallets(id),
		amount BIGINT NOT NULL,
		type TEXT NOT NULL,
		category_id INT REFERENCES categories(id),
		description TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return nil, err
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

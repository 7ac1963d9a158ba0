package db

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dhafinr/dompetku/backend/models"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB инициализирует тестовую базу данных и очищает таблицы перед тестом.
// Тесты пропускаются, если POSTGRES_TEST_URL не задан.
func setupTestDB(t *testing.T) *Storage {
	_ = godotenv.Load("../.env")

	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	store, err := NewStorage(connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Очищаем таблицы перед тестами
	_, err = store.DB.Exec("TRUNCATE TABLE transactions, categories, wallets, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return store
}

func intptr(v int) *int {
	return &v
}

// TestCreateAndAuthenticateUser тестирует регистрацию и проверку пароля.
func TestCreateAndAuthenticateUser(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	// Тестируем создание пользователя
	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user ID to be set, got 0")
	}
	if user.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got %s", user.Username)
	}
	// Проверяем, что пароль захеширован корректно
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Error("Password hash does not match")
	}

	// Тестируем получение пользователя по имени
	fetchedUser, err := store.GetUserByUsername("testuser")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if fetchedUser == nil || fetchedUser.ID != user.ID {
		t.Errorf("Expected user {ID: %d}, got %+v", user.ID, fetchedUser)
	}

	// Тестируем получение несуществующего пользователя
	fetchedUser, err = store.GetUserByUsername("nonexistent")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetchedUser != nil {
		t.Errorf("Expected nil user, got %+v", fetchedUser)
	}

	// Тестируем дубликат имени пользователя
	_, err = store.CreateUser("testuser", "password456")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}

	// Тестируем короткий пароль
	_, err = store.CreateUser("testuser2", "short")
	if err == nil || err.Error() != "password must be at least 6 characters" {
		t.Errorf("Expected error 'password must be at least 6 characters', got %v", err)
	}

	// Тестируем аутентификацию: успех, неверный пароль, неизвестное имя
	authed, err := store.Authenticate("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, authed.ID)
	}

	_, err = store.Authenticate("testuser", "wrongpassword")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	_, err = store.Authenticate("ghost", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

// TestAuthenticateTimingParity: неизвестное имя не должно отвечать заметно
// быстрее неверного пароля, иначе по задержке можно перебирать имена.
func TestAuthenticateTimingParity(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	if _, err := store.CreateUser("testuser", "password123"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Прогрев соединения и кеша запроса
	store.Authenticate("testuser", "wrongpassword")

	start := time.Now()
	store.Authenticate("testuser", "wrongpassword")
	wrongPassword := time.Since(start)

	start = time.Now()
	store.Authenticate("ghost", "wrongpassword")
	unknownUser := time.Since(start)

	// Обе ветки выполняют bcrypt-сравнение; без него неизвестное имя стоило бы
	// один SELECT и было бы на порядки быстрее.
	if unknownUser < wrongPassword/4 {
		t.Errorf("Unknown username answered too fast: %v vs %v for wrong password", unknownUser, wrongPassword)
	}
}

// TestWallets тестирует создание, выборку и удаление кошельков, включая
// изоляцию между пользователями.
func TestWallets(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	other, err := store.CreateUser("otheruser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Тестируем создание кошелька с типом по умолчанию
	wallet, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "Cash"})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	if wallet.ID == 0 {
		t.Error("Expected wallet ID to be set, got 0")
	}
	if wallet.Type != models.WalletCash {
		t.Errorf("Expected type 'cash', got %s", wallet.Type)
	}
	if wallet.Balance != 0 {
		t.Errorf("Expected balance 0, got %d", wallet.Balance)
	}

	// Кошелёк с начальным балансом
	bank, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "BCA", Type: models.WalletBank, Balance: 100000})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	// Тестируем список кошельков
	wallets, err := store.GetWallets(user.ID)
	if err != nil {
		t.Fatalf("Failed to get wallets: %v", err)
	}
	if len(wallets) != 2 {
		t.Errorf("Expected 2 wallets, got %d", len(wallets))
	}

	// Кошельки другого пользователя не видны
	wallets, err = store.GetWallets(other.ID)
	if err != nil {
		t.Fatalf("Failed to get wallets: %v", err)
	}
	if len(wallets) != 0 {
		t.Errorf("Expected 0 wallets, got %d", len(wallets))
	}

	// Чужой кошелёк недоступен по id
	fetched, err := store.GetWallet(other.ID, wallet.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil wallet, got %+v", fetched)
	}

	// Удаление чужого кошелька — not found
	if err := store.DeleteWallet(other.ID, wallet.ID); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound, got %v", err)
	}

	// Тестируем успешное удаление
	if err := store.DeleteWallet(user.ID, bank.ID); err != nil {
		t.Fatalf("Failed to delete wallet: %v", err)
	}
	wallets, err = store.GetWallets(user.ID)
	if err != nil {
		t.Fatalf("Failed to get wallets: %v", err)
	}
	if len(wallets) != 1 {
		t.Errorf("Expected 1 wallet, got %d", len(wallets))
	}

	// Повторное удаление — not found
	if err := store.DeleteWallet(user.ID, bank.ID); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound, got %v", err)
	}
}

// TestWalletDerivedBalance тестирует производный баланс кошелька:
// начальный баланс плюс свёртка журнала, переводы двигают деньги между кошельками.
func TestWalletDerivedBalance(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	cash, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "Cash", Balance: 100000})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	bank, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "BCA", Type: models.WalletBank})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	salary, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	food, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Food", Type: models.TypeExpense})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	// Доход 500000 в cash, расход 200000 из cash, перевод 150000 cash -> bank
	if _, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 500000, Type: models.TypeIncome, WalletID: cash.ID, CategoryID: intptr(salary.ID),
	}); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if _, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 200000, Type: models.TypeExpense, WalletID: cash.ID, CategoryID: intptr(food.ID),
	}); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if _, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 150000, Type: models.TypeTransfer, WalletID: cash.ID, ToWalletID: intptr(bank.ID),
	}); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	// cash: 100000 + 500000 - 200000 - 150000 = 250000
	fetched, err := store.GetWallet(user.ID, cash.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if fetched.Balance != 250000 {
		t.Errorf("Expected cash balance 250000, got %d", fetched.Balance)
	}

	// bank: 0 + 150000 = 150000
	fetched, err = store.GetWallet(user.ID, bank.ID)
	if err != nil {
		t.Fatalf("Failed to get wallet: %v", err)
	}
	if fetched.Balance != 150000 {
		t.Errorf("Expected bank balance 150000, got %d", fetched.Balance)
	}

	// Общий баланс: 500000 - 200000, перевод не влияет
	balance, err := store.GetBalance(user.ID)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 300000 {
		t.Errorf("Expected balance 300000, got %d", balance)
	}

	// Кошелёк со связанными транзакциями удалить нельзя
	if err := store.DeleteWallet(user.ID, cash.ID); !errors.Is(err, ErrWalletInUse) {
		t.Errorf("Expected ErrWalletInUse, got %v", err)
	}
}

// TestCategories тестирует CRUD категорий, фильтр по типу и изоляцию пользователей.
func TestCategories(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	other, err := store.CreateUser("otheruser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Тестируем создание категории
	category, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if category.ID == 0 {
		t.Error("Expected category ID to be set, got 0")
	}

	if _, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Food", Type: models.TypeExpense}); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	// Некорректный тип
	_, err = store.CreateCategory(user.ID, &models.CreateCategory{Name: "Other", Type: "invalid"})
	if err == nil || err.Error() != "type must be 'income' or 'expense'" {
		t.Errorf("Expected error 'type must be 'income' or 'expense'', got %v", err)
	}

	// Тестируем фильтр по типу
	categories, err := store.GetCategories(user.ID, models.TypeIncome)
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Salary" {
		t.Errorf("Expected [Salary], got %+v", categories)
	}

	// Без фильтра — обе
	categories, err = store.GetCategories(user.ID, "")
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(categories))
	}

	// Чужая категория недоступна
	fetched, err := store.GetCategory(other.ID, category.ID)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil category, got %+v", fetched)
	}

	// Тестируем обновление
	updated, err := store.UpdateCategory(user.ID, category.ID, &models.CreateCategory{Name: "Paycheck", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}
	if updated.Name != "Paycheck" {
		t.Errorf("Expected name 'Paycheck', got %s", updated.Name)
	}

	// Обновление чужой категории — not found
	_, err = store.UpdateCategory(other.ID, category.ID, &models.CreateCategory{Name: "X", Type: models.TypeIncome})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	// Тестируем удаление и повторное удаление
	if err := store.DeleteCategory(user.ID, category.ID); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	if err := store.DeleteCategory(user.ID, category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

// TestCreateTransactionValidation тестирует конвейер проверок create:
// владение кошельком и категорией, совпадение типа категории, цели перевода.
func TestCreateTransactionValidation(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	other, err := store.CreateUser("otheruser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	wallet, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "Cash"})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	salary, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	otherWallet, err := store.CreateWallet(other.ID, &models.CreateWallet{Name: "Cash"})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	otherCategory, err := store.CreateCategory(other.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	// Отрицательная сумма
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: -100, Type: models.TypeIncome, WalletID: wallet.ID, CategoryID: intptr(salary.ID),
	})
	if err == nil || err.Error() != "amount must be positive" {
		t.Errorf("Expected error 'amount must be positive', got %v", err)
	}

	// Неизвестный тип
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: "invalid", WalletID: wallet.ID,
	})
	if err == nil || err.Error() != "type must be 'income', 'expense' or 'transfer'" {
		t.Errorf("Expected type validation error, got %v", err)
	}

	// Чужой кошелёк — not found
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeIncome, WalletID: otherWallet.ID, CategoryID: intptr(salary.ID),
	})
	if !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound, got %v", err)
	}

	// Чужая категория — not found
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeIncome, WalletID: wallet.ID, CategoryID: intptr(otherCategory.ID),
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}

	// Тип категории не совпадает с типом операции
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(salary.ID),
	})
	if !errors.Is(err, ErrCategoryTypeMismatch) {
		t.Errorf("Expected ErrCategoryTypeMismatch, got %v", err)
	}

	// Перевод без цели
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeTransfer, WalletID: wallet.ID,
	})
	if err == nil || err.Error() != "to_wallet_id is required for transfer transactions" {
		t.Errorf("Expected transfer target error, got %v", err)
	}

	// Перевод самому себе
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeTransfer, WalletID: wallet.ID, ToWalletID: intptr(wallet.ID),
	})
	if err == nil || err.Error() != "to_wallet_id must differ from wallet_id" {
		t.Errorf("Expected same-wallet error, got %v", err)
	}

	// Перевод на чужой кошелёк — not found
	_, err = store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeTransfer, WalletID: wallet.ID, ToWalletID: intptr(otherWallet.ID),
	})
	if !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound, got %v", err)
	}

	// Успешное создание: дата из строки, created_at выставлен сервером
	tx, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 500000, Type: models.TypeIncome, WalletID: wallet.ID, CategoryID: intptr(salary.ID),
		Description: "monthly salary", Date: "2025-11-18",
	})
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if tx.ID == 0 {
		t.Error("Expected transaction ID to be set, got 0")
	}
	if tx.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
	if tx.Date.Format("2006-01-02") != "2025-11-18" {
		t.Errorf("Expected date 2025-11-18, got %v", tx.Date)
	}
}

// TestTransactionLifecycle тестирует выборку, обновление и удаление транзакций.
func TestTransactionLifecycle(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	other, err := store.CreateUser("otheruser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	wallet, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "Cash"})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	salary, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	food, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Food", Type: models.TypeExpense})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	tx1, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 500000, Type: models.TypeIncome, WalletID: wallet.ID, CategoryID: intptr(salary.ID), Date: "2025-11-01",
	})
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	tx2, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 75000, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(food.ID), Date: "2025-11-05",
	})
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	// По умолчанию записи идут от новых к старым, с названиями кошелька и категории
	views, err := store.GetTransactions(user.ID, nil)
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(views))
	}
	if views[0].ID != tx2.ID {
		t.Errorf("Expected most recent transaction first, got %+v", views[0])
	}
	if views[0].WalletName != "Cash" || views[0].CategoryName != "Food" {
		t.Errorf("Expected enriched view {Cash, Food}, got %+v", views[0])
	}

	// Фильтр по типу
	views, err = store.GetTransactions(user.ID, &models.TransactionFilter{Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(views) != 1 || views[0].ID != tx1.ID {
		t.Errorf("Expected income transaction only, got %+v", views)
	}

	// Фильтры по сумме и сортировка по возрастанию
	views, err = store.GetTransactions(user.ID, &models.TransactionFilter{MinAmount: 50000, MaxAmount: 100000, Sort: "asc"})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(views) != 1 || views[0].ID != tx2.ID {
		t.Errorf("Expected expense transaction only, got %+v", views)
	}

	// Некорректный фильтр по типу
	_, err = store.GetTransactions(user.ID, &models.TransactionFilter{Type: "invalid"})
	if err == nil || err.Error() != "invalid type filter: must be 'income', 'expense' or 'transfer'" {
		t.Errorf("Expected invalid type filter error, got %v", err)
	}

	// Некорректный параметр сортировки
	_, err = store.GetTransactions(user.ID, &models.TransactionFilter{Sort: "invalid"})
	if err == nil || err.Error() != "invalid sort parameter: must be 'asc' or 'desc'" {
		t.Errorf("Expected invalid sort parameter error, got %v", err)
	}

	// Чужой журнал пуст
	views, err = store.GetTransactions(other.ID, nil)
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("Expected 0 transactions, got %d", len(views))
	}

	// Чужая транзакция недоступна по id
	view, err := store.GetTransaction(other.ID, tx1.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if view != nil {
		t.Errorf("Expected nil transaction, got %+v", view)
	}

	// Тестируем обновление: created_at сохраняется
	time.Sleep(10 * time.Millisecond)
	updated, err := store.UpdateTransaction(user.ID, tx2.ID, &models.CreateTransaction{
		Amount: 80000, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(food.ID), Date: "2025-11-06",
	})
	if err != nil {
		t.Fatalf("Failed to update transaction: %v", err)
	}
	if updated.Amount != 80000 {
		t.Errorf("Expected amount 80000, got %d", updated.Amount)
	}
	if !updated.CreatedAt.Equal(tx2.CreatedAt) {
		t.Errorf("Expected created_at %v to be preserved, got %v", tx2.CreatedAt, updated.CreatedAt)
	}

	// Обновление несуществующей транзакции — not found, даже с валидными ссылками
	_, err = store.UpdateTransaction(user.ID, 999, &models.CreateTransaction{
		Amount: 100, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(food.ID),
	})
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}

	// Обновление чужой транзакции — not found
	_, err = store.UpdateTransaction(other.ID, tx1.ID, &models.CreateTransaction{
		Amount: 100, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(food.ID),
	})
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}

	// Удаление чужой транзакции — not found, запись остаётся
	if err := store.DeleteTransaction(other.ID, tx1.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
	view, err = store.GetTransaction(user.ID, tx1.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if view == nil {
		t.Error("Expected transaction to survive foreign delete")
	}

	// Тестируем удаление и повторное удаление
	if err := store.DeleteTransaction(user.ID, tx1.ID); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if err := store.DeleteTransaction(user.ID, tx1.ID); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

// TestBalance тестирует свёртку журнала: доход минус расход.
func TestBalance(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// Пустой журнал — нулевой баланс
	balance, err := store.GetBalance(user.ID)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected balance 0, got %d", balance)
	}

	wallet, err := store.CreateWallet(user.ID, &models.CreateWallet{Name: "Cash"})
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}
	salary, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	food, err := store.CreateCategory(user.ID, &models.CreateCategory{Name: "Food", Type: models.TypeExpense})
	if err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	if _, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 500000, Type: models.TypeIncome, WalletID: wallet.ID, CategoryID: intptr(salary.ID),
	}); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if _, err := store.CreateTransaction(user.ID, &models.CreateTransaction{
		Amount: 200000, Type: models.TypeExpense, WalletID: wallet.ID, CategoryID: intptr(food.ID),
	}); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	balance, err = store.GetBalance(user.ID)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 300000 {
		t.Errorf("Expected balance 300000, got %d", balance)
	}
}

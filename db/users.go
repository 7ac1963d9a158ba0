package db

import (
	"database/sql"

	"github.com/dhafinr/dompetku/backend/models"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser хеширует пароль и сохраняет пользователя.
// Возвращает ErrUsernameTaken, если имя уже занято.
func (s *Storage) CreateUser(username, password string) (*models.User, error) {
	input := models.CreateUser{Username: username, Password: password}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Password: string(hash)}
	err = s.DB.QueryRow(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, string(hash),
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByID(id int) (*models.User, error) {
	var user models.User
	err := s.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// dummyHash — хеш для выравнивания времени ответа: сравнение выполняется и для
// несуществующего имени, иначе по задержке видно, есть ли такой пользователь.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// Authenticate сверяет пароль с хешем. Неизвестное имя и неверный пароль
// неразличимы снаружи: один и тот же ErrInvalidCredentials и одинаковая
// стоимость bcrypt-сравнения в обоих случаях.
func (s *Storage) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"waymark/internal/models"
	"waymark/internal/repo"
)

// Service — проверка учётных данных и выпуск сессионных токенов.
type Service struct {
	users  *repo.UserStore
	secret []byte
	ttl    time.Duration
}

func New(users *repo.UserStore, secret []byte, ttl time.Duration) *Service {
	return &Service{users: users, secret: secret, ttl: ttl}
}

// Verify проверяет логин/пароль и состояние аккаунта. Порядок проверок:
// существование → статус → срок действия аккаунта → пароль.
// Успех — аккаунт с настройками, поле пароля вычищено.
func (s *Service) Verify(ctx context.Context, login, password string) (*models.User, error) {
	u, err := s.users.FindByLogin(ctx, login)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.Status != models.StatusActive {
		return nil, ErrAccountInactive
	}
	if u.AccountValidUntil != nil && time.Now().After(*u.AccountValidUntil) {
		return nil, ErrAccountExpired
	}
	// bcrypt сравнивает за константное время
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	u.Password = ""
	return u, nil
}

// Issue выпускает подписанный токен для уже проверенного аккаунта.
func (s *Service) Issue(u *models.User) (string, error) {
	return GenerateToken(u, s.secret, s.ttl)
}

// Secret отдаёт ключ подписи для guard-middleware.
func (s *Service) Secret() []byte { return s.secret }

package auth

import "errors"

var (
	// ErrInvalidCredentials — неизвестный логин или неверный пароль.
	// Случаи намеренно не различаются (защита от перебора логинов).
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
	ErrAccountExpired     = errors.New("account has expired")
	// ErrUnauthenticated — токен отсутствует, битый, с плохой подписью или истёк.
	ErrUnauthenticated = errors.New("unauthenticated")
)

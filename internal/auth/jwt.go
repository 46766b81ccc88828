package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"waymark/internal/models"
)

// Claims — структура утверждений: стандартные плюс идентичность аккаунта.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Login    string `json:"login"`
	UserType string `json:"userType"`
}

// Identity — разрешённая идентичность запроса (кладётся в context).
type Identity struct {
	UserID   string `json:"id"`
	Login    string `json:"userId"`
	UserType string `json:"userType"`
}

// GenerateToken подписывает свежий токен на ttl от текущего момента.
// Каждый вызов — новый токен; ограничения "одна сессия на аккаунт" нет.
func GenerateToken(u *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   u.ID,
		Login:    u.Login,
		UserType: u.UserType,
	})
	return token.SignedString(secret)
}

// ParseToken проверяет подпись и срок действия. Любой дефект токена —
// ErrUnauthenticated, детали наружу не уходят.
func ParseToken(raw string, secret []byte) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	return &Identity{
		UserID:   claims.UserID,
		Login:    claims.Login,
		UserType: claims.UserType,
	}, nil
}

// TokenExpiry достаёт exp без проверки подписи — для клиента, которому
// нужен только момент истечения собственного токена.
func TokenExpiry(raw string) (time.Time, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrUnauthenticated
	}
	return claims.ExpiresAt.Time, nil
}

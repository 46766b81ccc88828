package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"waymark/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       "u-1",
		Login:    "alice",
		UserType: models.UserTypeAdministrator,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()
	secret := []byte("super-secret")

	tok, err := GenerateToken(testUser(), secret, time.Hour)
	require.NoError(t, err)

	id, err := ParseToken(tok, secret)
	require.NoError(t, err)
	require.Equal(t, "u-1", id.UserID)
	require.Equal(t, "alice", id.Login)
	require.Equal(t, models.UserTypeAdministrator, id.UserType)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()
	secret := []byte("secret")

	tok, err := GenerateToken(testUser(), secret, -1*time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(testUser(), []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()
	_, err := ParseToken("not.a.jwt", []byte("k"))
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()
	secret := []byte("secret")
	ttl := 30 * time.Minute

	tok, err := GenerateToken(testUser(), secret, ttl)
	require.NoError(t, err)

	// exp достаётся без секрета
	exp, err := TokenExpiry(tok)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(ttl), exp, 5*time.Second)

	_, err = TokenExpiry("garbage")
	require.Error(t, err)
}

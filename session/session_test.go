package session

import (
	"testing"
	"time"

	"edudash/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return signed
}

func validToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"id":       float64(42),
		"email":    "admin@example.com",
		"username": "admin",
		"roles":    []any{"ADMIN", "USER"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}))
	return NewManager(db)
}

func TestDecodeToken_ExtractsClaims(t *testing.T) {
	claims, err := DecodeToken(validToken(t))
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, []string{"ADMIN", "USER"}, claims.Roles)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestDecodeToken_Malformed(t *testing.T) {
	_, err := DecodeToken("not-a-token")
	assert.ErrorContains(t, err, "malformed token")
}

func TestDecodeToken_Expired(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	_, err := DecodeToken(token)
	assert.ErrorContains(t, err, "token expired")
}

func TestDecodeToken_MissingExpiry(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"id": float64(42)})
	_, err := DecodeToken(token)
	assert.ErrorContains(t, err, "no expiry")
}

func TestDecodeToken_MissingUserID(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err := DecodeToken(token)
	assert.ErrorContains(t, err, "no user id")
}

func TestManager_SaveAndRehydrate(t *testing.T) {
	m := newTestManager(t)
	token := validToken(t)

	saved, err := m.Save(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), saved.UserID)

	record, err := m.Rehydrate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", record.Username)
	assert.Equal(t, []string{"ADMIN", "USER"}, m.Roles(record))
}

func TestManager_SaveReplacesPreviousSession(t *testing.T) {
	m := newTestManager(t)

	first := validToken(t)
	_, err := m.Save(first)
	require.NoError(t, err)

	second := signToken(t, jwt.MapClaims{
		"id":  float64(42),
		"exp": time.Now().Add(2 * time.Hour).Unix(),
	})
	_, err = m.Save(second)
	require.NoError(t, err)

	_, err = m.Rehydrate(first)
	assert.Error(t, err, "old session must be gone")

	_, err = m.Rehydrate(second)
	assert.NoError(t, err)
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t)
	token := validToken(t)

	_, err := m.Save(token)
	require.NoError(t, err)
	require.NoError(t, m.Clear(token))

	_, err = m.Rehydrate(token)
	assert.Error(t, err)
}

func TestManager_RejectsInvalidToken(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save("garbage")
	assert.Error(t, err)
}

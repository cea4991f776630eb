package session

import (
	"encoding/json"
	"fmt"
	"time"

	"edudash/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Manager owns the dashboard session lifecycle: persist at login, rehydrate
// at startup, clear at logout. The session token is issued by the upstream
// auth service; the manager only decodes its payload to validate the expiry
// and extract the identity claims, it does not hold the signing key.
type Manager struct {
	db *gorm.DB
}

// NewManager creates a session Manager on the local state database
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Claims is the decoded identity payload of a session token
type Claims struct {
	UserID    uint
	Email     string
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// DecodeToken decodes a token payload without signature verification and
// validates its expiry. Malformed or expired tokens are errors.
func DecodeToken(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("malformed token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("invalid token payload")
	}

	claims := Claims{}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, fmt.Errorf("token has no expiry")
	}
	claims.ExpiresAt = exp.Time
	if time.Now().After(claims.ExpiresAt) {
		return Claims{}, fmt.Errorf("token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	switch id := mapClaims["id"].(type) {
	case float64:
		claims.UserID = uint(id)
	case string:
		// Some upstream tokens carry the id as a string
		var parsedID uint
		if _, serr := fmt.Sscanf(id, "%d", &parsedID); serr == nil {
			claims.UserID = parsedID
		}
	}
	if claims.UserID == 0 {
		return Claims{}, fmt.Errorf("token has no user id")
	}

	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}
	if roles, ok := mapClaims["roles"].([]any); ok {
		for _, role := range roles {
			if r, ok := role.(string); ok {
				claims.Roles = append(claims.Roles, r)
			}
		}
	}

	return claims, nil
}

// Save persists a new session for the token, replacing any previous session
// of the same user
func (m *Manager) Save(token string) (models.Session, error) {
	claims, err := DecodeToken(token)
	if err != nil {
		return models.Session{}, err
	}

	rolesJSON, _ := json.Marshal(claims.Roles)

	// One live session per user
	m.db.Model(&models.Session{}).Where("user_id = ? AND is_deleted = false", claims.UserID).Update("is_deleted", true)

	record := models.Session{
		Token:     token,
		UserID:    claims.UserID,
		Email:     claims.Email,
		Username:  claims.Username,
		RolesJSON: string(rolesJSON),
		ExpiresAt: claims.ExpiresAt,
	}
	if err := m.db.Create(&record).Error; err != nil {
		return models.Session{}, err
	}
	return record, nil
}

// Rehydrate returns the live session for a token, re-validating its expiry.
// Used at startup and by the auth middleware.
func (m *Manager) Rehydrate(token string) (models.Session, error) {
	var record models.Session
	if err := m.db.Where("token = ? AND is_deleted = false", token).First(&record).Error; err != nil {
		return models.Session{}, fmt.Errorf("no session for token")
	}
	if time.Now().After(record.ExpiresAt) {
		m.db.Model(&record).Update("is_deleted", true)
		return models.Session{}, fmt.Errorf("session expired")
	}
	return record, nil
}

// Roles decodes the stored role list of a session
func (m *Manager) Roles(record models.Session) []string {
	var roles []string
	if err := json.Unmarshal([]byte(record.RolesJSON), &roles); err != nil {
		return []string{}
	}
	return roles
}

// Clear tears down the session at logout
func (m *Manager) Clear(token string) error {
	return m.db.Model(&models.Session{}).Where("token = ? AND is_deleted = false", token).Update("is_deleted", true).Error
}

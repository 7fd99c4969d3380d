package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/config"
	"github.com/openreception/porteiro/internal/models"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Operator{}))
	return db
}

func TestAuthService_Register(t *testing.T) {
	db := setupAuthDB(t)
	service := NewAuthService(db, config.Config{JWTSecret: "test-secret"})

	// First operator becomes admin.
	admin, err := service.Register("admin@example.com", "password123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)
	assert.NotEqual(t, "password123", admin.PasswordHash)

	// Later operators start as attendants.
	attendant, err := service.Register("desk@example.com", "password123", "Desk")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendant, attendant.Role)
}

func TestAuthService_LoginAndLockout(t *testing.T) {
	db := setupAuthDB(t)
	service := NewAuthService(db, config.Config{JWTSecret: "test-secret"})

	_, err := service.Register("desk@example.com", "password123", "Desk")
	require.NoError(t, err)

	token, err := service.Login("desk@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// Wrong password five times locks the account.
	for i := 0; i < 5; i++ {
		_, err = service.Login("desk@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	}

	var op models.Operator
	require.NoError(t, db.Where("email = ?", "desk@example.com").First(&op).Error)
	assert.Equal(t, 5, op.FailedLoginAttempts)
	require.NotNil(t, op.LockedUntil)
	assert.True(t, op.LockedUntil.After(time.Now()))

	// Correct password while locked still fails.
	_, err = service.Login("desk@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	service := NewAuthService(setupAuthDB(t), config.Config{JWTSecret: "test-secret"})

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret is rejected.
	other := NewAuthService(setupAuthDB(t), config.Config{JWTSecret: "other-secret"})
	_, err = other.Register("desk@example.com", "password123", "Desk")
	require.NoError(t, err)
	token, err := other.Login("desk@example.com", "password123")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

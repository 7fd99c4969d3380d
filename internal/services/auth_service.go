package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/config"
	"github.com/openreception/porteiro/internal/models"
)

var (
	ErrInvalidLogin    = errors.New("invalid credentials")
	ErrAccountLocked   = errors.New("account locked")
	ErrAccountDisabled = errors.New("account disabled")
)

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
	tokenLifetime   = 24 * time.Hour
)

// Claims carried by the session token.
type Claims struct {
	OperatorID uint   `json:"operator_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService manages operator sessions: registration, login with
// lockout, and JWT issuance/validation. Step-up approvals are handled
// separately by AuthorizationService and never reuse session state.
type AuthService struct {
	db  *gorm.DB
	cfg config.Config
}

func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates an operator account. The first account becomes
// admin so a fresh install can be configured; later accounts start as
// attendants.
func (s *AuthService) Register(email, password, name string) (*models.Operator, error) {
	var count int64
	if err := s.db.Model(&models.Operator{}).Count(&count).Error; err != nil {
		return nil, err
	}

	role := models.RoleAttendant
	if count == 0 {
		role = models.RoleAdmin
	}

	op := &models.Operator{
		UUID:    uuid.NewString(),
		Email:   email,
		Name:    name,
		Role:    role,
		Enabled: true,
	}
	if err := op.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.db.Create(op).Error; err != nil {
		return nil, err
	}
	return op, nil
}

// Login verifies credentials and returns a signed session token.
// Failed attempts are counted and the account locks for a while after
// too many.
func (s *AuthService) Login(email, password string) (string, error) {
	var op models.Operator
	if err := s.db.Where("email = ?", email).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidLogin
		}
		return "", err
	}

	now := time.Now()
	if op.Locked(now) {
		return "", ErrAccountLocked
	}
	if !op.Enabled {
		return "", ErrAccountDisabled
	}

	if !op.CheckPassword(password) {
		op.FailedLoginAttempts++
		if op.FailedLoginAttempts >= maxFailedLogins {
			until := now.Add(lockoutDuration)
			op.LockedUntil = &until
		}
		s.db.Save(&op)
		return "", ErrInvalidLogin
	}

	op.FailedLoginAttempts = 0
	op.LockedUntil = nil
	op.LastLogin = &now
	if err := s.db.Save(&op).Error; err != nil {
		return "", err
	}

	return s.issueToken(&op, now)
}

func (s *AuthService) issueToken(op *models.Operator, now time.Time) (string, error) {
	claims := Claims{
		OperatorID: op.ID,
		Role:       op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.UUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ChangePassword verifies the old password before setting the new one.
func (s *AuthService) ChangePassword(id uint, oldPassword, newPassword string) error {
	var op models.Operator
	if err := s.db.First(&op, id).Error; err != nil {
		return err
	}
	if !op.CheckPassword(oldPassword) {
		return ErrInvalidLogin
	}
	if err := op.SetPassword(newPassword); err != nil {
		return err
	}
	return s.db.Save(&op).Error
}

// GetOperatorByID loads an operator.
func (s *AuthService) GetOperatorByID(id uint) (*models.Operator, error) {
	var op models.Operator
	if err := s.db.First(&op, id).Error; err != nil {
		return nil, err
	}
	return &op, nil
}

package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/models"
)

// sessionService handles the single-operator login session.
type sessionService struct {
	db       *gorm.DB
	username string
	passHash string
	ttl      time.Duration
}

// NewSessionService creates a new SessionServicer. username and passHash
// come from configuration; passHash is a bcrypt hash.
func NewSessionService(db *gorm.DB, username, passHash string, ttl time.Duration) SessionServicer {
	return &sessionService{
		db:       db,
		username: username,
		passHash: passHash,
		ttl:      ttl,
	}
}

// Login verifies the operator credentials and replaces the session row
// with a fresh opaque token. At most one session row exists at any time.
func (s *sessionService) Login(username, password string) (*models.Session, error) {
	if s.username == "" || s.passHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	session := &models.Session{Token: uuid.New().String()}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(session).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Validate returns the session for token if it exists and has not passed
// its TTL. Expiry is checked passively; expired rows are removed on sight.
func (s *sessionService) Validate(token string, now time.Time) (*models.Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var session models.Session
	if err := s.db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if session.Expired(s.ttl, now) {
		if err := s.db.Delete(&session).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, apperrors.ErrSessionExpired
	}

	return &session, nil
}

// Logout destroys the active session.
func (s *sessionService) Logout() error {
	if err := s.db.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const adminSubject = "admin"

// AuthService guards the admin dashboard with a single shared password.
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAuthService accepts either a bcrypt hash or a plain password; the hash
// wins when both are set.
func NewAuthService(password, passwordHash, jwtSecret string) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}

	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("admin password is required")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	return &AuthService{
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     24 * time.Hour,
		now:          time.Now,
	}, nil
}

func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken()
}

func (s *AuthService) GenerateToken() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"exp": now.Add(s.tokenTTL).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub != adminSubject {
		return errors.New("invalid subject in token")
	}
	return nil
}

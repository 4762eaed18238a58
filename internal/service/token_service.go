package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

var ErrNoSecret = errors.New("JWT_SECRET vacío, la API no pide token")

// TokenService firma tokens HS256 que acepta el middleware JWTAuth.
type TokenService struct {
	jwtSecret []byte
	ttl       time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{jwtSecret: []byte(secret), ttl: ttl}
}

// Issue devuelve un token para `subject` que vence en ttl.
func (s *TokenService) Issue(subject string, now time.Time) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", ErrNoSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

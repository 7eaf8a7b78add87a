package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AymenBoubertakh/IDL/internal/models"
)

// Token verification failure kinds. Every decode failure maps to exactly
// one of these; attacker-controlled input never causes a panic.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)

// minSecretLength guards against weak HMAC keys.
const minSecretLength = 32

// Claims represents the signed identity claims carried in a token.
// Subject holds the username.
type Claims struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService defines JWT token operations.
type JWTService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	ExtractUsername(tokenString string) (string, error)
	ExtractRole(tokenString string) (models.Role, error)
	ExtractUserID(tokenString string) (int64, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWTService instance. The secret is fixed for
// the lifetime of the service and must be at least 32 bytes.
func NewJWTService(secret string, expiry time.Duration) (JWTService, error) {
	if len(secret) < minSecretLength {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
	}, nil
}

func (s *jwtService) GenerateToken(user *models.User) (string, error) {
	if user == nil || user.Username == "" {
		return "", errors.New("cannot generate token without a username")
	}
	if !user.Role.Valid() {
		return "", errors.New("cannot generate token with unknown role")
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenBadSignature
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || claims.UserID == 0 || !claims.Role.Valid() {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

func (s *jwtService) ExtractUsername(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *jwtService) ExtractRole(tokenString string) (models.Role, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (s *jwtService) ExtractUserID(tokenString string) (int64, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// classifyTokenError maps jwt parse errors onto the three failure kinds.
// Signature mismatches must never be reported as malformed input.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrTokenMalformed
	}
}

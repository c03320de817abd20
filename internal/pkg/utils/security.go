package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims are the custom claims carried by both credential types. The
// refresh jti (RegisteredClaims.ID) is tracked in the outstanding-token store.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateAccessToken(userID uint, email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &TokenClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return signed, nil
}

// GenerateRefreshToken returns the signed token plus its jti and expiry so the
// caller can record it as outstanding.
func GenerateRefreshToken(userID uint, email, role, secret string, ttl time.Duration) (string, string, time.Time, error) {
	now := time.Now().UTC()
	jti := uuid.NewString()
	expiresAt := now.Add(ttl)
	claims := &TokenClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", time.Time{}, exceptions.ErrTokenGenerate(err)
	}
	return signed, jti, expiresAt, nil
}

func ParseToken(tokenString, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, exceptions.WrapWithoutError(constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}
	if !token.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return claims, nil
}

// RefreshLockKey derives the concurrency-gate cache key from the raw refresh
// credential: hex of the first 16 bytes of its SHA-256.
func RefreshLockKey(refreshToken string) string {
	sum := sha256.Sum256([]byte(refreshToken))
	return constvars.RefreshLockKeyPrefix + hex.EncodeToString(sum[:16])
}

// AnonymousConsentID identifies a not-logged-in consent subject without
// storing the IP: SHA-256 over ip+user-agent+timestamp, truncated to 32 hex.
func AnonymousConsentID(ip, userAgent string, now time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%s%d", ip, userAgent, now.UnixNano())))
	return hex.EncodeToString(sum[:])[:32]
}

// RandomPassword returns a high-entropy password used when anonymizing an
// account; it is never communicated to anyone.
func RandomPassword() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString() + uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

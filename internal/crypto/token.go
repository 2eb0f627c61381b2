package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and tokens
	// minted for another issuer.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for structurally valid tokens past their
	// expiry; the caller must sign in again, there is no refresh.
	ErrTokenExpired = errors.New("token expired")
)

const tokenIssuer = "kaloraat-auth-api"

// TokenTTL is how long a session token stays valid after issuance.
const TokenTTL = 7 * 24 * time.Hour

// Claims bind a session token to an account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"_id"`
}

// GenerateToken signs an HS256 session token for the given account id,
// expiring ttl from now.
func GenerateToken(accountID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: accountID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a session token, returning its claims.
// Expired tokens fail with ErrTokenExpired; anything else wrong with the
// token fails with ErrInvalidToken.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

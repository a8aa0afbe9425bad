package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// TokenTTL is how long an issued access token stays valid. Fixed by design;
// there is no per-call override.
const TokenTTL = 24 * time.Hour

// Typed decode failures. The identity middleware maps each to a distinct
// user-facing 401 message, so they must stay distinguishable.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenManager issues and validates signed access tokens. The secret is set
// once at startup and shared read-only across requests.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager for the given signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims is the token payload: account identity plus a snapshot of the role
// held at issuance time.
type Claims struct {
	AccountID int64       `json:"id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Generate builds and signs a token for the account.
func (tm *TokenManager) Generate(account *domain.Account) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, errors.New("signing secret not configured")
	}

	now := time.Now()
	expiresAt := now.Add(TokenTTL)
	claims := &Claims{
		AccountID: account.ID,
		Role:      account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a token string and returns its claims. Only HS256 is
// accepted; a token carrying any other algorithm fails as a bad signature,
// which closes the algorithm-confusion hole.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrBadSignature
		}
		return tm.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, ErrBadSignature
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrBadSignature
	}
	return claims, nil
}

package token

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token roles. The codec itself is role-agnostic; callers embed and check
// the role claim.
const (
	RoleAccess  = "access"
	RoleRefresh = "refresh"
)

// Default lifetimes. The access lifetime is a design default and can be
// overridden via ACCESS_TOKEN_TTL; the refresh lifetime is fixed by the
// token protocol because it bounds the cache entry TTL.
const (
	DefaultAccessTTL = 12 * time.Hour
	RefreshTTL       = 24 * time.Hour
)

// Distinct verification failure kinds.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
)

// Claims are the signed bearer claims: the user's email, a subject and the
// token role.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies bearer tokens with a process secret.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec with an explicit secret.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty JWT secret")
	}
	return &Codec{secret: secret}, nil
}

// jwtSecret is loaded lazily so an unset JWT_SECRET is reported once,
// at first use, instead of silently signing with an empty key.
var (
	envCodec    *Codec
	envCodecErr error
	envOnce     sync.Once
)

// NewCodecFromEnv creates a codec from the JWT_SECRET environment variable.
func NewCodecFromEnv() (*Codec, error) {
	envOnce.Do(func() {
		val := os.Getenv("JWT_SECRET")
		if val == "" {
			envCodecErr = fmt.Errorf("JWT_SECRET is not set")
			return
		}
		envCodec, envCodecErr = NewCodec([]byte(val))
	})
	return envCodec, envCodecErr
}

// Sign issues a compact HS256 bearer string carrying the claims with the
// given lifetime.
func (c *Codec) Sign(email, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(c.secret)
}

// Parse verifies a bearer string and extracts its claims. Failures map to
// the three distinct error kinds: expired, signature invalid, malformed.
func (c *Codec) Parse(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// AccessTTL returns the configured access token lifetime.
func AccessTTL() time.Duration {
	val := os.Getenv("ACCESS_TOKEN_TTL")
	if val == "" {
		return DefaultAccessTTL
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return DefaultAccessTTL
	}
	return d
}

package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// DefaultTokenTTL is the validity window of an issued token.
const DefaultTokenTTL = 8 * time.Hour

// tokenClaims is the JWT payload: {usuario_id, email, tipo, exp}.
type tokenClaims struct {
	UserID string      `json:"usuario_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"tipo"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HS256 tokens with a process-wide secret.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// JWTOption customises a JWTService.
type JWTOption func(*JWTService)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(s *JWTService) { s.now = now }
}

// NewJWTService returns a token service bound to secret. A non-positive ttl
// selects DefaultTokenTTL.
func NewJWTService(secret string, ttl time.Duration, opts ...JWTOption) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs the identity claims with exp = now + ttl.
func (s *JWTService) Issue(userID, email string, role domain.Role) (string, error) {
	claims := tokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature and expiry. It returns domain.ErrTokenExpired
// once now >= exp, and domain.ErrTokenInvalid for anything else that fails.
func (s *JWTService) Validate(token string) (*domain.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !parsed.Valid || claims.ExpiresAt == nil {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// mapJWTError collapses library errors into the two validation outcomes.
// Signature problems are reported before expiry by the parser, so a
// tampered token that is also past exp is still invalid.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.ErrTokenExpired
	}
	return domain.ErrTokenInvalid
}

package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(clock *fakeClock) *JWTService {
	return NewJWTService("test-secret", 8*time.Hour, WithClock(clock.Now))
}

func TestJWTService_IssueValidate_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, domain.RoleOperator, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(clock.t.Add(8*time.Hour)))
}

func TestJWTService_PayloadShape(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleAdmin)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "u-1", payload["usuario_id"])
	assert.Equal(t, "ana@x.com", payload["email"])
	assert.Equal(t, "admin", payload["tipo"])
	assert.Equal(t, float64(clock.t.Add(8*time.Hour).Unix()), payload["exp"])
	assert.Len(t, payload, 4)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)

	clock.t = clock.t.Add(8*time.Hour - time.Second)
	_, err = svc.Validate(token)
	require.NoError(t, err, "token must still be valid one second before exp")

	for _, after := range []time.Duration{0, time.Second, 72 * time.Hour} {
		clock.t = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC).Add(after)
		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired, "at exp+%s", after)
		assert.NotErrorIs(t, err, domain.ErrTokenInvalid)
	}
}

func TestJWTService_Validate_TamperedSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Validate_TamperedPayload(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(
		`{"usuario_id":"u-1","email":"ana@x.com","tipo":"admin","exp":9999999999}`))

	_, err = svc.Validate(parts[0] + "." + forged + "." + parts[2])
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := NewJWTService("secret-a", 0, WithClock(clock.Now))
	validator := NewJWTService("secret-b", 0, WithClock(clock.Now))

	token, err := issuer.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)

	_, err = validator.Validate(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Validate_TamperedAndExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, err := svc.Issue("u-1", "ana@x.com", domain.RoleOperator)
	require.NoError(t, err)

	clock.t = clock.t.Add(24 * time.Hour)
	_, err = svc.Validate(token + "x")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Validate_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", tok)
	}
}

func TestJWTService_Validate_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	claims := jwt.MapClaims{
		"usuario_id": "u-1",
		"email":      "ana@x.com",
		"tipo":       "admin",
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Validate(hs512)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Validate(none)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTService_Validate_MissingExp(t *testing.T) {
	svc := NewJWTService("test-secret", 0)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": "u-1",
		"tipo":       "admin",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService("s", -1)
	assert.Equal(t, DefaultTokenTTL, svc.ttl)
}

package utils

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	id := uuid.New()

	token, err := issuer.GenerateAccessToken(id, "desk", "staff")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "desk", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, id.String(), claims.Subject)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, err := issuer.GenerateAccessToken(uuid.New(), "desk", "staff")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Minute).ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken), "wrong secret: %v", err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = issuer.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = issuer.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultAccessTokenTTL, NewTokenIssuer("s", 0).TTL())
	assert.Equal(t, time.Minute, NewTokenIssuer("s", time.Minute).TTL())
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@test.com", "alexAvantys@avantys.corp", " a.b+c@club.io "}
	invalid := []string{"", "plain", "a@b", "@club.io", "a b@club.io"}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestTrimOptional(t *testing.T) {
	assert.Nil(t, TrimOptional(nil))

	blank := "   "
	assert.Nil(t, TrimOptional(&blank))

	padded := "  Mixed@Case.io "
	got := TrimOptional(&padded)
	require.NotNil(t, got)
	assert.Equal(t, "Mixed@Case.io", *got)
	assert.Equal(t, "", StringValue(nil))
}

func TestPositiveIntOrAndClamp(t *testing.T) {
	assert.Equal(t, 7, PositiveIntOr(" 7 ", 1))
	assert.Equal(t, 1, PositiveIntOr("", 1))
	assert.Equal(t, 1, PositiveIntOr("-3", 1))
	assert.Equal(t, 1, PositiveIntOr("abc", 1))

	assert.Equal(t, 1, ClampInt(0, 1, 100))
	assert.Equal(t, 100, ClampInt(5000, 1, 100))
	assert.Equal(t, 42, ClampInt(42, 1, 100))
}

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("SC_STR", "value")
	t.Setenv("SC_INT", "12")
	t.Setenv("SC_BAD_INT", "twelve")
	t.Setenv("SC_BOOL", "false")
	t.Setenv("SC_DUR", "90s")
	t.Setenv("SC_LIST", " a , ,b ")

	assert.Equal(t, "value", Getenv("SC_STR", "fallback"))
	assert.Equal(t, "fallback", Getenv("SC_MISSING", "fallback"))
	assert.Equal(t, 12, GetenvInt("SC_INT", 1))
	assert.Equal(t, 1, GetenvInt("SC_BAD_INT", 1))
	assert.False(t, GetenvBool("SC_BOOL", true))
	assert.Equal(t, 90*time.Second, GetenvDuration("SC_DUR", time.Minute))
	assert.Equal(t, []string{"a", "b"}, GetenvList("SC_LIST", nil))
	assert.Equal(t, []string{"x"}, GetenvList("SC_MISSING", []string{"x"}))
}

func TestSetLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerOutput(&buf, "warn")

	LogInfo("hidden")
	LogWarn(errors.New("disk almost full"), "storage warning")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "storage warning")
	assert.Contains(t, buf.String(), "disk almost full")
}

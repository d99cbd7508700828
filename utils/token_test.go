package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time { return s.now }

func testUser() *models.User {
	return &models.User{
		Base:     models.Base{ID: "user-1"},
		Email:    "guest@example.com",
		Username: "guest",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("secret", "issuer", "audience", time.Hour, clock)

	token, err := svc.Generate(testUser(), models.RoleUser)
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, "guest", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestTokenExpiry(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("secret", "issuer", "audience", time.Hour, clock)

	token, err := svc.Generate(testUser(), models.RoleUser)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)
	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenRejectsGarbageAndWrongKey(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("secret", "issuer", "audience", time.Hour, clock)
	other := NewTokenService("other-secret", "issuer", "audience", time.Hour, clock)

	_, err := svc.Parse("not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)

	forged, err := other.Generate(testUser(), models.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Parse(forged)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	token, ok = BearerToken("bearer abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	_, ok = BearerToken("Basic abc123")
	assert.False(t, ok)

	_, ok = BearerToken("")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Str0ng!pass"))
	assert.False(t, ValidPassword("Sh0rt!a"))
	assert.False(t, ValidPassword("alllower1!"))
	assert.False(t, ValidPassword("ALLUPPER1!"))
	assert.False(t, ValidPassword("NoDigits!!"))
	assert.False(t, ValidPassword("NoSpecial11"))
}

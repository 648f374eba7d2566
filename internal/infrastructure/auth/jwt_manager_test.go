//go:build unit
// +build unit

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/testutil"
)

func testAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		Issuer:          "verihome-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestJWTManagerIssueAndVerify(t *testing.T) {
	manager, err := NewJWTManager(testAuthSettings(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	pair, err := manager.IssuePair("user-123", "ana@example.com", "tenant")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	claims, err := manager.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "tenant", claims.Role)

	refreshClaims, err := manager.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Email)
	assert.Empty(t, refreshClaims.Role)
}

func TestJWTManagerRejectsWrongTokenType(t *testing.T) {
	manager, err := NewJWTManager(testAuthSettings(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	pair, err := manager.IssuePair("user-123", "ana@example.com", "tenant")
	require.NoError(t, err)

	_, err = manager.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	settings := testAuthSettings()
	settings.AccessTokenTTL = -time.Minute

	manager, err := NewJWTManager(settings, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	pair, err := manager.IssuePair("user-123", "ana@example.com", "tenant")
	require.NoError(t, err)

	_, err = manager.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	manager, err := NewJWTManager(testAuthSettings(), log)
	require.NoError(t, err)

	otherSettings := testAuthSettings()
	otherSettings.JWTSecret = "ffffffffffffffffffffffffffffffff"
	other, err := NewJWTManager(otherSettings, log)
	require.NoError(t, err)

	pair, err := other.IssuePair("user-123", "ana@example.com", "tenant")
	require.NoError(t, err)

	_, err = manager.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTManagerRejectsShortSecret(t *testing.T) {
	settings := testAuthSettings()
	settings.JWTSecret = "short"

	_, err := NewJWTManager(settings, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/djougoo/propass-central/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "propass-central"
	testSignKey = "test-sign-key"
)

func testUser() models.User {
	return models.User{
		ID:       42,
		Username: "operator",
		Role:     "ADMIN",
	}
}

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), "device-7", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.Claims.UserID)
	assert.Equal(t, "operator", parsed.Claims.Username)
	assert.Equal(t, "ADMIN", parsed.Claims.Role)
	assert.Equal(t, "device-7", parsed.Claims.DeviceID)
	assert.Equal(t, "42", parsed.Claims.Subject)
}

func TestGenerateJWTToken_NoDeviceID(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), "", time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Empty(t, parsed.Claims.DeviceID)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	_, err := GenerateJWTToken("", testUser(), "", time.Hour, testSignKey)
	require.Error(t, err)

	_, err = GenerateJWTToken(testIssuer, testUser(), "", 0, testSignKey)
	require.Error(t, err)

	_, err = GenerateJWTToken(testIssuer, testUser(), "", time.Hour, "")
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), "", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "another-key", testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), "", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, "someone-else")
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, testUser(), "", time.Nanosecond, testSignKey)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.Error(t, err)
}

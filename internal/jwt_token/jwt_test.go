package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var voterID = id.NewVoterID()
var expiresIn = time.Hour

func Test_GenerateAccessToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(voterID, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, voterID.String(), claims.VoterID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(voterID, -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, "token has expired", dErrors.MessageOf(err))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("other-key", "test-issuer", "test-audience")
	token, err := other.GenerateAccessToken(voterID, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongAudience(t *testing.T) {
	other := NewJWTService("test-signing-key", "test-issuer", "another-audience")
	token, err := other.GenerateAccessToken(voterID, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Adapter_MapsVoterID(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(voterID, expiresIn)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(jwtService).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, voterID, claims.VoterID)
	assert.NotEmpty(t, claims.JTI)
}

func Test_EnrollmentToken(t *testing.T) {
	token, err := jwtService.GenerateEnrollmentToken(voterID, time.Minute)
	require.NoError(t, err)

	got, err := jwtService.ValidateEnrollmentToken(token)
	require.NoError(t, err)
	assert.Equal(t, voterID, got)

	_, err = NewJWTServiceAdapter(jwtService).ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized), "enrollment token must not authenticate API calls")
}

func Test_AccessTokenCannotEnroll(t *testing.T) {
	token, err := jwtService.GenerateAccessToken(voterID, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateEnrollmentToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

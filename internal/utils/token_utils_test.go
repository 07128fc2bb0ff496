package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/dealflow/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, issued, err := utils.GenerateJWT("a@g.com", "analyst", "secret", time.Minute, "dealflow")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := utils.ParseAndValidateJWT(token, "secret", "dealflow")
	require.NoError(t, err)
	assert.Equal(t, "a@g.com", claims.Subject)
	assert.Equal(t, "analyst", claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	valid, _, err := utils.GenerateJWT("a@g.com", "analyst", "secret", time.Minute, "dealflow")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("a@g.com", "analyst", "secret", -time.Minute, "dealflow")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		issuer  string
		wantErr error
	}{
		{name: "wrong secret", token: valid, secret: "other", issuer: "dealflow", wantErr: jwt.ErrTokenSignatureInvalid},
		{name: "wrong issuer", token: valid, secret: "secret", issuer: "someone-else", wantErr: jwt.ErrTokenInvalidIssuer},
		{name: "expired", token: expired, secret: "secret", issuer: "dealflow", wantErr: jwt.ErrTokenExpired},
		{name: "garbage", token: "not-a-token", secret: "secret", issuer: "dealflow", wantErr: jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := utils.ParseAndValidateJWT(tt.token, tt.secret, tt.issuer)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "12345678", hash)
	assert.True(t, utils.CheckPasswordHash("12345678", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

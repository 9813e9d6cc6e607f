package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	jwtService := &JWTService{}

	token, err := jwtService.GenerateJWT(42, time.Now().Add(time.Hour))
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "elibrary", claims.Issuer)
}

func TestJWTService_ValidateToken(t *testing.T) {
	jwtService := &JWTService{}

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name:  "Garbage token",
			token: func() string { return "not-a-token" },
		},
		{
			name: "Expired token",
			token: func() string {
				token, err := jwtService.GenerateJWT(42, time.Now().Add(-time.Hour))
				assert.NoError(t, err)
				return token
			},
		},
		{
			name: "Zero user id",
			token: func() string {
				token, err := jwtService.GenerateJWT(0, time.Now().Add(time.Hour))
				assert.NoError(t, err)
				return token
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateToken(tt.token())
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)
	now := time.Now()

	valid := jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "6F1C2A4E-3B5D-4C7E-9A0B-1D2E3F405162",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}

	tests := []struct {
		name    string
		token   string
		wantID  string
		wantErr bool
	}{
		{
			name:   "valid token returns canonical subject",
			token:  sign(t, jwt.SigningMethodHS256, []byte(secret), valid),
			wantID: "6f1c2a4e-3b5d-4c7e-9a0b-1d2e3f405162",
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantErr: true,
		},
		{
			name: "expired",
			token: sign(t, jwt.SigningMethodHS256, []byte(secret), jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-1",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}}),
			wantErr: true,
		},
		{
			name: "missing expiry",
			token: sign(t, jwt.SigningMethodHS256, []byte(secret), jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: "u-1",
			}}),
			wantErr: true,
		},
		{
			name:    "other algorithm",
			token:   sign(t, jwt.SigningMethodHS512, []byte(secret), valid),
			wantErr: true,
		},
		{
			name: "no subject",
			token: sign(t, jwt.SigningMethodHS256, []byte(secret), jwtClaims{RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := verifier.Verify(tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(sub string, expiresIn time.Duration) IdentityClaims {
	return IdentityClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func TestValidateAccessToken(t *testing.T) {
	userID := uuid.New()
	svc := NewTokenService(testSecret, "", "authenticated")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:  "valid token",
			token: sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(userID.String(), time.Hour)),
		},
		{
			name:    "expired token",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor(userID.String(), -time.Hour)),
			wantErr: domainerror.ErrTokenExpired,
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor(userID.String(), time.Hour)),
			wantErr: domainerror.ErrInvalidToken,
		},
		{
			name:    "subject is not a uuid",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("user-1", time.Hour)),
			wantErr: domainerror.ErrInvalidTokenSubject,
		},
		{
			name:    "unsigned token",
			token:   sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claimsFor(userID.String(), time.Hour)),
			wantErr: domainerror.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   "not-a-jwt",
			wantErr: domainerror.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateAccessToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.Equal(t, "ana@example.com", claims.Email)
		})
	}
}

func TestValidateAccessTokenAudience(t *testing.T) {
	svc := NewTokenService(testSecret, "", "authenticated")
	claims := claimsFor(uuid.NewString(), time.Hour)
	claims.Audience = jwt.ClaimStrings{"anon"}

	_, err := svc.ValidateAccessToken(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.True(t, errors.Is(err, domainerror.ErrInvalidToken))
}

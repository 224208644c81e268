package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"blogapi/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, model.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken(uuid.New(), model.RoleUser)
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	expired := &Claims{
		UserID: uuid.New(),
		Role:   model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	for _, input := range []string{"", "garbage", "a.b.c"} {
		claims, err := svc.ValidateToken(input)
		assert.Error(t, err)
		assert.Nil(t, claims)
	}
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	svc := NewJWTService("test-secret")

	// alg=none tokens must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New(), Role: model.RoleAdmin})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

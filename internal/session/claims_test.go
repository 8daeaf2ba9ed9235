package session

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrisa/internal/domain"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecodeClaims(t *testing.T) {
	instID := int64(9)
	signed := signToken(t, &Claims{
		UserID:        42,
		Email:         "maria@vrisa.example",
		FirstName:     "María",
		InstitutionID: &instID,
		Role:          "station_admin",
		RoleStatus:    "PENDING",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := DecodeClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "station_admin", claims.Role)
	assert.Equal(t, "PENDING", claims.RoleStatus)

	sess := SessionFromClaims(claims)
	assert.Equal(t, domain.RoleStationAdmin, sess.Role)
	assert.Equal(t, domain.StatusPending, sess.RoleStatus)
	require.NotNil(t, sess.InstitutionID)
	assert.Equal(t, instID, *sess.InstitutionID)
}

func TestDecodeClaims_Expired(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: 1,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	_, err := DecodeClaims(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecodeClaims_Malformed(t *testing.T) {
	_, err := DecodeClaims("not.a.jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = DecodeClaims("")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestSessionFromClaims_UnknownRoleNormalizes(t *testing.T) {
	sess := SessionFromClaims(&Claims{UserID: 5, Role: "mystery"})
	assert.Equal(t, domain.RoleCitizen, sess.Role)
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifyIdentity(t *testing.T) {
	v := NewVerifier("idp")
	token := idToken(t, "idp", jwt.MapClaims{
		"email":          "Riya@Example.com",
		"email_verified": true,
		"name":           "Riya",
		"exp":            time.Now().Add(time.Minute).Unix(),
	})

	id, err := v.VerifyIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{Email: "Riya@Example.com", Name: "Riya"}, id)
}

func TestVerifyIdentityRejections(t *testing.T) {
	v := NewVerifier("idp")
	exp := time.Now().Add(time.Minute).Unix()

	cases := map[string]string{
		"wrong secret": idToken(t, "other", jwt.MapClaims{"email": "a@example.com", "exp": exp}),
		"no expiry":    idToken(t, "idp", jwt.MapClaims{"email": "a@example.com"}),
		"no email":     idToken(t, "idp", jwt.MapClaims{"name": "A", "exp": exp}),
		"unverified":   idToken(t, "idp", jwt.MapClaims{"email": "a@example.com", "email_verified": false, "exp": exp}),
		"garbage":      "abc.def.ghi",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyIdentity(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

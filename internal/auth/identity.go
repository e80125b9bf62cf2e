package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is who the identity provider says signed in.
type Identity struct {
	Email string
	Name  string
}

type identityClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	Name          string `json:"name"`
	jwt.RegisteredClaims
}

// Verifier checks ID tokens signed by the identity provider.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

func (v *Verifier) VerifyIdentity(token string) (Identity, error) {
	claims := &identityClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return Identity{}, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}
	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return Identity{}, fmt.Errorf("%w: no email claim", ErrInvalidToken)
	}
	return Identity{Email: email, Name: strings.TrimSpace(claims.Name)}, nil
}

package utils // helpers for session token creation

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leandrordg/api-restaurantes/internal/model"
)

// AccessToken carries a signed JWT and its expiry. Tokens are
// short-lived (one hour by default) and sent by clients in the
// Authorization header as a Bearer credential.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims
// identify the session: subject (sub) holds the numeric user id, and
// nome, email and role are embedded so that middleware can rebuild the
// caller identity without a database round trip.
func NewAccessToken(secret string, u model.User, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"nome":  u.Nome,
		"email": u.Email,
		"role":  u.Role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

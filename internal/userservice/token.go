package userservice

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// signAccessToken issues an HS256 token whose subject is the user's id.
func signAccessToken(secret []byte, userID int, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseAccessToken verifies the signature against the shared secret and
// returns the subject user id. Any failure, including a missing subject,
// comes back as ErrInvalidToken.
func parseAccessToken(secret []byte, token string) (int, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}

	id, err := strconv.Atoi(sub)
	if err != nil || id < 1 {
		return 0, ErrInvalidToken
	}

	return id, nil
}

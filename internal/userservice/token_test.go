package userservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret-test-secret-test-secret")

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := signAccessToken(testSecret, 42, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := parseAccessToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParseAccessTokenFailures(t *testing.T) {
	valid, err := signAccessToken(testSecret, 42, time.Hour)
	assert.NoError(t, err)

	expired, err := signAccessToken(testSecret, 42, -time.Hour)
	assert.NoError(t, err)

	foreign, err := signAccessToken([]byte("some-other-secret-entirely"), 42, time.Hour)
	assert.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "wrong secret", token: foreign},
		{name: "tampered", token: valid + "x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAccessToken(testSecret, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestParseAccessTokenMissingSubject(t *testing.T) {
	// a subject that is not a positive user id must be rejected
	token, err := signAccessToken(testSecret, 0, time.Hour)
	assert.NoError(t, err)

	_, err = parseAccessToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

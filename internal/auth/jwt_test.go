package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "ebd-api-test"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue(42, testIssuer, testKey, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := Parse(token, testKey, testIssuer)
	assert.NoError(t, err)

	id, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestParseExpiredToken(t *testing.T) {
	token, _, err := Issue(42, testIssuer, testKey, -2*time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, testKey, testIssuer)
	assert.Error(t, err)
}

func TestParseWrongKey(t *testing.T) {
	token, _, err := Issue(42, testIssuer, testKey, time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestParseIssuerMismatch(t *testing.T) {
	token, _, err := Issue(42, "someone-else", testKey, time.Hour)
	assert.NoError(t, err)

	_, err = Parse(token, testKey, testIssuer)
	assert.Error(t, err)
}

func TestParseMalformedToken(t *testing.T) {
	_, err := Parse("not.a.jwt", testKey, testIssuer)
	assert.Error(t, err)

	_, err = Parse("", testKey, testIssuer)
	assert.Error(t, err)
}

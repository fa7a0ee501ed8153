package realworld_test

import (
	"testing"
	"time"

	realworld "github.com/goliatone/go-realworld-api"
	"github.com/stretchr/testify/assert"
)

func TestSessionObject(t *testing.T) {
	now := time.Now()
	exp := now.Add(30 * time.Minute)

	session := &realworld.SessionObject{
		UserID:         "pparker",
		Audience:       []string{"api"},
		Issuer:         "test-issuer",
		IssuedAt:       &now,
		ExpirationDate: &exp,
	}

	assert.Equal(t, "pparker", session.GetUserID())
	assert.Equal(t, []string{"api"}, session.GetAudience())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, &now, session.GetIssuedAt())
	assert.Equal(t, &exp, session.GetExpiration())
}

func TestSessionString(t *testing.T) {
	session := realworld.SessionObject{UserID: "pparker"}

	out := session.String()

	assert.Contains(t, out, "user=pparker")
	assert.Contains(t, out, "iat=<nil>")
}

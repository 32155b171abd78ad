package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "careteam/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("test-secret", "careteam")

	token, err := svc.GenerateToken("coordinator-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "coordinator-1", claims.ActorID)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", "careteam")

	token, err := svc.GenerateToken("coordinator-1", -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewService("secret-a", "careteam")
	verifier := NewService("secret-b", "careteam")

	token, err := issuer.GenerateToken("coordinator-1", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", "careteam")

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

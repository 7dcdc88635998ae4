package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/bloomcart/internal/utils"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := utils.HashPassword("s3cret-flowers")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-flowers", hash)

	assert.True(t, utils.CheckPassword(hash, "s3cret-flowers"))
	assert.False(t, utils.CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	token, err := utils.GenerateToken("test-secret", userID, true, time.Hour)
	assert.NoError(t, err)

	parsedID, isAdmin, err := utils.ParseToken("test-secret", token)
	assert.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.True(t, isAdmin)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := utils.GenerateToken("test-secret", uuid.New(), false, time.Hour)
	assert.NoError(t, err)

	_, _, err = utils.ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := utils.GenerateToken("test-secret", uuid.New(), false, -time.Minute)
	assert.NoError(t, err)

	_, _, err = utils.ParseToken("test-secret", token)
	assert.Error(t, err)
}

package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairAndParse(t *testing.T) {
	pair, err := GeneratePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)

	// refresh 令牌不能当 access 用
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefresh(t *testing.T) {
	pair, err := GeneratePair(7)
	require.NoError(t, err)

	next, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)

	_, err = Refresh("not-a-token")
	assert.Error(t, err)
}

func TestResetToken(t *testing.T) {
	token, err := GenerateResetToken(9)
	require.NoError(t, err)

	userID, err := ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), userID)

	// access 令牌的 subject 不是 reset
	pair, err := GeneratePair(9)
	require.NoError(t, err)
	_, err = ParseResetToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrResetInvalid)

	_, err = ParseResetToken("garbage")
	assert.ErrorIs(t, err, ErrResetInvalid)
}

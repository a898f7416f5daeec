package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func TestManager(t *testing.T) {
	m := NewManager("test-secret", "identity")

	t.Run("签发后可以解析", func(t *testing.T) {
		token, err := m.GenerateToken(42, time.Hour)
		require.NoError(t, err)

		claims, err := m.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "42", claims.Subject)
	})

	t.Run("过期Token", func(t *testing.T) {
		token, err := m.GenerateToken(1, -time.Minute)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
	})

	t.Run("密钥不一致", func(t *testing.T) {
		token, err := NewManager("other-secret", "identity").GenerateToken(1, time.Hour)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("签发方不一致", func(t *testing.T) {
		token, err := NewManager("test-secret", "someone-else").GenerateToken(1, time.Hour)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})
}

package realworld_test

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
	realworld "github.com/goliatone/go-realworld-api"
	"github.com/stretchr/testify/assert"
)

func TestErrorSentinels(t *testing.T) {
	t.Run("credential errors are categorized as auth", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, realworld.ErrCredentialsInvalid.Category)
		assert.Equal(t, goerrors.CategoryAuth, realworld.ErrTokenExpired.Category)
		assert.Equal(t, goerrors.CategoryAuth, realworld.ErrTokenMalformed.Category)
		assert.Equal(t, goerrors.CategoryAuth, realworld.ErrTokenMissing.Category)
	})

	t.Run("record not found carries metadata", func(t *testing.T) {
		err := realworld.NewRecordNotFound(map[string]any{"person_id": int64(42)})

		assert.True(t, goerrors.IsNotFound(err))
		assert.Equal(t, int64(42), err.Metadata["person_id"])
	})

	t.Run("no content detection", func(t *testing.T) {
		assert.True(t, realworld.IsNoContent(realworld.ErrNoContent))
		assert.False(t, realworld.IsNoContent(realworld.ErrCredentialsInvalid))
		assert.False(t, realworld.IsNoContent(nil))
	})
}

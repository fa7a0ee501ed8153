package realworld_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	realworld "github.com/goliatone/go-realworld-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeUser(username, password string) *realworld.User {
	hash, err := realworld.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return &realworld.User{
		ID:           1,
		Username:     username,
		PasswordHash: hash,
		Active:       true,
	}
}

func TestUserProvider_VerifyIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("returns identity for valid credentials", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "pparker").Return(activeUser("pparker", "with-great-power"), nil)

		provider := realworld.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "pparker", "with-great-power")

		assert.NoError(t, err)
		assert.NotNil(t, identity)
		assert.Equal(t, "pparker", identity.Username())
		assert.Equal(t, "1", identity.ID())
		store.AssertExpectations(t)
	})

	t.Run("unknown username and wrong password yield the same error", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "nobody").Return(nil, realworld.NewRecordNotFound(nil))
		store.On("GetByUsername", ctx, "pparker").Return(activeUser("pparker", "with-great-power"), nil)

		provider := realworld.NewUserProvider(store)

		_, errUnknown := provider.VerifyIdentity(ctx, "nobody", "whatever")
		_, errWrongPwd := provider.VerifyIdentity(ctx, "pparker", "wrong-password")

		assert.ErrorIs(t, errUnknown, realworld.ErrCredentialsInvalid)
		assert.ErrorIs(t, errWrongPwd, realworld.ErrCredentialsInvalid)
		assert.Equal(t, errUnknown.Error(), errWrongPwd.Error())
	})

	t.Run("rejects inactive users", func(t *testing.T) {
		user := activeUser("pparker", "with-great-power")
		user.Active = false

		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "pparker").Return(user, nil)

		provider := realworld.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "pparker", "with-great-power")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, realworld.ErrCredentialsInvalid)
	})

	t.Run("wraps unexpected store errors", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "pparker").
			Return(nil, goerrors.New("connection reset", goerrors.CategoryInternal))

		provider := realworld.NewUserProvider(store)

		identity, err := provider.VerifyIdentity(ctx, "pparker", "with-great-power")

		assert.Nil(t, identity)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, realworld.ErrCredentialsInvalid)
	})
}

func TestUserProvider_FindIdentityByIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves active users", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "pparker").Return(activeUser("pparker", "with-great-power"), nil)

		provider := realworld.NewUserProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "pparker")

		assert.NoError(t, err)
		assert.Equal(t, "pparker", identity.Username())
	})

	t.Run("reports missing users", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByUsername", ctx, mock.Anything).Return(nil, realworld.NewRecordNotFound(nil))

		provider := realworld.NewUserProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "nobody")

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, realworld.ErrIdentityNotFound)
	})

	t.Run("rejects deactivated users", func(t *testing.T) {
		user := activeUser("pparker", "with-great-power")
		user.Active = false

		store := &MockUserStore{}
		store.On("GetByUsername", ctx, "pparker").Return(user, nil)

		provider := realworld.NewUserProvider(store)

		identity, err := provider.FindIdentityByIdentifier(ctx, "pparker")

		assert.Nil(t, identity)
		assert.Error(t, err)
	})
}

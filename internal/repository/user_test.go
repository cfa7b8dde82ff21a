package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepository()

	u, err := repo.User.Create(ctx, "Ada", "Lovelace", " Ada@Example.com ", "hash")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.EmailAddress)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = repo.User.Create(ctx, "Ada", "", "ADA@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	byEmail, err := repo.User.GetByEmail(ctx, "ADA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.FirstName)

	byID, err := repo.User.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", byID.LastName)

	_, err = repo.User.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.User.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

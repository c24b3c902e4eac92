package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	u, err := d.CreateUser(ctx, "Alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := d.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	_, err := d.CreateUser(ctx, "Alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = d.CreateUser(ctx, "Other", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	d := newTestDB(t)

	u, err := d.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = d.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

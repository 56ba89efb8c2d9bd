package implementation

import (
	"context"
	"testing"

	"chatshot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialCreateAndFind(t *testing.T) {
	repo := NewCredentialRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Account{Id: "alice", PasswordHash: "$2a$10$hash"}))

	account, err := repo.FindOne(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "alice", account.Id)
	assert.Equal(t, "$2a$10$hash", account.PasswordHash)

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCredentialFindUnknown(t *testing.T) {
	repo := NewCredentialRepository(t.TempDir())
	ctx := context.Background()

	account, err := repo.FindOne(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, account)

	exists, err := repo.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCredentialSurvivesMultipleAccounts(t *testing.T) {
	repo := NewCredentialRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Account{Id: "alice", PasswordHash: "h1"}))
	require.NoError(t, repo.Create(ctx, &entity.Account{Id: "bob", PasswordHash: "h2"}))

	alice, err := repo.FindOne(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, "h1", alice.PasswordHash, "second create must not clobber the first")

	bob, err := repo.FindOne(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, bob)
	assert.Equal(t, "h2", bob.PasswordHash)
}

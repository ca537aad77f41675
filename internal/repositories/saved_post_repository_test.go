package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPostID = "65f0c0ffee0000000000abcd"

func TestSavedPostRepository_ToggleTwiceRestoresState(t *testing.T) {
	repo := NewPostgresSavedPostRepository(newTestDB(t))
	ctx := context.Background()

	saved, record, err := repo.Toggle(ctx, 7, testPostID)
	require.NoError(t, err)
	assert.True(t, saved)
	require.NotNil(t, record)
	assert.Equal(t, uint(7), record.UserID)
	assert.Equal(t, testPostID, record.PostID)

	rows, err := repo.GetSavedPostsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, testPostID, rows[0].PostID)

	saved, record, err = repo.Toggle(ctx, 7, testPostID)
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Nil(t, record)

	rows, err = repo.GetSavedPostsByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSavedPostRepository_ToggleMatchesBothFields(t *testing.T) {
	repo := NewPostgresSavedPostRepository(newTestDB(t))
	ctx := context.Background()
	other := "65f0c0ffee0000000000ef01"

	_, _, err := repo.Toggle(ctx, 7, testPostID)
	require.NoError(t, err)

	// Same post, different user: a new row, not an unsave.
	saved, _, err := repo.Toggle(ctx, 8, testPostID)
	require.NoError(t, err)
	assert.True(t, saved)

	// Same user, different post.
	saved, _, err = repo.Toggle(ctx, 7, other)
	require.NoError(t, err)
	assert.True(t, saved)

	rows, err := repo.GetSavedPostsByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSavedPostRepository_UniquePair(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&models.SavedPost{UserID: 7, PostID: testPostID}).Error)
	err := db.WithContext(ctx).Create(&models.SavedPost{UserID: 7, PostID: testPostID}).Error
	assert.Error(t, err)
}

func TestSavedPostRepository_GetSavedPostsByUserEmpty(t *testing.T) {
	repo := NewPostgresSavedPostRepository(newTestDB(t))

	rows, err := repo.GetSavedPostsByUser(context.Background(), 99)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

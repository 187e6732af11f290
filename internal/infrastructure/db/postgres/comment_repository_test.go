package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

func TestCommentRepository_ListByUser(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(newTestDB(t))

	for _, c := range []*domain.Comment{
		{Name: "a", Description: "first", UserID: 1},
		{Name: "b", Description: "second", UserID: 2},
		{Name: "c", Description: "third", UserID: 1},
	} {
		require.NoError(t, repo.Add(ctx, c))
	}

	mine, err := repo.ListByUser(ctx, 1, ports.ListOptions{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].Name)
	assert.Equal(t, "c", mine[1].Name)

	deleted, err := repo.SoftDelete(ctx, mine[0].ID, 1)
	require.NoError(t, err)
	require.True(t, deleted)

	mine, err = repo.ListByUser(ctx, 1, ports.ListOptions{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c", mine[0].Name)

	all, err := repo.List(ctx, ports.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCommentRepository_UpdateRecordsActor(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(newTestDB(t))

	c := &domain.Comment{Name: "note", Description: "old text", UserID: 1}
	c.CreatedBy = ptr(int64(1))
	require.NoError(t, repo.Add(ctx, c))

	c.Description = "new text"
	c.UpdatedBy = ptr(int64(2))
	require.NoError(t, repo.Update(ctx, c))

	loaded, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "note", loaded.Name)
	assert.Equal(t, int64(1), loaded.UserID)
	assert.Equal(t, "new text", loaded.Description)
	assert.Equal(t, int64(1), *loaded.CreatedBy)
	assert.Equal(t, int64(2), *loaded.UpdatedBy)
}

package repository

import (
	"context"
	"testing"

	"inventory-api/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_AddAndGetByName(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	category, err := domain.NewCategory("Electronics", "devices and parts")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, category))
	require.Greater(t, category.ID(), int64(0))

	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM categories WHERE id = $1", category.ID())
	})

	// Lookup is case-insensitive
	found, err := repo.GetByName(ctx, "electronics")
	require.NoError(t, err)
	require.Equal(t, category.ID(), found.ID())
	require.Equal(t, "Electronics", found.Name())
	require.True(t, found.IsActive())
}

func TestCategoryRepository_DuplicateNameCaseInsensitive(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	category, err := domain.NewCategory("Garden", "")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, category))

	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM categories WHERE id = $1", category.ID())
	})

	duplicate, err := domain.NewCategory("GARDEN", "")
	require.NoError(t, err)
	require.ErrorIs(t, repo.Add(ctx, duplicate), ErrCategoryAlreadyExists)

	exists, err := repo.ExistsByName(ctx, "gArDeN")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestCategoryRepository_GetActiveFiltersInactive(t *testing.T) {
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	active, err := domain.NewCategory("Active Things", "")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, active))

	inactive, err := domain.NewCategory("Dormant Things", "")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, inactive))

	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM categories WHERE id IN ($1, $2)", active.ID(), inactive.ID())
	})

	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))

	categories, err := repo.GetActive(ctx)
	require.NoError(t, err)

	for _, c := range categories {
		require.NotEqual(t, inactive.ID(), c.ID(), "inactive category should be filtered out")
	}
}

func TestCategoryRepository_DeleteMissingReturnsNotFound(t *testing.T) {
	repo := NewCategoryRepository(testDB)

	err := repo.Delete(context.Background(), 999_999_999)
	require.ErrorIs(t, err, ErrCategoryNotFound)
}

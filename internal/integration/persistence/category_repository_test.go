package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/testutil"
)

func TestCategoryRepository_Visibility(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	repo := NewCategoryRepository(gdb, testutil.QueryTimeout)

	userID, stranger := uuid.New(), uuid.New()
	food := testutil.SeedCategory(t, gdb, nil, "Food")
	bills := testutil.SeedCategory(t, gdb, nil, "Bills")
	pets := testutil.SeedCategory(t, gdb, &userID, "Pets")
	hobbies := testutil.SeedCategory(t, gdb, &userID, "Hobbies")
	foreign := testutil.SeedCategory(t, gdb, &stranger, "Secret")

	t.Run("list puts global first then owned by name", func(t *testing.T) {
		categories, err := repo.ListVisible(ctx, userID)
		require.NoError(t, err)

		var ids []int64
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int64{bills, food, hobbies, pets}, ids)
	})

	t.Run("foreign category is not visible", func(t *testing.T) {
		_, err := repo.FindVisibleByID(ctx, userID, foreign)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

		c, err := repo.FindVisibleByID(ctx, userID, food)
		require.NoError(t, err)
		assert.True(t, c.IsGlobal())
	})

	t.Run("names skip foreign and unknown ids", func(t *testing.T) {
		names, err := repo.NamesByID(ctx, userID, []int64{food, pets, foreign, 9999})
		require.NoError(t, err)
		assert.Equal(t, map[int64]string{food: "Food", pets: "Pets"}, names)
	})

	t.Run("find by name", func(t *testing.T) {
		global, err := repo.FindGlobalByName(ctx, "Food")
		require.NoError(t, err)
		require.NotNil(t, global)
		assert.Equal(t, food, global.ID)

		missing, err := repo.FindGlobalByName(ctx, "Pets")
		require.NoError(t, err)
		assert.Nil(t, missing)

		owned, err := repo.FindOwnedByName(ctx, userID, "Pets")
		require.NoError(t, err)
		require.NotNil(t, owned)
		assert.Equal(t, pets, owned.ID)

		notMine, err := repo.FindOwnedByName(ctx, userID, "Secret")
		require.NoError(t, err)
		assert.Nil(t, notMine)
	})

	t.Run("create assigns id", func(t *testing.T) {
		c := entity.NewUserCategory(userID, "Travel")
		require.NoError(t, repo.Create(ctx, c))
		assert.NotZero(t, c.ID)
	})
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(testutil.NewDB(t), testutil.QueryTimeout)
	userID := uuid.New()

	profile, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, profile)

	require.NoError(t, repo.CreateIfAbsent(ctx, entity.NewDefaultProfile(userID)))

	stored, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "0.10", stored.SavingRate.StringFixed(2))
	assert.Equal(t, entity.DefaultCurrencyCode, stored.CurrencyCode)

	stored.BaseSalary = testutil.Money(t, "3000000")
	require.NoError(t, repo.Update(ctx, stored))

	// A second create must not clobber the update.
	require.NoError(t, repo.CreateIfAbsent(ctx, entity.NewDefaultProfile(userID)))

	reread, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "3000000.00", reread.BaseSalary.StringFixed(2))
}

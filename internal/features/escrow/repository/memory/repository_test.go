package memory

import (
	"context"
	"testing"

	"meetup-escrow-backend/internal/features/escrow/models"
	"meetup-escrow-backend/internal/features/escrow/repository"

	"github.com/stretchr/testify/require"
)

func TestRepository_Config(t *testing.T) {
	t.Parallel()

	t.Run("create is guarded by existence", func(t *testing.T) {
		t.Parallel()
		repo := NewEscrowRepository()
		ctx := context.Background()

		cfg := &models.Config{Admin: "a", StartedAt: 1, MeetupDate: 2, DepositFee: 3, TokenID: "ton"}
		require.NoError(t, repo.CreateConfig(ctx, "c1", cfg))
		require.ErrorIs(t, repo.CreateConfig(ctx, "c1", cfg), repository.ErrConfigExists)

		ok, err := repo.HasConfig(ctx, "c1")
		require.NoError(t, err)
		require.True(t, ok)

		got, err := repo.GetConfig(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, cfg, got)
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()
		repo := NewEscrowRepository()
		ctx := context.Background()

		_, err := repo.GetConfig(ctx, "nope")
		require.ErrorIs(t, err, repository.ErrConfigNotFound)

		ok, err := repo.HasConfig(ctx, "nope")
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestRepository_Pool(t *testing.T) {
	t.Parallel()

	t.Run("set get delete round trip", func(t *testing.T) {
		t.Parallel()
		repo := NewEscrowRepository()
		ctx := context.Background()

		pool := &models.PoolRecord{
			Token:      "ton",
			Amount:     100,
			Depositors: []string{"a", "b"},
			TimeBound:  models.TimeBound{Kind: models.TimeBoundBefore, Timestamp: 99},
		}
		require.NoError(t, repo.SetPool(ctx, "c1", pool))

		got, err := repo.GetPool(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, pool, got)

		require.NoError(t, repo.DeletePool(ctx, "c1"))
		_, err = repo.GetPool(ctx, "c1")
		require.ErrorIs(t, err, repository.ErrPoolNotFound)
	})

	t.Run("stored record is isolated from the caller's slice", func(t *testing.T) {
		t.Parallel()
		repo := NewEscrowRepository()
		ctx := context.Background()

		depositors := []string{"a"}
		require.NoError(t, repo.SetPool(ctx, "c1", &models.PoolRecord{Token: "ton", Depositors: depositors}))
		depositors[0] = "mutated"

		got, err := repo.GetPool(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, []string{"a"}, got.Depositors)
	})

	t.Run("delete of a missing record is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := NewEscrowRepository()
		require.NoError(t, repo.DeletePool(context.Background(), "nope"))
	})
}

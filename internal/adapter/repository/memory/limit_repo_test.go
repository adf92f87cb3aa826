package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goatm/internal/adapter/repository/memory"
	"github.com/iho/goatm/internal/domain"
)

func TestLimitRepository_AddAccumulates(t *testing.T) {
	repo := memory.NewLimitRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "ATA", domain.KindWithdrawal, "2024-03-01", decimal.NewFromInt(50000)))
	require.NoError(t, repo.Add(ctx, "ATA", domain.KindWithdrawal, "2024-03-01", decimal.NewFromInt(100000)))

	total, err := repo.Total(ctx, "ATA", domain.KindWithdrawal, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "150000", total.String())
}

func TestLimitRepository_AbsentIsZero(t *testing.T) {
	repo := memory.NewLimitRepository()

	total, err := repo.Total(context.Background(), "ATA", domain.KindWithdrawal, "2024-03-01")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestLimitRepository_KeyedByKindAndDay(t *testing.T) {
	repo := memory.NewLimitRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "ATA", domain.KindWithdrawal, "2024-03-01", decimal.NewFromInt(50000)))
	require.NoError(t, repo.Add(ctx, "ATA", domain.KindDeposit, "2024-03-01", decimal.NewFromInt(200)))
	require.NoError(t, repo.Add(ctx, "ATA", domain.KindWithdrawal, "2024-03-02", decimal.NewFromInt(100000)))
	require.NoError(t, repo.Add(ctx, "AISYAH", domain.KindWithdrawal, "2024-03-01", decimal.NewFromInt(50000)))

	total, err := repo.Total(ctx, "ATA", domain.KindWithdrawal, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "50000", total.String())

	total, err = repo.Total(ctx, "ATA", domain.KindDeposit, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "200", total.String())

	total, err = repo.Total(ctx, "ATA", domain.KindWithdrawal, "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, "100000", total.String())
}

package postgres

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/observability"
	"smart-money-lab/internal/storage"
)

func createTestWallet(address string) *domain.WalletData {
	return &domain.WalletData{
		Address:              address,
		Chain:                "ethereum",
		TotalPnlUSD:          125000,
		ROI:                  0.85,
		WinRate:              62.5,
		SharpeRatio:          1.8,
		MaxDrawdown:          0.25,
		TradeCount:           340,
		AvgTradeSizeUSD:      15000,
		AvgHoldingPeriodDays: 12.4,
		TradingStyle:         domain.StyleSwingTrading,
		RiskProfile:          domain.RiskModerate,
		Verified:             true,
		UpdatedAt:            1700000000000,
	}
}

func TestWalletStore_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWalletStore(pool)

	w := createTestWallet("0xwallet1")
	err := store.Upsert(ctx, w)
	require.NoError(t, err)

	got, err := store.GetByAddress(ctx, "0xwallet1")
	require.NoError(t, err)

	assert.Equal(t, w.Address, got.Address)
	assert.Equal(t, w.Chain, got.Chain)
	assert.InDelta(t, w.TotalPnlUSD, got.TotalPnlUSD, 0.0001)
	assert.InDelta(t, w.ROI, got.ROI, 0.0001)
	assert.InDelta(t, w.WinRate, got.WinRate, 0.0001)
	assert.InDelta(t, w.SharpeRatio, got.SharpeRatio, 0.0001)
	assert.Equal(t, w.TradeCount, got.TradeCount)
	assert.Equal(t, w.TradingStyle, got.TradingStyle)
	assert.Equal(t, w.RiskProfile, got.RiskProfile)
	assert.True(t, got.Verified)
	assert.Equal(t, w.UpdatedAt, got.UpdatedAt)
}

func TestWalletStore_UpsertReplaces(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWalletStore(pool)

	w := createTestWallet("0xwallet1")
	require.NoError(t, store.Upsert(ctx, w))

	w.ROI = 1.5
	w.TradeCount = 400
	w.UpdatedAt = 1700000100000
	require.NoError(t, store.Upsert(ctx, w))

	got, err := store.GetByAddress(ctx, "0xwallet1")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.ROI, 0.0001)
	assert.Equal(t, 400, got.TradeCount)
	assert.Equal(t, int64(1700000100000), got.UpdatedAt)
}

func TestWalletStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWalletStore(pool)

	_, err := store.GetByAddress(ctx, "0xnobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWalletStore_ListAddresses(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWalletStore(pool)

	for _, addr := range []string{"0xccc", "0xaaa", "0xbbb"} {
		require.NoError(t, store.Upsert(ctx, createTestWallet(addr)))
	}

	// Lexical order, no limit
	all, err := store.ListAddresses(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xaaa", "0xbbb", "0xccc"}, all)

	// Paged
	page, err := store.ListAddresses(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xbbb"}, page)

	// Offset past end
	empty, err := store.ListAddresses(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWalletStore_UpsertInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewWalletStore(pool)

	err := store.Upsert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	err = store.Upsert(ctx, &domain.WalletData{})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestWalletStore_RecordsQueryErrors(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	m := observability.NewMetricsWith(prometheus.NewRegistry(), "")
	pool.SetMetrics(m)
	store := NewWalletStore(pool)

	// A cancelled context forces the query into the generic error branch
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetByAddress(ctx, "0xabc")
	require.Error(t, err)
	require.NotErrorIs(t, err, storage.ErrNotFound)

	errCount := testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("postgres", "get_wallet"))
	assert.Equal(t, 1.0, errCount)

	// Successful queries leave the counter untouched
	_, err = store.GetByAddress(context.Background(), "0xabc")
	require.ErrorIs(t, err, storage.ErrNotFound)
	errCount = testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("postgres", "get_wallet"))
	assert.Equal(t, 1.0, errCount)
}

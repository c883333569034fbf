package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

func createTestTrade(tradeID, wallet string, ts int64) *domain.Trade {
	return &domain.Trade{
		TradeID:          tradeID,
		WalletAddress:    wallet,
		Timestamp:        ts,
		Type:             domain.TradeTypeBuy,
		TokenInAddress:   "0xusdc",
		TokenInSymbol:    "USDC",
		TokenInAmount:    1000,
		TokenInValueUSD:  1000,
		TokenOutAddress:  "0xweth",
		TokenOutSymbol:   "WETH",
		TokenOutAmount:   0.5,
		TokenOutValueUSD: 1000,
		Protocol:         "uniswap",
		DEX:              "uniswap_v3",
		TradeSizeUSD:     1000,
		RealizedPnl:      12.5,
		UnrealizedPnl:    3.1,
		ROI:              1.25,
	}
}

func TestTradeStore_InsertAndGetByWallet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	trade := createTestTrade("trade-001", "0xwallet1", 1000)

	err := store.Insert(ctx, trade)
	require.NoError(t, err)

	result, err := store.GetByWallet(ctx, "0xwallet1")
	require.NoError(t, err)
	require.Len(t, result, 1)

	got := result[0]
	assert.Equal(t, trade.TradeID, got.TradeID)
	assert.Equal(t, trade.WalletAddress, got.WalletAddress)
	assert.Equal(t, trade.Timestamp, got.Timestamp)
	assert.Equal(t, trade.Type, got.Type)
	assert.Equal(t, trade.TokenInAddress, got.TokenInAddress)
	assert.Equal(t, trade.TokenOutAddress, got.TokenOutAddress)
	assert.InDelta(t, trade.TokenOutAmount, got.TokenOutAmount, 0.0001)
	assert.Equal(t, trade.Protocol, got.Protocol)
	assert.Equal(t, trade.DEX, got.DEX)
	assert.InDelta(t, trade.TradeSizeUSD, got.TradeSizeUSD, 0.0001)
	assert.InDelta(t, trade.RealizedPnl, got.RealizedPnl, 0.0001)
	assert.InDelta(t, trade.UnrealizedPnl, got.UnrealizedPnl, 0.0001)
	assert.InDelta(t, trade.ROI, got.ROI, 0.0001)
}

func TestTradeStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	trade := createTestTrade("trade-dup-001", "0xwallet1", 1000)

	err := store.Insert(ctx, trade)
	require.NoError(t, err)

	err = store.Insert(ctx, trade)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestTradeStore_InsertInvalid(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	err := store.Insert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	err = store.Insert(ctx, &domain.Trade{WalletAddress: "0xwallet1"})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestTradeStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	firstBatch := []*domain.Trade{
		createTestTrade("atomic-001", "0xwallet1", 1000),
	}
	err := store.InsertBulk(ctx, firstBatch)
	require.NoError(t, err)

	// Second batch has a duplicate and must fail entirely
	secondBatch := []*domain.Trade{
		createTestTrade("atomic-002", "0xwallet1", 2000),
		createTestTrade("atomic-001", "0xwallet1", 1000),
	}
	err = store.InsertBulk(ctx, secondBatch)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	result, err := store.GetByWallet(ctx, "0xwallet1")
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestTradeStore_InsertBulkEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	err := store.InsertBulk(ctx, []*domain.Trade{})
	require.NoError(t, err)
}

func TestTradeStore_Ordering(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	// Insert out of chronological order
	trades := []*domain.Trade{
		createTestTrade("order-003", "0xwallet1", 3000),
		createTestTrade("order-001", "0xwallet1", 1000),
		createTestTrade("order-002", "0xwallet1", 2000),
	}
	err := store.InsertBulk(ctx, trades)
	require.NoError(t, err)

	result, err := store.GetByWallet(ctx, "0xwallet1")
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, int64(1000), result[0].Timestamp)
	assert.Equal(t, int64(2000), result[1].Timestamp)
	assert.Equal(t, int64(3000), result[2].Timestamp)
}

func TestTradeStore_GetByWalletAndTimeRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	trades := []*domain.Trade{
		createTestTrade("range-001", "0xwallet1", 1000),
		createTestTrade("range-002", "0xwallet1", 2000),
		createTestTrade("range-003", "0xwallet1", 3000),
		createTestTrade("range-004", "0xwallet2", 2000),
	}
	err := store.InsertBulk(ctx, trades)
	require.NoError(t, err)

	// Inclusive bounds
	result, err := store.GetByWalletAndTimeRange(ctx, "0xwallet1", 1000, 2000)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "range-001", result[0].TradeID)
	assert.Equal(t, "range-002", result[1].TradeID)
}

func TestTradeStore_WalletIsolation(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	trades := []*domain.Trade{
		createTestTrade("iso-001", "0xwallet1", 1000),
		createTestTrade("iso-002", "0xwallet2", 2000),
	}
	err := store.InsertBulk(ctx, trades)
	require.NoError(t, err)

	result, err := store.GetByWallet(ctx, "0xwallet1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "iso-001", result[0].TradeID)
}

func TestTradeStore_EmptyResult(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(pool)

	result, err := store.GetByWallet(ctx, "0xnobody")
	require.NoError(t, err)
	assert.Empty(t, result)
}

package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

func TestTradeStore_InsertAndDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewTradeStore()

	trade := &domain.Trade{TradeID: "t1", WalletAddress: "0xw", Timestamp: 100}
	if err := store.Insert(ctx, trade); err != nil {
		t.Fatal(err)
	}
	if err := store.Insert(ctx, trade); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if err := store.Insert(ctx, &domain.Trade{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTradeStore_GetByWalletOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewTradeStore()

	// Insert out of chronological order.
	for i, ts := range []int64{500, 100, 300} {
		err := store.Insert(ctx, &domain.Trade{
			TradeID:       fmt.Sprintf("t%d", i),
			WalletAddress: "0xw",
			Timestamp:     ts,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Insert(ctx, &domain.Trade{TradeID: "other", WalletAddress: "0xother", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}

	trades, err := store.GetByWallet(ctx, "0xw")
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	for i := 1; i < len(trades); i++ {
		if trades[i].Timestamp < trades[i-1].Timestamp {
			t.Error("trades not ordered by timestamp ASC")
		}
	}
}

func TestTradeStore_TimeRange(t *testing.T) {
	ctx := context.Background()
	store := NewTradeStore()

	for i, ts := range []int64{100, 200, 300, 400} {
		_ = store.Insert(ctx, &domain.Trade{
			TradeID:       fmt.Sprintf("t%d", i),
			WalletAddress: "0xw",
			Timestamp:     ts,
		})
	}

	trades, err := store.GetByWalletAndTimeRange(ctx, "0xw", 200, 300)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Errorf("expected 2 trades in [200,300], got %d", len(trades))
	}
}

func TestTradeStore_InsertBulkAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewTradeStore()

	batch := []*domain.Trade{
		{TradeID: "a", WalletAddress: "0xw"},
		{TradeID: "a", WalletAddress: "0xw"}, // intra-batch duplicate
	}
	if err := store.InsertBulk(ctx, batch); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	trades, _ := store.GetByWallet(ctx, "0xw")
	if len(trades) != 0 {
		t.Errorf("failed bulk insert must not persist rows, got %d", len(trades))
	}
}

func TestWalletStore_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	store := NewWalletStore()

	if _, err := store.GetByAddress(ctx, "0xmissing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	for _, addr := range []string{"0xc", "0xa", "0xb"} {
		if err := store.Upsert(ctx, &domain.WalletData{Address: addr, ROI: 1}); err != nil {
			t.Fatal(err)
		}
	}
	// Replace one snapshot.
	if err := store.Upsert(ctx, &domain.WalletData{Address: "0xa", ROI: 2}); err != nil {
		t.Fatal(err)
	}

	w, err := store.GetByAddress(ctx, "0xa")
	if err != nil {
		t.Fatal(err)
	}
	if w.ROI != 2 {
		t.Errorf("expected upserted ROI 2, got %f", w.ROI)
	}

	page, err := store.ListAddresses(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0] != "0xb" {
		t.Errorf("expected page [0xb], got %v", page)
	}

	all, _ := store.ListAddresses(ctx, 0, 0)
	if len(all) != 3 {
		t.Errorf("expected 3 addresses, got %d", len(all))
	}
}

func TestTokenHolderStore_GetByTokenOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewTokenHolderStore()

	holders := []*domain.TokenHolder{
		{TokenAddress: "0xt", Chain: "ethereum", HolderAddress: "0x1", Balance: 10},
		{TokenAddress: "0xt", Chain: "ethereum", HolderAddress: "0x2", Balance: 1000},
		{TokenAddress: "0xt", Chain: "ethereum", HolderAddress: "0x3", Balance: 100},
		{TokenAddress: "0xt", Chain: "solana", HolderAddress: "sol1", Balance: 5},
	}
	if err := store.UpsertBulk(ctx, holders); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetByToken(ctx, "0xt", "ethereum")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 holders, got %d", len(got))
	}
	if got[0].Balance != 1000 || got[2].Balance != 10 {
		t.Error("holders not ordered by balance DESC")
	}
}

func TestScoreStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewScoreStore()

	if _, err := store.GetByWallet(ctx, "0xw"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	score := &domain.SmartMoneyScore{WalletAddress: "0xw", SmartMoneyScore: 82, Confidence: domain.ConfidenceMedium}
	if err := store.Upsert(ctx, score); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetByWallet(ctx, "0xw")
	if err != nil {
		t.Fatal(err)
	}
	if got.SmartMoneyScore != 82 {
		t.Errorf("expected score 82, got %f", got.SmartMoneyScore)
	}

	// Mutating the returned copy must not affect the stored row.
	got.SmartMoneyScore = 1
	again, _ := store.GetByWallet(ctx, "0xw")
	if again.SmartMoneyScore != 82 {
		t.Error("store returned a shared reference")
	}
}

func TestScoreSnapshotStore_History(t *testing.T) {
	ctx := context.Background()
	store := NewScoreSnapshotStore()

	batch := []*domain.SmartMoneyScore{
		{WalletAddress: "0xw", SmartMoneyScore: 70, ComputedAt: 100},
		{WalletAddress: "0xw", SmartMoneyScore: 75, ComputedAt: 300},
		{WalletAddress: "0xw", SmartMoneyScore: 72, ComputedAt: 200},
	}
	if err := store.InsertBatch(ctx, batch); err != nil {
		t.Fatal(err)
	}

	history, err := store.GetByWallet(ctx, "0xw", 0, 250)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots in range, got %d", len(history))
	}
	if history[0].ComputedAt != 100 || history[1].ComputedAt != 200 {
		t.Error("history not ordered by computed_at ASC")
	}
}

func TestPoolStore_Roundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewPoolStore()

	pool := &domain.LiquidityPool{PoolID: "p1", PoolType: domain.PoolUniswapV2}
	if err := store.Upsert(ctx, pool); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetByID(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.PoolType != domain.PoolUniswapV2 {
		t.Errorf("unexpected pool type %q", got.PoolType)
	}
	if _, err := store.GetByID(ctx, "p2"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

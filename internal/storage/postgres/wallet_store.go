package postgres

import (
	"context"
	"fmt"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// WalletStore implements storage.WalletStore using PostgreSQL.
type WalletStore struct {
	pool *Pool
}

// NewWalletStore creates a new WalletStore.
func NewWalletStore(pool *Pool) *WalletStore {
	return &WalletStore{pool: pool}
}

var _ storage.WalletStore = (*WalletStore)(nil)

// Upsert inserts or replaces a wallet snapshot.
func (s *WalletStore) Upsert(ctx context.Context, w *domain.WalletData) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO wallets (
			address, chain, total_pnl_usd, roi, win_rate, sharpe_ratio, max_drawdown,
			trade_count, avg_trade_size_usd, avg_holding_period_days,
			trading_style, risk_profile, verified, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14
		)
		ON CONFLICT (address) DO UPDATE SET
			chain = EXCLUDED.chain,
			total_pnl_usd = EXCLUDED.total_pnl_usd,
			roi = EXCLUDED.roi,
			win_rate = EXCLUDED.win_rate,
			sharpe_ratio = EXCLUDED.sharpe_ratio,
			max_drawdown = EXCLUDED.max_drawdown,
			trade_count = EXCLUDED.trade_count,
			avg_trade_size_usd = EXCLUDED.avg_trade_size_usd,
			avg_holding_period_days = EXCLUDED.avg_holding_period_days,
			trading_style = EXCLUDED.trading_style,
			risk_profile = EXCLUDED.risk_profile,
			verified = EXCLUDED.verified,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query,
		w.Address, w.Chain, w.TotalPnlUSD, w.ROI, w.WinRate, w.SharpeRatio, w.MaxDrawdown,
		w.TradeCount, w.AvgTradeSizeUSD, w.AvgHoldingPeriodDays,
		w.TradingStyle, w.RiskProfile, w.Verified, w.UpdatedAt,
	)
	if err != nil {
		s.pool.recordError("upsert_wallet")
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

// GetByAddress retrieves a snapshot. Returns ErrNotFound if absent.
func (s *WalletStore) GetByAddress(ctx context.Context, address string) (*domain.WalletData, error) {
	query := `
		SELECT address, chain, total_pnl_usd, roi, win_rate, sharpe_ratio, max_drawdown,
			trade_count, avg_trade_size_usd, avg_holding_period_days,
			trading_style, risk_profile, verified, updated_at
		FROM wallets
		WHERE address = $1
	`

	w := &domain.WalletData{}
	err := s.pool.QueryRow(ctx, query, address).Scan(
		&w.Address, &w.Chain, &w.TotalPnlUSD, &w.ROI, &w.WinRate, &w.SharpeRatio, &w.MaxDrawdown,
		&w.TradeCount, &w.AvgTradeSizeUSD, &w.AvgHoldingPeriodDays,
		&w.TradingStyle, &w.RiskProfile, &w.Verified, &w.UpdatedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		s.pool.recordError("get_wallet")
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// ListAddresses pages wallet addresses in lexical order.
func (s *WalletStore) ListAddresses(ctx context.Context, offset, limit int) ([]string, error) {
	query := `SELECT address FROM wallets ORDER BY address ASC OFFSET $1`
	args := []any{offset}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.pool.recordError("list_wallet_addresses")
		return nil, fmt.Errorf("list wallet addresses: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			s.pool.recordError("scan_wallet_address")
			return nil, fmt.Errorf("scan wallet address: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		s.pool.recordError("iterate_wallet_addresses")
		return nil, fmt.Errorf("iterate wallet addresses: %w", err)
	}
	return addresses, nil
}

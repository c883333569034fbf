package postgres

import (
	"context"
	"fmt"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// ScoreStore implements storage.ScoreStore using PostgreSQL.
type ScoreStore struct {
	pool *Pool
}

// NewScoreStore creates a new ScoreStore.
func NewScoreStore(pool *Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

var _ storage.ScoreStore = (*ScoreStore)(nil)

// Upsert inserts or replaces the score for a wallet.
func (s *ScoreStore) Upsert(ctx context.Context, score *domain.SmartMoneyScore) error {
	if score == nil || score.WalletAddress == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO smart_money_scores (
			wallet_address, score, confidence,
			performance_score, activity_score, behavioral_score, verification_score,
			computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (wallet_address) DO UPDATE SET
			score = EXCLUDED.score,
			confidence = EXCLUDED.confidence,
			performance_score = EXCLUDED.performance_score,
			activity_score = EXCLUDED.activity_score,
			behavioral_score = EXCLUDED.behavioral_score,
			verification_score = EXCLUDED.verification_score,
			computed_at = EXCLUDED.computed_at
	`

	_, err := s.pool.Exec(ctx, query,
		score.WalletAddress, score.SmartMoneyScore, score.Confidence,
		score.Breakdown.PerformanceScore, score.Breakdown.ActivityScore,
		score.Breakdown.BehavioralScore, score.Breakdown.VerificationScore,
		score.ComputedAt,
	)
	if err != nil {
		s.pool.recordError("upsert_score")
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// GetByWallet retrieves the latest score. Returns ErrNotFound if the
// wallet has never been scored.
func (s *ScoreStore) GetByWallet(ctx context.Context, wallet string) (*domain.SmartMoneyScore, error) {
	query := `
		SELECT wallet_address, score, confidence,
			performance_score, activity_score, behavioral_score, verification_score,
			computed_at
		FROM smart_money_scores
		WHERE wallet_address = $1
	`

	score := &domain.SmartMoneyScore{}
	err := s.pool.QueryRow(ctx, query, wallet).Scan(
		&score.WalletAddress, &score.SmartMoneyScore, &score.Confidence,
		&score.Breakdown.PerformanceScore, &score.Breakdown.ActivityScore,
		&score.Breakdown.BehavioralScore, &score.Breakdown.VerificationScore,
		&score.ComputedAt,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		s.pool.recordError("get_score")
		return nil, fmt.Errorf("get score: %w", err)
	}
	return score, nil
}

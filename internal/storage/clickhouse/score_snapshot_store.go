package clickhouse

import (
	"context"
	"fmt"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// ScoreSnapshotStore implements storage.ScoreSnapshotStore using ClickHouse.
// Snapshots are append-only; MergeTree does not enforce uniqueness and the
// refresh job never writes the same (wallet, computed_at) twice.
type ScoreSnapshotStore struct {
	conn *Conn
}

// NewScoreSnapshotStore creates a new ScoreSnapshotStore.
func NewScoreSnapshotStore(conn *Conn) *ScoreSnapshotStore {
	return &ScoreSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ScoreSnapshotStore = (*ScoreSnapshotStore)(nil)

// InsertBatch appends a batch of score snapshots.
func (s *ScoreSnapshotStore) InsertBatch(ctx context.Context, scores []*domain.SmartMoneyScore) error {
	if len(scores) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO score_snapshots (
			wallet_address, score, confidence,
			performance_score, activity_score, behavioral_score, verification_score,
			computed_at
		)
	`)
	if err != nil {
		s.conn.recordError("prepare_batch")
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, sc := range scores {
		err = batch.Append(
			sc.WalletAddress, sc.SmartMoneyScore, sc.Confidence,
			sc.Breakdown.PerformanceScore, sc.Breakdown.ActivityScore,
			sc.Breakdown.BehavioralScore, sc.Breakdown.VerificationScore,
			sc.ComputedAt,
		)
		if err != nil {
			s.conn.recordError("append_to_batch")
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		s.conn.recordError("send_batch")
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByWallet retrieves a wallet's score history within [start, end]
// (inclusive), ordered by computed_at ASC.
func (s *ScoreSnapshotStore) GetByWallet(ctx context.Context, wallet string, start, end int64) ([]*domain.SmartMoneyScore, error) {
	query := `
		SELECT wallet_address, score, confidence,
		       performance_score, activity_score, behavioral_score, verification_score,
		       computed_at
		FROM score_snapshots
		WHERE wallet_address = ? AND computed_at >= ? AND computed_at <= ?
		ORDER BY computed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, wallet, start, end)
	if err != nil {
		s.conn.recordError("query_score_snapshots")
		return nil, fmt.Errorf("query score snapshots: %w", err)
	}
	defer rows.Close()

	return scanScoreSnapshots(rows)
}

// scanScoreSnapshots scans multiple rows.
func scanScoreSnapshots(rows chRows) ([]*domain.SmartMoneyScore, error) {
	var scores []*domain.SmartMoneyScore

	for rows.Next() {
		var sc domain.SmartMoneyScore

		err := rows.Scan(
			&sc.WalletAddress, &sc.SmartMoneyScore, &sc.Confidence,
			&sc.Breakdown.PerformanceScore, &sc.Breakdown.ActivityScore,
			&sc.Breakdown.BehavioralScore, &sc.Breakdown.VerificationScore,
			&sc.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan score snapshot row: %w", err)
		}

		scores = append(scores, &sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score snapshot rows: %w", err)
	}

	return scores, nil
}

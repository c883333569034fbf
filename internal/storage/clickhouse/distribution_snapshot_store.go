package clickhouse

import (
	"context"
	"fmt"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// DistributionSnapshotStore implements storage.DistributionSnapshotStore
// using ClickHouse. Only the scalar summary is archived; tier and histogram
// breakdowns are recomputed on demand from the live holder snapshot.
type DistributionSnapshotStore struct {
	conn *Conn
}

// NewDistributionSnapshotStore creates a new DistributionSnapshotStore.
func NewDistributionSnapshotStore(conn *Conn) *DistributionSnapshotStore {
	return &DistributionSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DistributionSnapshotStore = (*DistributionSnapshotStore)(nil)

// Insert appends one distribution snapshot.
func (s *DistributionSnapshotStore) Insert(ctx context.Context, d *domain.HolderDistribution) error {
	query := `
		INSERT INTO distribution_snapshots (
			token_address, chain, total_holders,
			gini_coefficient, concentration_score,
			top10_percentage, top50_percentage, top100_percentage,
			computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := s.conn.Exec(ctx, query,
		d.TokenAddress, d.Chain, int32(d.TotalHolders),
		d.GiniCoefficient, d.ConcentrationScore,
		d.Top10Percentage, d.Top50Percentage, d.Top100Percentage,
		d.ComputedAt,
	)
	if err != nil {
		s.conn.recordError("insert_distribution_snapshot")
		return fmt.Errorf("insert distribution snapshot: %w", err)
	}

	return nil
}

// GetByToken retrieves a token's distribution history within [start, end]
// (inclusive), ordered by computed_at ASC.
func (s *DistributionSnapshotStore) GetByToken(ctx context.Context, token, chain string, start, end int64) ([]*domain.HolderDistribution, error) {
	query := `
		SELECT token_address, chain, total_holders,
		       gini_coefficient, concentration_score,
		       top10_percentage, top50_percentage, top100_percentage,
		       computed_at
		FROM distribution_snapshots
		WHERE token_address = ? AND chain = ? AND computed_at >= ? AND computed_at <= ?
		ORDER BY computed_at ASC
	`

	rows, err := s.conn.Query(ctx, query, token, chain, start, end)
	if err != nil {
		s.conn.recordError("query_distribution_snapshots")
		return nil, fmt.Errorf("query distribution snapshots: %w", err)
	}
	defer rows.Close()

	return scanDistributionSnapshots(rows)
}

// scanDistributionSnapshots scans multiple rows.
func scanDistributionSnapshots(rows chRows) ([]*domain.HolderDistribution, error) {
	var snapshots []*domain.HolderDistribution

	for rows.Next() {
		var d domain.HolderDistribution
		var totalHolders int32

		err := rows.Scan(
			&d.TokenAddress, &d.Chain, &totalHolders,
			&d.GiniCoefficient, &d.ConcentrationScore,
			&d.Top10Percentage, &d.Top50Percentage, &d.Top100Percentage,
			&d.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan distribution snapshot row: %w", err)
		}

		d.TotalHolders = int(totalHolders)
		snapshots = append(snapshots, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate distribution snapshot rows: %w", err)
	}

	return snapshots, nil
}

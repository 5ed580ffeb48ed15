package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// CommissionSlabRepository is a PostgreSQL implementation of repository.CommissionSlabRepository.
type CommissionSlabRepository struct {
	q Querier
}

var _ repository.CommissionSlabRepository = (*CommissionSlabRepository)(nil)

// NewCommissionSlabRepository creates a new PostgreSQL commission slab repository.
func NewCommissionSlabRepository(db *sql.DB) *CommissionSlabRepository {
	return &CommissionSlabRepository{q: db}
}

// List returns every slab ordered by FromKm.
func (r *CommissionSlabRepository) List(ctx context.Context) ([]domain.CommissionSlab, error) {
	query := `SELECT id, from_km, to_km, commission_percentage FROM commission_slabs ORDER BY from_km, id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var slabs []domain.CommissionSlab
	for rows.Next() {
		var s domain.CommissionSlab
		if err := rows.Scan(&s.ID, &s.FromKm, &s.ToKm, &s.CommissionPercentage); err != nil {
			return nil, err
		}
		slabs = append(slabs, s)
	}
	return slabs, rows.Err()
}

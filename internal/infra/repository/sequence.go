package repository

import (
	"context"

	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/usecase/shared"
)

// SequenceRepository issues display numbers from per-(kind, year) counter
// rows. The upsert increments atomically at the store, so numbers stay
// strictly increasing across service instances.
type SequenceRepository struct{}

func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{}
}

const nextSequenceSQL = `
INSERT INTO sequence_counters (kind, year, value)
VALUES ($1, $2, 1)
ON CONFLICT (kind, year)
DO UPDATE SET value = sequence_counters.value + 1, updated_at = now()
RETURNING value`

func (r *SequenceRepository) Next(ctx context.Context, tx db.DBTX, kind shared.SequenceKind, year int) (string, error) {
	var value int64
	if err := tx.QueryRow(ctx, nextSequenceSQL, string(kind), year).Scan(&value); err != nil {
		return "", infra.WrapRepoErr("failed to issue sequence number", err)
	}
	return shared.FormatSequence(kind, year, value), nil
}

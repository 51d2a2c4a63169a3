package repository

import (
	"context"

	"eventmarket/internal/domain/cancellation"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type CancellationRepository struct{}

func NewCancellationRepository() *CancellationRepository {
	return &CancellationRepository{}
}

const createCancellationSQL = `
INSERT INTO booking_cancellations (
	id, booking_id, cancelled_by, initiator,
	reason, reason_category,
	lead_days, cancelled_at,
	refund_pct, refund_amount, penalty_amount,
	mutual_agreement, notes, created_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6,
	$7, $8,
	$9::numeric, $10::numeric, $11::numeric,
	$12, $13, $14
)
RETURNING id`

func (r *CancellationRepository) Create(ctx context.Context, tx db.DBTX, c *cancellation.Cancellation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createCancellationSQL,
		c.ID(), c.BookingID(), c.CancelledBy(), string(c.Initiator()),
		c.Reason(), c.ReasonCategory(),
		c.LeadDays(), c.CancelledAt(),
		converter.PercentToArg(c.RefundPct()), converter.MoneyToArg(c.RefundAmount()), converter.MoneyToArg(c.PenaltyAmount()),
		c.MutualAgreement(), c.Notes(), c.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create cancellation", err)
	}
	return id, nil
}

package repository

import (
	"context"

	"eventmarket/internal/domain/booking"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

const createPaymentSQL = `
INSERT INTO booking_payments (
	id, booking_id, number, amount, currency,
	is_deposit, is_refund, status, original_payment_id,
	method, gateway_ref, reason,
	processed_at, created_at
) VALUES (
	$1, $2, $3, $4::numeric, $5,
	$6, $7, $8, $9,
	$10, $11, $12,
	$13, $14
)
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *booking.Payment) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createPaymentSQL,
		p.ID(), p.BookingID(), p.Number(), converter.MoneyToArg(p.Amount()), p.Currency(),
		p.IsDeposit(), p.IsRefund(), string(p.TxStatus()), p.OriginalPaymentID(),
		p.Method(), p.GatewayRef(), p.Reason(),
		p.ProcessedAt(), p.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

const findPaymentSQL = `
SELECT
	id, booking_id, number, amount::text, currency,
	is_deposit, is_refund, status, original_payment_id,
	method, gateway_ref, reason,
	processed_at, created_at
FROM booking_payments
WHERE id = $1`

func (r *PaymentRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Payment, error) {
	return r.scanPayment(ctx, tx, findPaymentSQL, id)
}

const findLatestChargeSQL = `
SELECT
	id, booking_id, number, amount::text, currency,
	is_deposit, is_refund, status, original_payment_id,
	method, gateway_ref, reason,
	processed_at, created_at
FROM booking_payments
WHERE booking_id = $1 AND is_refund = FALSE AND status = 'succeeded'
ORDER BY processed_at DESC, created_at DESC
LIMIT 1`

func (r *PaymentRepository) FindLatestCharge(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (*booking.Payment, error) {
	return r.scanPayment(ctx, tx, findLatestChargeSQL, bookingID)
}

func (r *PaymentRepository) scanPayment(ctx context.Context, tx db.DBTX, sql string, arg any) (*booking.Payment, error) {
	var (
		p      booking.ReconstructPaymentParams
		amount string
		status string
	)
	err := tx.QueryRow(ctx, sql, arg).Scan(
		&p.ID, &p.BookingID, &p.Number, &amount, &p.Currency,
		&p.IsDeposit, &p.IsRefund, &status, &p.OriginalPaymentID,
		&p.Method, &p.GatewayRef, &p.Reason,
		&p.ProcessedAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	if p.Amount, err = converter.MoneyFromText(amount); err != nil {
		return nil, infra.WrapRepoErr("invalid payment amount", err)
	}
	p.Status = booking.TxStatus(status)
	return booking.ReconstructPayment(p), nil
}

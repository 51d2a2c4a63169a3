package repository

import (
	"context"
	"time"

	"eventmarket/internal/domain/quote"
	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type QuoteRepository struct{}

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{}
}

const createQuoteSQL = `
INSERT INTO quotes (
	id, request_id, vendor_id, organizer_id,
	number, status, version, previous_quote_id,
	currency, tax_rate,
	subtotal, discount, tax, total, deposit_pct, deposit_amount,
	title, message, terms_conditions, notes,
	valid_until, sent_at, viewed_at, responded_at, rejection_reason,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6, $7, $8,
	$9, $10::numeric,
	$11::numeric, $12::numeric, $13::numeric, $14::numeric, $15::numeric, $16::numeric,
	$17, $18, $19, $20,
	$21, $22, $23, $24, $25,
	$26, $27
)
RETURNING id`

const createQuoteItemSQL = `
INSERT INTO quote_items (
	id, quote_id, name, description, unit,
	quantity, unit_price, discount_pct, subtotal, line_total, order_index
) VALUES (
	$1, $2, $3, $4, $5,
	$6::numeric, $7::numeric, $8::numeric, $9::numeric, $10::numeric, $11
)`

func (r *QuoteRepository) Create(ctx context.Context, tx db.DBTX, q *quote.Quote) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createQuoteSQL,
		q.ID(), q.RequestID(), q.VendorID(), q.OrganizerID(),
		q.Number(), q.Status().String(), q.Version(), q.PreviousQuoteID(),
		q.Currency(), converter.DecimalToArg(q.TaxRate()),
		converter.MoneyToArg(q.Subtotal()), converter.MoneyToArg(q.Discount()),
		converter.MoneyToArg(q.Tax()), converter.MoneyToArg(q.Total()),
		converter.PercentToArg(q.DepositPct()), converter.MoneyToArg(q.DepositAmount()),
		q.Title(), q.Message(), q.TermsConditions(), q.Notes(),
		q.ValidUntil(), q.SentAt(), q.ViewedAt(), q.RespondedAt(), q.RejectionReason(),
		q.CreatedAt(), q.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create quote", err)
	}

	for _, item := range q.Items() {
		_, err := tx.Exec(ctx, createQuoteItemSQL,
			item.ID(), q.ID(), item.Name(), item.Description(), item.Unit(),
			converter.DecimalToArg(item.Quantity()), converter.MoneyToArg(item.UnitPrice()),
			converter.PercentToArg(item.DiscountPct()), converter.MoneyToArg(item.Subtotal()),
			converter.MoneyToArg(item.LineTotal()), item.OrderIndex(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create quote item", err)
		}
	}
	return id, nil
}

const findQuoteSQL = `
SELECT
	id, request_id, vendor_id, organizer_id,
	number, status, version, previous_quote_id,
	currency, tax_rate::text,
	subtotal::text, discount::text, tax::text, total::text, deposit_pct::text, deposit_amount::text,
	title, message, terms_conditions, notes,
	valid_until, sent_at, viewed_at, responded_at, rejection_reason,
	created_at, updated_at
FROM quotes
WHERE id = $1`

const findQuoteItemsSQL = `
SELECT
	id, name, description, unit,
	quantity::text, unit_price::text, discount_pct::text, subtotal::text, line_total::text, order_index
FROM quote_items
WHERE quote_id = $1
ORDER BY order_index`

func (r *QuoteRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*quote.Quote, error) {
	var (
		p                                       quote.ReconstructParams
		status                                  string
		taxRate, subtotal, discount, tax, total string
		depositPct, depositAmount               string
	)
	err := tx.QueryRow(ctx, findQuoteSQL, id).Scan(
		&p.ID, &p.RequestID, &p.VendorID, &p.OrganizerID,
		&p.Number, &status, &p.Version, &p.PreviousQuoteID,
		&p.Currency, &taxRate,
		&subtotal, &discount, &tax, &total, &depositPct, &depositAmount,
		&p.Title, &p.Message, &p.TermsConditions, &p.Notes,
		&p.ValidUntil, &p.SentAt, &p.ViewedAt, &p.RespondedAt, &p.RejectionReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find quote", err)
	}

	if p.TaxRate, err = converter.DecimalFromText(taxRate); err != nil {
		return nil, infra.WrapRepoErr("invalid tax_rate", err)
	}
	if p.Subtotal, err = converter.MoneyFromText(subtotal); err != nil {
		return nil, infra.WrapRepoErr("invalid subtotal", err)
	}
	if p.Discount, err = converter.MoneyFromText(discount); err != nil {
		return nil, infra.WrapRepoErr("invalid discount", err)
	}
	if p.Tax, err = converter.MoneyFromText(tax); err != nil {
		return nil, infra.WrapRepoErr("invalid tax", err)
	}
	if p.Total, err = converter.MoneyFromText(total); err != nil {
		return nil, infra.WrapRepoErr("invalid total", err)
	}
	if p.DepositPct, err = converter.PercentFromText(depositPct); err != nil {
		return nil, infra.WrapRepoErr("invalid deposit_pct", err)
	}
	if p.DepositAmount, err = converter.MoneyFromText(depositAmount); err != nil {
		return nil, infra.WrapRepoErr("invalid deposit_amount", err)
	}
	p.Status = quote.Status(status)

	items, err := r.findItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	p.Items = items

	return quote.Reconstruct(p), nil
}

func (r *QuoteRepository) findItems(ctx context.Context, tx db.DBTX, quoteID uuid.UUID) ([]quote.Item, error) {
	rows, err := tx.Query(ctx, findQuoteItemsSQL, quoteID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load quote items", err)
	}
	defer rows.Close()

	var items []quote.Item
	for rows.Next() {
		var (
			id                               uuid.UUID
			name                             string
			description, unit                *string
			quantity, unitPrice, discountPct string
			subtotal, lineTotal              string
			orderIndex                       int
		)
		if err := rows.Scan(&id, &name, &description, &unit,
			&quantity, &unitPrice, &discountPct, &subtotal, &lineTotal, &orderIndex); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote item", err)
		}

		qty, err := converter.DecimalFromText(quantity)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid item quantity", err)
		}
		price, err := converter.MoneyFromText(unitPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid item unit_price", err)
		}
		disc, err := converter.PercentFromText(discountPct)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid item discount_pct", err)
		}
		sub, err := converter.MoneyFromText(subtotal)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid item subtotal", err)
		}
		line, err := converter.MoneyFromText(lineTotal)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid item line_total", err)
		}

		items = append(items, quote.ReconstructItem(id, name, description, unit, qty, price, disc, sub, line, orderIndex))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate quote items", err)
	}
	return items, nil
}

const markQuoteSentSQL = `
UPDATE quotes SET
	status = 'sent',
	sent_at = $2,
	updated_at = $2
WHERE id = $1 AND status = 'draft'`

func (r *QuoteRepository) MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, markQuoteSentSQL, id, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark quote sent", err)
	}
	return tag.RowsAffected(), nil
}

const markQuoteViewedSQL = `
UPDATE quotes SET
	status = 'viewed',
	viewed_at = $2,
	updated_at = $2
WHERE id = $1 AND status = 'sent'`

// MarkViewed matches zero rows on repeat views or resolved quotes; both are
// fine.
func (r *QuoteRepository) MarkViewed(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	if _, err := tx.Exec(ctx, markQuoteViewedSQL, id, now); err != nil {
		return infra.WrapRepoErr("failed to mark quote viewed", err)
	}
	return nil
}

const acceptQuoteSQL = `
UPDATE quotes SET
	status = 'accepted',
	responded_at = $2,
	updated_at = $2
WHERE id = $1 AND status IN ('sent', 'viewed')`

func (r *QuoteRepository) Accept(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, acceptQuoteSQL, id, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to accept quote", err)
	}
	return tag.RowsAffected(), nil
}

const rejectQuoteSQL = `
UPDATE quotes SET
	status = 'rejected',
	rejection_reason = $2,
	responded_at = $3,
	updated_at = $3
WHERE id = $1 AND status IN ('sent', 'viewed')`

func (r *QuoteRepository) Reject(ctx context.Context, tx db.DBTX, id uuid.UUID, reason *string, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, rejectQuoteSQL, id, reason, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reject quote", err)
	}
	return tag.RowsAffected(), nil
}

const expireSiblingQuotesSQL = `
UPDATE quotes SET
	status = 'expired',
	updated_at = $3
WHERE request_id = $1 AND id <> $2 AND status IN ('draft', 'sent', 'viewed')`

func (r *QuoteRepository) ExpireSiblings(ctx context.Context, tx db.DBTX, requestID, keepQuoteID uuid.UUID, now time.Time) error {
	if _, err := tx.Exec(ctx, expireSiblingQuotesSQL, requestID, keepQuoteID, now); err != nil {
		return infra.WrapRepoErr("failed to expire sibling quotes", err)
	}
	return nil
}

const expireOpenQuotesSQL = `
UPDATE quotes SET
	status = 'expired',
	updated_at = $2
WHERE request_id = ANY($1) AND status IN ('draft', 'sent', 'viewed')`

func (r *QuoteRepository) ExpireOpenByRequestIDs(ctx context.Context, tx db.DBTX, requestIDs []uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, expireOpenQuotesSQL, requestIDs, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire open quotes", err)
	}
	return tag.RowsAffected(), nil
}

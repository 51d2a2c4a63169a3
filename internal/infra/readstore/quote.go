package readstore

import (
	"context"

	"eventmarket/internal/infra"
	"eventmarket/internal/infra/db"
	"eventmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteReadStore struct {
	db db.DBTX
}

func NewQuoteReadStore(db db.DBTX) *QuoteReadStore {
	return &QuoteReadStore{db: db}
}

const quoteViewSQL = `
SELECT
	q.id, q.request_id, q.vendor_id, v.display_name, v.owner_user_id, q.organizer_id,
	q.number, q.status, q.version, q.previous_quote_id,
	q.currency, q.tax_rate::text,
	q.subtotal::text, q.discount::text, q.tax::text, q.total::text,
	q.deposit_pct::text, q.deposit_amount::text,
	q.title, q.message, q.terms_conditions, q.notes,
	q.valid_until, q.sent_at, q.viewed_at, q.responded_at, q.rejection_reason,
	q.created_at, q.updated_at
FROM quotes q
JOIN vendors v ON v.id = q.vendor_id
WHERE q.id = $1`

const quoteItemViewsSQL = `
SELECT
	id, name, description, unit,
	quantity::text, unit_price::text, discount_pct::text, subtotal::text, line_total::text, order_index
FROM quote_items
WHERE quote_id = $1
ORDER BY order_index`

func (s *QuoteReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.QuoteView, error) {
	var view queries.QuoteView
	err := s.db.QueryRow(ctx, quoteViewSQL, id).Scan(
		&view.ID, &view.RequestID, &view.VendorID, &view.VendorName, &view.VendorOwnerID, &view.OrganizerID,
		&view.Number, &view.Status, &view.Version, &view.PreviousQuoteID,
		&view.Currency, &view.TaxRate,
		&view.Subtotal, &view.Discount, &view.Tax, &view.Total,
		&view.DepositPct, &view.DepositAmount,
		&view.Title, &view.Message, &view.TermsConditions, &view.Notes,
		&view.ValidUntil, &view.SentAt, &view.ViewedAt, &view.RespondedAt, &view.RejectionReason,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find quote view", err)
	}

	items, err := s.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items
	return &view, nil
}

func (s *QuoteReadStore) findItems(ctx context.Context, quoteID uuid.UUID) ([]queries.QuoteItemView, error) {
	rows, err := s.db.Query(ctx, quoteItemViewsSQL, quoteID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quote items", err)
	}
	defer rows.Close()

	items := make([]queries.QuoteItemView, 0, 4)
	for rows.Next() {
		var item queries.QuoteItemView
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Unit,
			&item.Quantity, &item.UnitPrice, &item.DiscountPct, &item.Subtotal, &item.LineTotal, &item.OrderIndex,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate quote item rows", err)
	}
	return items, nil
}

const quoteListByRequestSQL = `
SELECT
	id, request_id, number, status, version, total::text, currency, valid_until, created_at
FROM quotes
WHERE request_id = $1
ORDER BY version DESC, created_at DESC`

func (s *QuoteReadStore) FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*queries.QuoteListItem, error) {
	rows, err := s.db.Query(ctx, quoteListByRequestSQL, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list quotes", err)
	}
	defer rows.Close()

	var result []*queries.QuoteListItem
	for rows.Next() {
		var item queries.QuoteListItem
		if err := rows.Scan(
			&item.ID, &item.RequestID, &item.Number, &item.Status, &item.Version,
			&item.Total, &item.Currency, &item.ValidUntil, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan quote row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate quote rows", err)
	}
	return result, nil
}

const requestPartiesSQL = `
SELECT r.organizer_id, v.owner_user_id
FROM booking_requests r
JOIN vendors v ON v.id = r.vendor_id
WHERE r.id = $1`

func (s *QuoteReadStore) RequestParties(ctx context.Context, requestID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	var organizerID, vendorOwnerID uuid.UUID
	if err := s.db.QueryRow(ctx, requestPartiesSQL, requestID).Scan(&organizerID, &vendorOwnerID); err != nil {
		return uuid.Nil, uuid.Nil, infra.WrapRepoErr("failed to resolve request parties", err)
	}
	return organizerID, vendorOwnerID, nil
}

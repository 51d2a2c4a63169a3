package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventmarket/internal/domain/money"
	"eventmarket/internal/domain/party"
	"eventmarket/internal/domain/request"
	"eventmarket/internal/pkg/clock"
	"eventmarket/internal/pkg/errs"
	"eventmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRequestCommand struct {
	EventID                uuid.UUID
	VendorID               uuid.UUID
	Title                  string
	Description            string
	EventStart             time.Time
	EventEnd               *time.Time
	VenueName              *string
	VenueAddress           *string
	GuestCount             *int
	ServiceCategory        *string
	SpecialRequirements    *string
	BudgetMin              *money.Money
	BudgetMax              *money.Money
	Currency               string
	ResponseDeadline       *time.Time
	PreferredContactMethod *string
}

type UpdateRequestCommand struct {
	Title               *string
	Description         *string
	VenueName           *string
	VenueAddress        *string
	GuestCount          *int
	SpecialRequirements *string
	BudgetMin           *money.Money
	BudgetMax           *money.Money
}

type CreateRequestResult struct {
	RequestID uuid.UUID
}

type RequestCommands interface {
	CreateRequest(ctx context.Context, cmd CreateRequestCommand, actor party.Actor) (*CreateRequestResult, error)
	UpdateRequest(ctx context.Context, requestID uuid.UUID, cmd UpdateRequestCommand, actor party.Actor) error
	MarkViewedByVendor(ctx context.Context, requestID uuid.UUID, actor party.Actor) error
	CancelRequest(ctx context.Context, requestID uuid.UUID, actor party.Actor) error
	// ExpireStaleRequests sweeps every open request past its expiry window
	// together with its open quotes; safe to run repeatedly.
	ExpireStaleRequests(ctx context.Context) (int, error)
}

type requestUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events EventPublisher
}

func NewRequestUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher) RequestCommands {
	return &requestUseCaseImpl{uow: uow, clock: clk, events: events}
}

func (uc *requestUseCaseImpl) CreateRequest(ctx context.Context, cmd CreateRequestCommand, actor party.Actor) (*CreateRequestResult, error) {
	if actor.Role != party.RoleOrganizer && actor.Role != party.RoleAdmin {
		return nil, errs.ErrNotOrganizer
	}

	vendor, err := uc.uow.CommandReads().VendorByID(ctx, cmd.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.Active {
		return nil, errs.ErrVendorInactive
	}

	budget, err := request.NewBudgetRange(cmd.BudgetMin, cmd.BudgetMax)
	if err != nil {
		return nil, markRequestError(err)
	}
	window, err := request.NewEventWindow(cmd.EventStart, cmd.EventEnd)
	if err != nil {
		return nil, markRequestError(err)
	}

	now := uc.clock.Now()
	r, err := request.NewBookingRequest(request.NewRequestParams{
		EventID:                cmd.EventID,
		VendorID:               cmd.VendorID,
		OrganizerID:            actor.UserID,
		Title:                  cmd.Title,
		Description:            cmd.Description,
		Window:                 window,
		VenueName:              cmd.VenueName,
		VenueAddress:           cmd.VenueAddress,
		GuestCount:             cmd.GuestCount,
		ServiceCategory:        cmd.ServiceCategory,
		SpecialRequirements:    cmd.SpecialRequirements,
		Budget:                 budget,
		Currency:               cmd.Currency,
		ResponseDeadline:       cmd.ResponseDeadline,
		PreferredContactMethod: cmd.PreferredContactMethod,
	}, now)
	if err != nil {
		return nil, markRequestError(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, derr := tx.Requests().Create(ctx, tx.DB(), r)
		return derr
	})
	if err != nil {
		return nil, err
	}

	uc.events.Publish(ctx, TopicRequestCreated, map[string]any{
		"request_id": r.ID(),
		"vendor_id":  r.VendorID(),
	})
	return &CreateRequestResult{RequestID: r.ID()}, nil
}

func (uc *requestUseCaseImpl) UpdateRequest(ctx context.Context, requestID uuid.UUID, cmd UpdateRequestCommand, actor party.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Requests().FindByID(ctx, tx.DB(), requestID)
		if err != nil {
			return err
		}
		if r.OrganizerID() != actor.UserID && actor.Role != party.RoleAdmin {
			return errs.ErrNotOrganizer
		}

		var budget *request.BudgetRange
		if cmd.BudgetMin != nil || cmd.BudgetMax != nil {
			b, berr := request.NewBudgetRange(cmd.BudgetMin, cmd.BudgetMax)
			if berr != nil {
				return markRequestError(berr)
			}
			budget = &b
		}

		if err = r.UpdateDetails(request.UpdateDetailsParams{
			Title:               cmd.Title,
			Description:         cmd.Description,
			VenueName:           cmd.VenueName,
			VenueAddress:        cmd.VenueAddress,
			GuestCount:          cmd.GuestCount,
			SpecialRequirements: cmd.SpecialRequirements,
			Budget:              budget,
		}, uc.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrRequestNotEditable)
		}

		return tx.Requests().UpdateDetails(ctx, tx.DB(), r)
	})
}

func (uc *requestUseCaseImpl) MarkViewedByVendor(ctx context.Context, requestID uuid.UUID, actor party.Actor) error {
	snap, err := uc.uow.CommandReads().RequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := uc.requireVendorOwner(ctx, snap.VendorID, actor); err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Requests().MarkViewed(ctx, tx.DB(), requestID, uc.clock.Now())
	})
}

func (uc *requestUseCaseImpl) CancelRequest(ctx context.Context, requestID uuid.UUID, actor party.Actor) error {
	now := uc.clock.Now()
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().RequestByID(ctx, requestID)
		if err != nil {
			return err
		}
		if snap.OrganizerID != actor.UserID && actor.Role != party.RoleAdmin {
			return errs.ErrNotOrganizer
		}
		if snap.Status.IsTerminal() {
			return errs.ErrRequestAlreadyResolved
		}

		affected, err := tx.Requests().TransitionStatus(ctx, tx.DB(), requestID,
			[]request.Status{request.StatusDraft, request.StatusPending, request.StatusQuoted},
			request.StatusCancelled, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.ErrRequestAlreadyResolved
		}

		_, err = tx.Quotes().ExpireOpenByRequestIDs(ctx, tx.DB(), []uuid.UUID{requestID}, now)
		return err
	})
}

func (uc *requestUseCaseImpl) ExpireStaleRequests(ctx context.Context) (int, error) {
	now := uc.clock.Now()

	var expired []uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, err := tx.Requests().ExpireStale(ctx, tx.DB(), now)
		if err != nil {
			return err
		}
		expired = ids
		if len(ids) == 0 {
			return nil
		}
		_, err = tx.Quotes().ExpireOpenByRequestIDs(ctx, tx.DB(), ids, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	if len(expired) > 0 {
		slog.Info("expired stale booking requests", "count", len(expired))
		uc.events.Publish(ctx, TopicRequestExpired, map[string]any{
			"request_ids": expired,
		})
	}
	return len(expired), nil
}

// markRequestError lifts request-domain validation failures onto the usecase
// sentinels so handlers map them to client errors, never 500.
func markRequestError(err error) error {
	switch {
	case errors.Is(err, request.ErrEventDateInPast):
		return errs.Mark(err, errs.ErrEventDateInPast)
	case errors.Is(err, request.ErrEndBeforeStart):
		return errs.Mark(err, errs.ErrInvalidEventWindow)
	case errors.Is(err, request.ErrEmptyTitle):
		return errs.Mark(err, errs.ErrEmptyTitle)
	case errors.Is(err, request.ErrInvalidBudgetRange),
		errors.Is(err, request.ErrNegativeBudget):
		return errs.Mark(err, errs.ErrInvalidBudgetRange)
	}
	return err
}

// requireVendorOwner resolves the vendor profile and checks the acting user
// owns it. Admins pass.
func (uc *requestUseCaseImpl) requireVendorOwner(ctx context.Context, vendorID uuid.UUID, actor party.Actor) error {
	if actor.Role == party.RoleAdmin {
		return nil
	}
	vendor, err := uc.uow.CommandReads().VendorByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if vendor.OwnerUserID != actor.UserID {
		return errs.ErrNotVendor
	}
	return nil
}

package components

import (
	"eventmarket/internal/infra/db"
	"eventmarket/internal/infra/readstore"
	"eventmarket/internal/infra/uow"
	"eventmarket/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestViewRepo)),
		),
		fx.Annotate(
			readstore.NewQuoteReadStore,
			fx.As(new(queries.QuoteViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

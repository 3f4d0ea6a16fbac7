package components

import (
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/infra/readstore"
	"cinema-booking/internal/infra/uow"
	"cinema-booking/internal/usecase/queries"
	"cinema-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Pool-bound reads for pre-transaction validation.
		func(pool *pgxpool.Pool) shared.CommandReads {
			return uow.NewCommandReads(pool)
		},
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

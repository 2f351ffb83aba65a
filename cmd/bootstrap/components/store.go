package components

import (
	"context"
	"fmt"
	"log/slog"

	"roomreserve/internal/infra/memstore"
	"roomreserve/internal/infra/pgstore"
	"roomreserve/internal/pkg/config"
	"roomreserve/internal/usecase/commands"
	"roomreserve/internal/usecase/queries"

	"go.uber.org/fx"
)

// Stores bundles the write repositories and read stores for whichever
// backend STORE_BACKEND selects. Both backends satisfy the same ports,
// so nothing above this layer knows which one is running.
type Stores struct {
	Bookings     commands.BookingRepository
	Rooms        commands.RoomRepository
	Users        commands.UserRepository
	BookingReads queries.BookingReadStore
	RoomReads    queries.RoomReadStore
	UserReads    queries.UserReadStore
}

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
		func(s *Stores) commands.BookingRepository { return s.Bookings },
		func(s *Stores) commands.RoomRepository { return s.Rooms },
		func(s *Stores) commands.UserRepository { return s.Users },
		func(s *Stores) queries.BookingReadStore { return s.BookingReads },
		func(s *Stores) queries.RoomReadStore { return s.RoomReads },
		func(s *Stores) queries.UserReadStore { return s.UserReads },
	),
)

func NewStores(lc fx.Lifecycle, cfg config.Config) (*Stores, error) {
	switch cfg.Store.Backend {
	case "memory":
		slog.Info("using in-memory store backend")
		rooms := memstore.NewRoomStore()
		bookings := memstore.NewBookingStore(rooms)
		users := memstore.NewUserStore()
		stores := &Stores{
			Bookings:     bookings,
			Rooms:        rooms,
			Users:        users,
			BookingReads: memstore.NewBookingReads(bookings),
			RoomReads:    memstore.NewRoomReads(rooms),
			UserReads:    users,
		}
		if err := seed(context.Background(), stores); err != nil {
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		return stores, nil

	case "postgres":
		slog.Info("using postgres store backend", "host", cfg.DB.Host, "db", cfg.DB.DBName)
		pool, err := pgstore.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				pool.Close()
				return nil
			},
		})
		return &Stores{
			Bookings:     pgstore.NewBookingStore(pool),
			Rooms:        pgstore.NewRoomStore(pool),
			Users:        pgstore.NewUserStore(pool),
			BookingReads: pgstore.NewBookingReads(pool),
			RoomReads:    pgstore.NewRoomReads(pool),
			UserReads:    pgstore.NewUserStore(pool),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

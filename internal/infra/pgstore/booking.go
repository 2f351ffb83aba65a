package pgstore

import (
	"context"
	"time"

	"roomreserve/internal/domain/booking"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var bookingColumns = []string{
	"id", "room_id", "requester_id", "requester_name",
	"start_time", "end_time", "status", "created_at",
}

type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

func (s *BookingStore) Create(ctx context.Context, b *booking.Booking) error {
	query, args, err := qb.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			b.ID(), b.RoomID(), b.RequesterID(), b.RequesterName(),
			b.Slot().Start(), b.Slot().End(), b.Status().String(), b.CreatedAt(),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking insert", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapPgErr("failed to insert booking", err)
	}
	return nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking select", err)
	}
	return scanBooking(s.pool.QueryRow(ctx, query, args...))
}

func (s *BookingStore) Update(ctx context.Context, b *booking.Booking) error {
	query, args, err := qb.Update("bookings").
		Set("status", b.Status().String()).
		Set("start_time", b.Slot().Start()).
		Set("end_time", b.Slot().End()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking update", err)
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapPgErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (s *BookingStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := qb.Delete("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build booking delete", err)
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapPgErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (s *BookingStore) FindActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*booking.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{
			"requester_id": requesterID,
			"status":       []string{booking.StatusPending.String(), booking.StatusApproved.String()},
		}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active bookings select", err)
	}
	return s.queryBookings(ctx, query, args)
}

func (s *BookingStore) FindApprovedOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]*booking.Booking, error) {
	query, args, err := qb.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"room_id": roomID, "status": booking.StatusApproved.String()}).
		Where(sq.Lt{"start_time": end}).
		Where(sq.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build overlap select", err)
	}
	return s.queryBookings(ctx, query, args)
}

func (s *BookingStore) queryBookings(ctx context.Context, query string, args []any) ([]*booking.Booking, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgErr("failed to query bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr("failed to read booking rows", err)
	}
	return result, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, roomID, requesterID uuid.UUID
		requesterName, status   string
		startTime, endTime      time.Time
		createdAt               time.Time
	)
	if err := row.Scan(&id, &roomID, &requesterID, &requesterName, &startTime, &endTime, &status, &createdAt); err != nil {
		return nil, mapPgErr("failed to scan booking", err)
	}
	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking status in storage", err)
	}
	return booking.Reconstruct(
		id, roomID, requesterID, requesterName,
		booking.ReconstructTimeSlot(startTime, endTime),
		st, createdAt,
	), nil
}

// BookingReads serves the query side; room names are joined in.
type BookingReads struct {
	pool *pgxpool.Pool
}

func NewBookingReads(pool *pgxpool.Pool) *BookingReads {
	return &BookingReads{pool: pool}
}

func bookingViewSelect() sq.SelectBuilder {
	return qb.Select(
		"b.id", "b.room_id", "r.name", "b.requester_id", "b.requester_name",
		"b.start_time", "b.end_time", "b.status", "b.created_at",
	).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id")
}

func (s *BookingReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := bookingViewSelect().
		Where(sq.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view select", err)
	}
	return scanBookingView(s.pool.QueryRow(ctx, query, args...))
}

func (s *BookingReads) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*queries.BookingView, error) {
	query, args, err := bookingViewSelect().
		Where(sq.Eq{"b.requester_id": requesterID}).
		OrderBy("b.start_time", "b.created_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build requester bookings select", err)
	}
	return s.queryViews(ctx, query, args)
}

func (s *BookingReads) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	query, args, err := bookingViewSelect().
		OrderBy("b.start_time", "b.created_at").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build bookings select", err)
	}
	return s.queryViews(ctx, query, args)
}

func (s *BookingReads) FindApprovedByRoomBetween(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	query, args, err := bookingViewSelect().
		Where(sq.Eq{"b.room_id": roomID, "b.status": booking.StatusApproved.String()}).
		Where(sq.Lt{"b.start_time": to}).
		Where(sq.Gt{"b.end_time": from}).
		OrderBy("b.start_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build approved bookings select", err)
	}
	return s.queryViews(ctx, query, args)
}

func (s *BookingReads) queryViews(ctx context.Context, query string, args []any) ([]*queries.BookingView, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgErr("failed to query booking views", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr("failed to read booking view rows", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.RoomID, &v.RoomName, &v.RequesterID, &v.RequesterName,
		&v.StartTime, &v.EndTime, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, mapPgErr("failed to scan booking view", err)
	}
	return &v, nil
}

package pgstore

import (
	"context"
	"time"

	"roomreserve/internal/domain/room"
	"roomreserve/internal/infra"
	"roomreserve/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var roomColumns = []string{"id", "name", "capacity", "amenities", "state", "created_at"}

type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

func (s *RoomStore) Create(ctx context.Context, r *room.Room) error {
	query, args, err := qb.Insert("rooms").
		Columns(roomColumns...).
		Values(r.ID(), r.Name(), r.Capacity(), r.Amenities(), r.State().String(), r.CreatedAt()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build room insert", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapPgErr("failed to insert room", err)
	}
	return nil
}

func (s *RoomStore) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	query, args, err := qb.Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build room select", err)
	}
	return scanRoom(s.pool.QueryRow(ctx, query, args...))
}

func (s *RoomStore) Save(ctx context.Context, r *room.Room) error {
	query, args, err := qb.Update("rooms").
		Set("name", r.Name()).
		Set("capacity", r.Capacity()).
		Set("amenities", r.Amenities()).
		Set("state", r.State().String()).
		Where(sq.Eq{"id": r.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build room update", err)
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapPgErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		id        uuid.UUID
		name      string
		capacity  int
		amenities []string
		state     string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &capacity, &amenities, &state, &createdAt); err != nil {
		return nil, mapPgErr("failed to scan room", err)
	}
	st, err := room.NewState(state)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room state in storage", err)
	}
	return room.Reconstruct(id, name, capacity, amenities, st, createdAt), nil
}

type RoomReads struct {
	pool *pgxpool.Pool
}

func NewRoomReads(pool *pgxpool.Pool) *RoomReads {
	return &RoomReads{pool: pool}
}

func (s *RoomReads) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	query, args, err := qb.Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build room view select", err)
	}
	return scanRoomView(s.pool.QueryRow(ctx, query, args...))
}

func (s *RoomReads) FindAll(ctx context.Context) ([]*queries.RoomView, error) {
	query, args, err := qb.Select(roomColumns...).
		From("rooms").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rooms select", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgErr("failed to query rooms", err)
	}
	defer rows.Close()

	views := make([]*queries.RoomView, 0)
	for rows.Next() {
		v, err := scanRoomView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr("failed to read room rows", err)
	}
	return views, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var v queries.RoomView
	if err := row.Scan(&v.ID, &v.Name, &v.Capacity, &v.Amenities, &v.State, &v.CreatedAt); err != nil {
		return nil, mapPgErr("failed to scan room view", err)
	}
	return &v, nil
}

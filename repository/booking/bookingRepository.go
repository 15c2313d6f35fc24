package bookingrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

// Filter narrows booking listings by their relation to the current moment
// or by status.
type Filter int

const (
	FilterAll Filter = iota
	FilterCurrent
	FilterPast
	FilterFuture
	FilterWaiting
	FilterRejected
)

// Booking is a booking row joined with its item.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	Status   model.BookingStatus
	BookerID int64
	ItemID   int64
	ItemName string
	OwnerID  int64
}

// ItemInfo is the slice of an item a booking decision needs.
type ItemInfo struct {
	ID        int64
	Name      string
	OwnerID   int64
	Available bool
}

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*Booking, error)
	SetStatusIfWaiting(ctx context.Context, id int64, st model.BookingStatus) (bool, error)
	ByBooker(ctx context.Context, bookerID int64, f Filter, now time.Time, offset, size int) ([]Booking, error)
	ByItemOwner(ctx context.Context, ownerID int64, f Filter, now time.Time, offset, size int) ([]Booking, error)
	ItemByID(ctx context.Context, id int64) (*ItemInfo, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings (start_date, end_date, status, booker_id, item_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		b.Start, b.End, b.Status, b.BookerID, b.ItemID,
	).Scan(&b.ID)
}

const selectBooking = `
	SELECT b.id, b.start_date, b.end_date, b.status, b.booker_id,
	       i.id, i.name, i.owner_id
	FROM bookings b
	JOIN items i ON i.id = b.item_id`

func (r *repo) ByID(ctx context.Context, id int64) (*Booking, error) {
	b := &Booking{}
	err := r.db.Pool.QueryRow(ctx, selectBooking+` WHERE b.id = $1`, id).
		Scan(&b.ID, &b.Start, &b.End, &b.Status, &b.BookerID, &b.ItemID, &b.ItemName, &b.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetStatusIfWaiting flips the status only while the booking is still
// WAITING. Returns false when another decision won the race.
func (r *repo) SetStatusIfWaiting(ctx context.Context, id int64, st model.BookingStatus) (bool, error) {
	ct, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1 AND status = 'WAITING'`,
		id, st)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (r *repo) ByBooker(ctx context.Context, bookerID int64, f Filter, now time.Time, offset, size int) ([]Booking, error) {
	return r.list(ctx, "b.booker_id", bookerID, f, now, offset, size)
}

func (r *repo) ByItemOwner(ctx context.Context, ownerID int64, f Filter, now time.Time, offset, size int) ([]Booking, error) {
	return r.list(ctx, "i.owner_id", ownerID, f, now, offset, size)
}

func (r *repo) list(ctx context.Context, col string, id int64, f Filter, now time.Time, offset, size int) ([]Booking, error) {
	cond, args := filterCond(f, now)
	args = append([]any{id}, args...)

	q := fmt.Sprintf("%s WHERE %s = $1%s ORDER BY b.start_date DESC OFFSET $%d LIMIT $%d",
		selectBooking, col, cond, len(args)+1, len(args)+2)
	args = append(args, offset, size)

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.Start, &b.End, &b.Status, &b.BookerID, &b.ItemID, &b.ItemName, &b.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func filterCond(f Filter, now time.Time) (string, []any) {
	switch f {
	case FilterCurrent:
		return " AND b.start_date < $2 AND b.end_date > $2", []any{now}
	case FilterPast:
		return " AND b.end_date < $2", []any{now}
	case FilterFuture:
		return " AND b.start_date > $2", []any{now}
	case FilterWaiting:
		return " AND b.status = $2", []any{string(model.BookingWaiting)}
	case FilterRejected:
		return " AND b.status = $2", []any{string(model.BookingRejected)}
	default:
		return "", nil
	}
}

func (r *repo) ItemByID(ctx context.Context, id int64) (*ItemInfo, error) {
	it := &ItemInfo{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, owner_id, available
		FROM items
		WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.OwnerID, &it.Available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

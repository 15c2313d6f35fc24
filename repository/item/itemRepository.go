package itemrepo

import (
	"context"
	"errors"
	"time"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

// BookingRef is the short projection of a booking shown on an owner's item.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// CommentRow carries a comment joined with its author's name.
type CommentRow struct {
	ID         int64
	Text       string
	AuthorName string
	Created    time.Time
}

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, size int) ([]model.Item, error)
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error)
	Comments(ctx context.Context, itemID int64) ([]CommentRow, error)
	CreateComment(ctx context.Context, itemID, authorID int64, text string) (*CommentRow, error)
	HasPastApprovedBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	it := &model.Item{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1`,
		id,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`,
		ownerID, offset, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// Search matches name or description case-insensitively. Only available
// items are returned. Blank text is handled one level up.
func (r *repo) Search(ctx context.Context, text string, offset, size int) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT $3`,
		text, offset, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]model.Item, error) {
	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) LastBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	return r.bookingRef(ctx, `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_date < $2
		ORDER BY start_date DESC
		LIMIT 1`,
		itemID, now)
}

func (r *repo) NextBooking(ctx context.Context, itemID int64, now time.Time) (*BookingRef, error) {
	return r.bookingRef(ctx, `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`,
		itemID, now)
}

func (r *repo) bookingRef(ctx context.Context, q string, itemID int64, now time.Time) (*BookingRef, error) {
	ref := &BookingRef{}
	err := r.db.Pool.QueryRow(ctx, q, itemID, now).Scan(&ref.ID, &ref.BookerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *repo) Comments(ctx context.Context, itemID int64) ([]CommentRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.text, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommentRow
	for rows.Next() {
		var c CommentRow
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) CreateComment(ctx context.Context, itemID, authorID int64, text string) (*CommentRow, error) {
	c := &CommentRow{Text: text}
	err := r.db.Pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO comments (text, item_id, author_id)
			VALUES ($1,$2,$3)
			RETURNING id, author_id, created
		)
		SELECT ins.id, u.name, ins.created
		FROM ins
		JOIN users u ON u.id = ins.author_id`,
		text, itemID, authorID,
	).Scan(&c.ID, &c.AuthorName, &c.Created)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) HasPastApprovedBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1 AND item_id = $2
			  AND status = 'APPROVED' AND end_date < $3
		)`,
		authorID, itemID, now,
	).Scan(&ok)
	return ok, err
}

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repo) RequestExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

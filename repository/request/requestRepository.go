package requestrepo

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/database"

	"github.com/jackc/pgx/v5"
)

type Repo interface {
	Create(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	ByOtherRequestors(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rq *model.Request) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests (description, requestor_id)
		VALUES ($1,$2)
		RETURNING id, created`,
		rq.Description, rq.RequestorID,
	).Scan(&rq.ID, &rq.Created)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	rq := &model.Request{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rq, nil
}

func (r *repo) ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id = $1
		ORDER BY created DESC`,
		requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *repo) ByOtherRequestors(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, description, requestor_id, created
		FROM requests
		WHERE requestor_id <> $1
		ORDER BY created DESC
		OFFSET $2 LIMIT $3`,
		requestorID, offset, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]model.Request, error) {
	var out []model.Request
	for rows.Next() {
		var rq model.Request
		if err := rows.Scan(&rq.ID, &rq.Description, &rq.RequestorID, &rq.Created); err != nil {
			return nil, err
		}
		out = append(out, rq)
	}
	return out, rows.Err()
}

func (r *repo) ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = $1
		ORDER BY id`,
		requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (r *repo) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

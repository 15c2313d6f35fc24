package usersvc

import (
	"context"
	"errors"

	"shareit/model"
	"shareit/util/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service interface {
	Create(ctx context.Context, name, email string) (*UserView, error)
	Update(ctx context.Context, id int64, name, email *string) (*UserView, error)
	ByID(ctx context.Context, id int64) (*UserView, error)
	All(ctx context.Context) ([]UserView, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ repo Repo }

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, name, email string) (*UserView, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapPgError(err)
	}
	return view(u), nil
}

// Update applies only the fields the caller sent. A nil field keeps
// the stored value.
func (s *service) Update(ctx context.Context, id int64, name, email *string) (*UserView, error) {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", id)
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapPgError(err)
	}
	return view(u), nil
}

func (s *service) ByID(ctx context.Context, id int64) (*UserView, error) {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", id)
	}
	return view(u), nil
}

func (s *service) All(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, *view(&users[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return errs.Newf(errs.CodeUserNotFound, "user %d not found", id)
	}
	return s.repo.Delete(ctx, id)
}

func view(u *model.User) *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errs.New(errs.CodeDuplicateEmail, "email already in use")
	}
	return err
}

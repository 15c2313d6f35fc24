package requestsvc

import (
	"context"

	"shareit/model"
	"shareit/util/errs"
)

type Repo interface {
	Create(ctx context.Context, rq *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error)
	ByOtherRequestors(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error)
	ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type ItemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type RequestView struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     model.DateTime `json:"created"`
	Items       []ItemView     `json:"items"`
}

type Service interface {
	Create(ctx context.Context, requestorID int64, description string) (*RequestView, error)
	Own(ctx context.Context, requestorID int64) ([]RequestView, error)
	All(ctx context.Context, userID int64, offset, size int) ([]RequestView, error)
	ByID(ctx context.Context, userID, requestID int64) (*RequestView, error)
}

type service struct{ repo Repo }

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, requestorID int64, description string) (*RequestView, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	rq := &model.Request{Description: description, RequestorID: requestorID}
	if err := s.repo.Create(ctx, rq); err != nil {
		return nil, err
	}
	return &RequestView{
		ID:          rq.ID,
		Description: rq.Description,
		Created:     model.NewDateTime(rq.Created),
		Items:       []ItemView{},
	}, nil
}

func (s *service) Own(ctx context.Context, requestorID int64) ([]RequestView, error) {
	if err := s.checkUser(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

// All lists requests posted by everyone except the caller, newest first.
func (s *service) All(ctx context.Context, userID int64, offset, size int) ([]RequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ByOtherRequestors(ctx, userID, offset, size)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, requests)
}

func (s *service) ByID(ctx context.Context, userID, requestID int64) (*RequestView, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	rq, err := s.repo.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if rq == nil {
		return nil, errs.Newf(errs.CodeRequestNotFound, "request %d not found", requestID)
	}
	return s.view(ctx, rq)
}

func (s *service) checkUser(ctx context.Context, id int64) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errs.Newf(errs.CodeUserNotFound, "user %d not found", id)
	}
	return nil
}

func (s *service) views(ctx context.Context, requests []model.Request) ([]RequestView, error) {
	out := make([]RequestView, 0, len(requests))
	for i := range requests {
		v, err := s.view(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *service) view(ctx context.Context, rq *model.Request) (*RequestView, error) {
	items, err := s.repo.ItemsByRequest(ctx, rq.ID)
	if err != nil {
		return nil, err
	}
	v := &RequestView{
		ID:          rq.ID,
		Description: rq.Description,
		Created:     model.NewDateTime(rq.Created),
		Items:       make([]ItemView, 0, len(items)),
	}
	for _, it := range items {
		v.Items = append(v.Items, ItemView{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			RequestID:   it.RequestID,
		})
	}
	return v, nil
}

package itemsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	itemrepo "shareit/repository/item"
	"shareit/util/errs"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, size int) ([]model.Item, error)
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error)
	Comments(ctx context.Context, itemID int64) ([]itemrepo.CommentRow, error)
	CreateComment(ctx context.Context, itemID, authorID int64, text string) (*itemrepo.CommentRow, error)
	HasPastApprovedBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	RequestExists(ctx context.Context, id int64) (bool, error)
}

type ItemView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// BookingRefView is the short booking projection on an owner's item.
type BookingRefView struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type CommentView struct {
	ID         int64          `json:"id"`
	Text       string         `json:"text"`
	AuthorName string         `json:"authorName"`
	Created    model.DateTime `json:"created"`
}

type ItemDetailView struct {
	ItemView
	LastBooking *BookingRefView `json:"lastBooking"`
	NextBooking *BookingRefView `json:"nextBooking"`
	Comments    []CommentView   `json:"comments"`
}

type CreateInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateInput fields left nil (or blank, for the strings) keep the
// stored value.
type UpdateInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, ownerID int64, in CreateInput) (*ItemView, error)
	Update(ctx context.Context, ownerID, itemID int64, in UpdateInput) (*ItemView, error)
	ByID(ctx context.Context, userID, itemID int64) (*ItemDetailView, error)
	ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]ItemDetailView, error)
	Search(ctx context.Context, text string, offset, size int) ([]ItemView, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentView, error)
}

type service struct {
	repo Repo
	now  func() time.Time
}

func New(repo Repo) Service { return &service{repo: repo, now: time.Now} }

func (s *service) Create(ctx context.Context, ownerID int64, in CreateInput) (*ItemView, error) {
	ok, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", ownerID)
	}
	if in.RequestID != nil {
		ok, err := s.repo.RequestExists(ctx, *in.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.Newf(errs.CodeRequestNotFound, "request %d not found", *in.RequestID)
		}
	}

	it := &model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return view(it), nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, in UpdateInput) (*ItemView, error) {
	it, err := s.repo.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, errs.Newf(errs.CodeItemNotFound, "item %d not found", itemID)
	}
	if it.OwnerID != ownerID {
		return nil, errs.Newf(errs.CodeNotOwner, "user %d does not own item %d", ownerID, itemID)
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		it.Name = *in.Name
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return view(it), nil
}

// ByID returns the item with its comments. The lastBooking and
// nextBooking slots are filled only for the item's owner.
func (s *service) ByID(ctx context.Context, userID, itemID int64) (*ItemDetailView, error) {
	it, err := s.repo.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, errs.Newf(errs.CodeItemNotFound, "item %d not found", itemID)
	}
	return s.detail(ctx, it, userID == it.OwnerID)
}

func (s *service) ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]ItemDetailView, error) {
	ok, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", ownerID)
	}

	items, err := s.repo.ByOwner(ctx, ownerID, offset, size)
	if err != nil {
		return nil, err
	}
	out := make([]ItemDetailView, 0, len(items))
	for i := range items {
		d, err := s.detail(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) detail(ctx context.Context, it *model.Item, withBookings bool) (*ItemDetailView, error) {
	d := &ItemDetailView{ItemView: *view(it), Comments: []CommentView{}}

	if withBookings {
		now := s.now()
		last, err := s.repo.LastBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.repo.NextBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking = refView(last)
		d.NextBooking = refView(next)
	}

	comments, err := s.repo.Comments(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		d.Comments = append(d.Comments, commentView(&c))
	}
	return d, nil
}

func (s *service) Search(ctx context.Context, text string, offset, size int) ([]ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}
	items, err := s.repo.Search(ctx, text, offset, size)
	if err != nil {
		return nil, err
	}
	out := make([]ItemView, 0, len(items))
	for i := range items {
		out = append(out, *view(&items[i]))
	}
	return out, nil
}

// AddComment lets a user review an item only after a finished
// APPROVED booking of their own.
func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentView, error) {
	booked, err := s.repo.HasPastApprovedBooking(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, errs.Newf(errs.CodeNotBookedBefore, "user %d has no finished booking of item %d", authorID, itemID)
	}

	it, err := s.repo.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, errs.Newf(errs.CodeItemNotFound, "item %d not found", itemID)
	}
	ok, err := s.repo.UserExists(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", authorID)
	}

	c, err := s.repo.CreateComment(ctx, itemID, authorID, text)
	if err != nil {
		return nil, err
	}
	cv := commentView(c)
	return &cv, nil
}

func view(it *model.Item) *ItemView {
	return &ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

func refView(ref *itemrepo.BookingRef) *BookingRefView {
	if ref == nil {
		return nil
	}
	return &BookingRefView{ID: ref.ID, BookerID: ref.BookerID}
}

func commentView(c *itemrepo.CommentRow) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    model.NewDateTime(c.Created),
	}
}

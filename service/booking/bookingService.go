package bookingsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	"shareit/util/errs"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*bookingrepo.Booking, error)
	SetStatusIfWaiting(ctx context.Context, id int64, st model.BookingStatus) (bool, error)
	ByBooker(ctx context.Context, bookerID int64, f bookingrepo.Filter, now time.Time, offset, size int) ([]bookingrepo.Booking, error)
	ByItemOwner(ctx context.Context, ownerID int64, f bookingrepo.Filter, now time.Time, offset, size int) ([]bookingrepo.Booking, error)
	ItemByID(ctx context.Context, id int64) (*bookingrepo.ItemInfo, error)
	UserExists(ctx context.Context, id int64) (bool, error)
}

type UserRef struct {
	ID int64 `json:"id"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingView struct {
	ID     int64               `json:"id"`
	Start  model.DateTime      `json:"start"`
	End    model.DateTime      `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker UserRef             `json:"booker"`
	Item   ItemRef             `json:"item"`
}

type CreateInput struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, in CreateInput) (*BookingView, error)
	Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingView, error)
	ByID(ctx context.Context, userID, bookingID int64) (*BookingView, error)
	ByBooker(ctx context.Context, bookerID int64, state string, offset, size int) ([]BookingView, error)
	ByOwner(ctx context.Context, ownerID int64, state string, offset, size int) ([]BookingView, error)
}

type service struct {
	repo Repo
	now  func() time.Time
}

func New(repo Repo) Service { return &service{repo: repo, now: time.Now} }

func (s *service) Create(ctx context.Context, bookerID int64, in CreateInput) (*BookingView, error) {
	it, err := s.repo.ItemByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, errs.Newf(errs.CodeItemNotFound, "item %d not found", in.ItemID)
	}
	ok, err := s.repo.UserExists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.Newf(errs.CodeUserNotFound, "user %d not found", bookerID)
	}
	// Owners cannot book their own items. Reported as not found so the
	// response does not leak ownership.
	if it.OwnerID == bookerID {
		return nil, errs.Newf(errs.CodeWrongUser, "item %d not available to its owner", in.ItemID)
	}
	if !it.Available {
		return nil, errs.Newf(errs.CodeItemUnavailable, "item %d is not available", in.ItemID)
	}
	if !in.Start.Before(in.End) {
		return nil, errs.New(errs.CodeInvalidPeriod, "start must be before end")
	}

	b := &model.Booking{
		Start:    in.Start,
		End:      in.End,
		Status:   model.BookingWaiting,
		BookerID: bookerID,
		ItemID:   in.ItemID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return &BookingView{
		ID:     b.ID,
		Start:  model.NewDateTime(b.Start),
		End:    model.NewDateTime(b.End),
		Status: b.Status,
		Booker: UserRef{ID: bookerID},
		Item:   ItemRef{ID: it.ID, Name: it.Name},
	}, nil
}

// Decide approves or rejects a waiting booking. Only the item's owner
// may decide, and only once; a concurrent decision loses cleanly.
func (s *service) Decide(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingView, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errs.Newf(errs.CodeBookingNotFound, "booking %d not found", bookingID)
	}
	if b.OwnerID != ownerID {
		return nil, errs.Newf(errs.CodeWrongUser, "booking %d not found", bookingID)
	}
	if b.Status != model.BookingWaiting {
		return nil, errs.Newf(errs.CodeStatusChanged, "booking %d is already %s", bookingID, b.Status)
	}

	st := model.BookingRejected
	if approved {
		st = model.BookingApproved
	}
	ok, err := s.repo.SetStatusIfWaiting(ctx, bookingID, st)
	if err != nil {
		return nil, err
	}
	if !ok {
		cur, err := s.repo.ByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		status := model.BookingStatus("?")
		if cur != nil {
			status = cur.Status
		}
		return nil, errs.Newf(errs.CodeStatusChanged, "booking %d is already %s", bookingID, status)
	}
	b.Status = st
	return view(b), nil
}

// ByID is visible to the booker and the item's owner only. Anyone else
// gets not found.
func (s *service) ByID(ctx context.Context, userID, bookingID int64) (*BookingView, error) {
	b, err := s.repo.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, errs.Newf(errs.CodeBookingNotFound, "booking %d not found", bookingID)
	}
	if userID != b.BookerID && userID != b.OwnerID {
		return nil, errs.Newf(errs.CodeWrongUser, "booking %d not found", bookingID)
	}
	return view(b), nil
}

func (s *service) ByBooker(ctx context.Context, bookerID int64, state string, offset, size int) ([]BookingView, error) {
	if err := s.checkUser(ctx, bookerID); err != nil {
		return nil, err
	}
	f, err := parseState(state)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ByBooker(ctx, bookerID, f, s.now(), offset, size)
	if err != nil {
		return nil, err
	}
	return views(bookings), nil
}

func (s *service) ByOwner(ctx context.Context, ownerID int64, state string, offset, size int) ([]BookingView, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	f, err := parseState(state)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ByItemOwner(ctx, ownerID, f, s.now(), offset, size)
	if err != nil {
		return nil, err
	}
	return views(bookings), nil
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

func parseState(state string) (bookingrepo.Filter, error) {
	switch strings.ToUpper(state) {
	case "", "ALL":
		return bookingrepo.FilterAll, nil
	case "CURRENT":
		return bookingrepo.FilterCurrent, nil
	case "PAST":
		return bookingrepo.FilterPast, nil
	case "FUTURE":
		return bookingrepo.FilterFuture, nil
	case "WAITING":
		return bookingrepo.FilterWaiting, nil
	case "REJECTED":
		return bookingrepo.FilterRejected, nil
	default:
		return 0, errs.Newf(errs.CodeUnknownState, "Unknown state: %s", state)
	}
}

func view(b *bookingrepo.Booking) *BookingView {
	return &BookingView{
		ID:     b.ID,
		Start:  model.NewDateTime(b.Start),
		End:    model.NewDateTime(b.End),
		Status: b.Status,
		Booker: UserRef{ID: b.BookerID},
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func views(bookings []bookingrepo.Booking) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		out = append(out, *view(&bookings[i]))
	}
	return out
}

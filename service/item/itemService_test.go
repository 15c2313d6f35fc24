package itemsvc

import (
	"context"
	"testing"
	"time"

	"shareit/model"
	itemrepo "shareit/repository/item"
	"shareit/util/errs"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn        func(ctx context.Context, it *model.Item) error
	updateFn        func(ctx context.Context, it *model.Item) error
	byIDFn          func(ctx context.Context, id int64) (*model.Item, error)
	byOwnerFn       func(ctx context.Context, ownerID int64, offset, size int) ([]model.Item, error)
	searchFn        func(ctx context.Context, text string, offset, size int) ([]model.Item, error)
	lastBookingFn   func(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error)
	nextBookingFn   func(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error)
	commentsFn      func(ctx context.Context, itemID int64) ([]itemrepo.CommentRow, error)
	createCommentFn func(ctx context.Context, itemID, authorID int64, text string) (*itemrepo.CommentRow, error)
	hasPastFn       func(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error)
	userExistsFn    func(ctx context.Context, id int64) (bool, error)
	requestExistsFn func(ctx context.Context, id int64) (bool, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, it *model.Item) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, it)
}

func (m *mockRepo) Update(ctx context.Context, it *model.Item) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, it)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ByOwner(ctx context.Context, ownerID int64, offset, size int) ([]model.Item, error) {
	if m.byOwnerFn == nil {
		return nil, nil
	}
	return m.byOwnerFn(ctx, ownerID, offset, size)
}

func (m *mockRepo) Search(ctx context.Context, text string, offset, size int) ([]model.Item, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, text, offset, size)
}

func (m *mockRepo) LastBooking(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error) {
	if m.lastBookingFn == nil {
		return nil, nil
	}
	return m.lastBookingFn(ctx, itemID, now)
}

func (m *mockRepo) NextBooking(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error) {
	if m.nextBookingFn == nil {
		return nil, nil
	}
	return m.nextBookingFn(ctx, itemID, now)
}

func (m *mockRepo) Comments(ctx context.Context, itemID int64) ([]itemrepo.CommentRow, error) {
	if m.commentsFn == nil {
		return nil, nil
	}
	return m.commentsFn(ctx, itemID)
}

func (m *mockRepo) CreateComment(ctx context.Context, itemID, authorID int64, text string) (*itemrepo.CommentRow, error) {
	if m.createCommentFn == nil {
		return &itemrepo.CommentRow{}, nil
	}
	return m.createCommentFn(ctx, itemID, authorID, text)
}

func (m *mockRepo) HasPastApprovedBooking(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
	if m.hasPastFn == nil {
		return false, nil
	}
	return m.hasPastFn(ctx, authorID, itemID, now)
}

func (m *mockRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	if m.userExistsFn == nil {
		return true, nil
	}
	return m.userExistsFn(ctx, id)
}

func (m *mockRepo) RequestExists(ctx context.Context, id int64) (bool, error) {
	if m.requestExistsFn == nil {
		return true, nil
	}
	return m.requestExistsFn(ctx, id)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, it *model.Item) error {
			it.ID = 3
			return nil
		},
	}
	svc := New(m)

	out, err := svc.Create(ctx, 1, CreateInput{Name: "drill", Description: "cordless", Available: true})
	require.NoError(t, err)
	require.Equal(t, int64(3), out.ID)
	require.True(t, out.Available)
	require.Nil(t, out.RequestID)
}

func TestCreate_OwnerMissing(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		userExistsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, err := svc.Create(ctx, 1, CreateInput{Name: "drill", Description: "d", Available: true})
	require.Error(t, err)
	require.Equal(t, errs.CodeUserNotFound, errs.Code(err))
}

func TestCreate_RequestMissing(t *testing.T) {
	ctx := context.Background()
	reqID := int64(9)
	m := &mockRepo{
		requestExistsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, err := svc.Create(ctx, 1, CreateInput{Name: "drill", Description: "d", Available: true, RequestID: &reqID})
	require.Error(t, err)
	require.Equal(t, errs.CodeRequestNotFound, errs.Code(err))
}

func TestUpdate_PartialKeepsBlankAndNil(t *testing.T) {
	ctx := context.Background()
	var saved *model.Item
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "drill", Description: "cordless", Available: true, OwnerID: 1}, nil
		},
		updateFn: func(ctx context.Context, it *model.Item) error {
			saved = it
			return nil
		},
	}
	svc := New(m)

	out, err := svc.Update(ctx, 1, 3, UpdateInput{
		Name:      strPtr("  "),
		Available: boolPtr(false),
	})
	require.NoError(t, err)
	require.Equal(t, "drill", out.Name)
	require.Equal(t, "cordless", out.Description)
	require.False(t, out.Available)
	require.NotNil(t, saved)
	require.Equal(t, "drill", saved.Name)
}

func TestUpdate_NotOwner(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, OwnerID: 1}, nil
		},
	}
	svc := New(m)

	_, err := svc.Update(ctx, 2, 3, UpdateInput{Name: strPtr("x")})
	require.Error(t, err)
	require.Equal(t, errs.CodeNotOwner, errs.Code(err))
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.Update(ctx, 1, 99, UpdateInput{})
	require.Error(t, err)
	require.Equal(t, errs.CodeItemNotFound, errs.Code(err))
}

func TestByID_OwnerSeesBookings(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "drill", OwnerID: 1, Available: true}, nil
		},
		lastBookingFn: func(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error) {
			return &itemrepo.BookingRef{ID: 10, BookerID: 2}, nil
		},
		nextBookingFn: func(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error) {
			return &itemrepo.BookingRef{ID: 11, BookerID: 3}, nil
		},
	}
	svc := New(m)

	out, err := svc.ByID(ctx, 1, 3)
	require.NoError(t, err)
	require.NotNil(t, out.LastBooking)
	require.Equal(t, int64(10), out.LastBooking.ID)
	require.NotNil(t, out.NextBooking)
	require.Equal(t, int64(3), out.NextBooking.BookerID)
}

func TestByID_StrangerSeesNoBookings(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, Name: "drill", OwnerID: 1, Available: true}, nil
		},
		lastBookingFn: func(ctx context.Context, itemID int64, now time.Time) (*itemrepo.BookingRef, error) {
			t.Fatal("booking lookup for non-owner")
			return nil, nil
		},
	}
	svc := New(m)

	out, err := svc.ByID(ctx, 2, 3)
	require.NoError(t, err)
	require.Nil(t, out.LastBooking)
	require.Nil(t, out.NextBooking)
	require.NotNil(t, out.Comments)
}

func TestByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.ByID(ctx, 1, 99)
	require.Error(t, err)
	require.Equal(t, errs.CodeItemNotFound, errs.Code(err))
}

func TestSearch_BlankReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		searchFn: func(ctx context.Context, text string, offset, size int) ([]model.Item, error) {
			t.Fatal("search hit the repo for blank text")
			return nil, nil
		},
	}
	svc := New(m)

	out, err := svc.Search(ctx, "   ", 0, 10)
	require.NoError(t, err)
	require.Empty(t, out)
	require.NotNil(t, out)
}

func TestSearch_PassesThrough(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		searchFn: func(ctx context.Context, text string, offset, size int) ([]model.Item, error) {
			require.Equal(t, "drill", text)
			require.Equal(t, 5, offset)
			require.Equal(t, 20, size)
			return []model.Item{{ID: 1, Name: "drill", Available: true}}, nil
		},
	}
	svc := New(m)

	out, err := svc.Search(ctx, "drill", 5, 20)
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestAddComment_NoFinishedBooking(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.AddComment(ctx, 2, 3, "great drill")
	require.Error(t, err)
	require.Equal(t, errs.CodeNotBookedBefore, errs.Code(err))
}

func TestAddComment_Success(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m := &mockRepo{
		hasPastFn: func(ctx context.Context, authorID, itemID int64, now time.Time) (bool, error) {
			return true, nil
		},
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, OwnerID: 1}, nil
		},
		createCommentFn: func(ctx context.Context, itemID, authorID int64, text string) (*itemrepo.CommentRow, error) {
			return &itemrepo.CommentRow{ID: 5, Text: text, AuthorName: "Bob", Created: created}, nil
		},
	}
	svc := New(m)

	out, err := svc.AddComment(ctx, 2, 3, "great drill")
	require.NoError(t, err)
	require.Equal(t, int64(5), out.ID)
	require.Equal(t, "Bob", out.AuthorName)
	require.Equal(t, created, out.Created.Time)
}

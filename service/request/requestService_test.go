package requestsvc

import (
	"context"
	"testing"
	"time"

	"shareit/model"
	"shareit/util/errs"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn      func(ctx context.Context, rq *model.Request) error
	byIDFn        func(ctx context.Context, id int64) (*model.Request, error)
	byRequestorFn func(ctx context.Context, requestorID int64) ([]model.Request, error)
	byOthersFn    func(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error)
	itemsFn       func(ctx context.Context, requestID int64) ([]model.Item, error)
	userExistsFn  func(ctx context.Context, id int64) (bool, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, rq *model.Request) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, rq)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ByRequestor(ctx context.Context, requestorID int64) ([]model.Request, error) {
	if m.byRequestorFn == nil {
		return nil, nil
	}
	return m.byRequestorFn(ctx, requestorID)
}

func (m *mockRepo) ByOtherRequestors(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error) {
	if m.byOthersFn == nil {
		return nil, nil
	}
	return m.byOthersFn(ctx, requestorID, offset, size)
}

func (m *mockRepo) ItemsByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	if m.itemsFn == nil {
		return nil, nil
	}
	return m.itemsFn(ctx, requestID)
}

func (m *mockRepo) UserExists(ctx context.Context, id int64) (bool, error) {
	if m.userExistsFn == nil {
		return true, nil
	}
	return m.userExistsFn(ctx, id)
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m := &mockRepo{
		createFn: func(ctx context.Context, rq *model.Request) error {
			rq.ID = 4
			rq.Created = created
			return nil
		},
	}
	svc := New(m)

	out, err := svc.Create(ctx, 2, "need a drill")
	require.NoError(t, err)
	require.Equal(t, int64(4), out.ID)
	require.Equal(t, created, out.Created.Time)
	require.NotNil(t, out.Items)
	require.Empty(t, out.Items)
}

func TestCreate_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		userExistsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, err := svc.Create(ctx, 99, "need a drill")
	require.Error(t, err)
	require.Equal(t, errs.CodeUserNotFound, errs.Code(err))
}

func TestByID_WithItems(t *testing.T) {
	ctx := context.Background()
	reqID := int64(4)
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Request, error) {
			return &model.Request{ID: id, Description: "need a drill", RequestorID: 2}, nil
		},
		itemsFn: func(ctx context.Context, requestID int64) ([]model.Item, error) {
			return []model.Item{{ID: 7, Name: "drill", Available: true, OwnerID: 1, RequestID: &reqID}}, nil
		},
	}
	svc := New(m)

	out, err := svc.ByID(ctx, 5, 4)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	require.Equal(t, int64(7), out.Items[0].ID)
	require.Equal(t, &reqID, out.Items[0].RequestID)
}

func TestByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.ByID(ctx, 2, 99)
	require.Error(t, err)
	require.Equal(t, errs.CodeRequestNotFound, errs.Code(err))
}

func TestOwn(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byRequestorFn: func(ctx context.Context, requestorID int64) ([]model.Request, error) {
			require.Equal(t, int64(2), requestorID)
			return []model.Request{
				{ID: 5, Description: "newer", RequestorID: 2},
				{ID: 4, Description: "older", RequestorID: 2},
			}, nil
		},
	}
	svc := New(m)

	out, err := svc.Own(ctx, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, int64(5), out[0].ID)
}

func TestAll_PassesPaging(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byOthersFn: func(ctx context.Context, requestorID int64, offset, size int) ([]model.Request, error) {
			require.Equal(t, int64(2), requestorID)
			require.Equal(t, 10, offset)
			require.Equal(t, 5, size)
			return nil, nil
		},
	}
	svc := New(m)

	out, err := svc.All(ctx, 2, 10, 5)
	require.NoError(t, err)
	require.Empty(t, out)
	require.NotNil(t, out)
}

func TestAll_UserNotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		userExistsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	_, err := svc.All(ctx, 99, 0, 10)
	require.Error(t, err)
	require.Equal(t, errs.CodeUserNotFound, errs.Code(err))
}

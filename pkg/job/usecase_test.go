package job

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMock struct{ mock.Mock }

func (m *repoMock) Create(ctx context.Context, j Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *repoMock) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Job), args.Error(1)
}

func (m *repoMock) List(ctx context.Context, limit, offset int) ([]Job, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]Job), args.Error(1)
}

func (m *repoMock) Update(ctx context.Context, j Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *repoMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	repo := new(repoMock)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(j Job) bool {
		return j.ID != uuid.Nil && !j.CreatedAt.IsZero()
	})).Return(nil)

	svc := NewService(repo)

	created, err := svc.Create(context.Background(), Job{Title: "Backend Engineer", Category: "IT"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_RequiresTitleAndCategory(t *testing.T) {
	repo := new(repoMock)
	svc := NewService(repo)

	for _, j := range []Job{
		{Title: "", Category: "IT"},
		{Title: "Backend Engineer", Category: ""},
		{Title: "   ", Category: "IT"},
	} {
		_, err := svc.Create(context.Background(), j)
		var verr ErrValidation
		assert.ErrorAs(t, err, &verr)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID_PropagatesNotFound(t *testing.T) {
	id := uuid.New()
	repo := new(repoMock)
	repo.On("GetByID", mock.Anything, id).Return(Job{}, ErrNotFound)

	svc := NewService(repo)

	_, err := svc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_DelegatesPaging(t *testing.T) {
	repo := new(repoMock)
	repo.On("List", mock.Anything, 10, 10).Return([]Job{{Title: "x"}}, nil)

	svc := NewService(repo)

	jobs, err := svc.List(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	repo.AssertExpectations(t)
}

func TestDelete_PropagatesNotFound(t *testing.T) {
	id := uuid.New()
	repo := new(repoMock)
	repo.On("Delete", mock.Anything, id).Return(ErrNotFound)

	svc := NewService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrNotFound)
}

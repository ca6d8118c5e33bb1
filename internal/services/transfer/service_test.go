package transfer

import (
	"context"
	"testing"

	"cardbank/internal/models"
	"cardbank/internal/repositories"
	"cardbank/internal/services/authz"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

type MockCardRepo struct {
	mock.Mock
	lockOrder []uint
}

func (m *MockCardRepo) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepo) GetByID(ctx context.Context, id uint) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Card, error) {
	m.lockOrder = append(m.lockOrder, id)
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepo) Update(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCardRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepo) ListByOwner(ctx context.Context, ownerID uint, search string, limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(ctx, ownerID, search, limit, offset)
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepo) SearchByNumber(ctx context.Context, numberPart string, limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(ctx, numberPart, limit, offset)
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Card, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]models.Card), args.Get(1).(int64), args.Error(2)
}

func (m *MockCardRepo) CreateBlockRequest(ctx context.Context, req *models.CardBlockRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCardRepo) CountBlockRequests(ctx context.Context, cardID uint) (int64, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepo) DeleteBlockRequestsByCard(ctx context.Context, cardID uint) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

// ExecuteInTransaction runs the callback against the mock itself, standing in
// for the transaction-bound repository.
func (m *MockCardRepo) ExecuteInTransaction(fn func(repositories.CardRepository) error) error {
	return fn(m)
}

type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func activeCard(id, ownerID uint, balance int64) *models.Card {
	return &models.Card{
		ID:           id,
		CardNumber:   "4000001234567890",
		MaskedNumber: "**** **** **** 7890",
		Status:       models.CardStatusActive,
		Balance:      decimal.NewFromInt(balance),
		UserID:       ownerID,
	}
}

func TestTransfer_Success(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	from := activeCard(1, 42, 1000)
	to := activeCard(2, 42, 200)
	before := from.Balance.Add(to.Balance)

	repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(from, nil)
	repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(to, nil)
	repo.On("Update", mock.Anything, from).Return(nil)
	repo.On("Update", mock.Anything, to).Return(nil)

	result, err := svc.Transfer(context.Background(), 42, Request{
		FromCardID: 1,
		ToCardID:   2,
		Amount:     decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, uint(1), result.FromCardID)
	assert.Equal(t, uint(2), result.ToCardID)
	assert.NotEmpty(t, result.TransactionID)

	assert.True(t, from.Balance.Equal(decimal.NewFromInt(900)), "source debited")
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(300)), "destination credited")
	assert.True(t, from.Balance.Add(to.Balance).Equal(before), "total is conserved")

	repo.AssertExpectations(t)
}

func TestTransfer_LockOrderAscending(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	from := activeCard(5, 42, 1000)
	to := activeCard(3, 42, 0)

	repo.On("GetByIDForUpdate", mock.Anything, uint(3)).Return(to, nil)
	repo.On("GetByIDForUpdate", mock.Anything, uint(5)).Return(from, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Transfer(context.Background(), 42, Request{
		FromCardID: 5,
		ToCardID:   3,
		Amount:     decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5}, repo.lockOrder, "locks acquired in ascending card-id order")
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(990)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(10)))
}

func TestTransfer_Failures(t *testing.T) {
	tests := []struct {
		name      string
		callerID  uint
		req       Request
		setupMock func(*MockCardRepo)
		wantErr   error
	}{
		{
			name:     "same source and destination card",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 1, Amount: decimal.NewFromInt(10)},
			wantErr:  ErrSameCard,
		},
		{
			name:     "zero amount",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.Zero},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "negative amount",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.NewFromInt(-5)},
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "source card missing",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.NewFromInt(10)},
			setupMock: func(repo *MockCardRepo) {
				repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(nil, repositories.ErrCardNotFound)
			},
			wantErr: repositories.ErrCardNotFound,
		},
		{
			name:     "destination not owned by caller",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.NewFromInt(10)},
			setupMock: func(repo *MockCardRepo) {
				repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(activeCard(1, 42, 1000), nil)
				repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(activeCard(2, 99, 0), nil)
			},
			wantErr: authz.ErrNotCardOwner,
		},
		{
			name:     "insufficient funds",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.NewFromInt(100)},
			setupMock: func(repo *MockCardRepo) {
				repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(activeCard(1, 42, 50), nil)
				repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(activeCard(2, 42, 0), nil)
			},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:     "blocked source card",
			callerID: 42,
			req:      Request{FromCardID: 1, ToCardID: 2, Amount: decimal.NewFromInt(10)},
			setupMock: func(repo *MockCardRepo) {
				blocked := activeCard(1, 42, 1000)
				blocked.Status = models.CardStatusBlocked
				repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(blocked, nil)
				repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(activeCard(2, 42, 0), nil)
			},
			wantErr: ErrCardNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCardRepo)
			users := new(MockUserResolver)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := NewService(repo, users)
			_, err := svc.Transfer(context.Background(), tt.callerID, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestTransfer_InsufficientFundsLeavesBalancesUntouched(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	from := activeCard(1, 42, 50)
	to := activeCard(2, 42, 10)

	repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(from, nil)
	repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(to, nil)

	_, err := svc.Transfer(context.Background(), 42, Request{
		FromCardID: 1,
		ToCardID:   2,
		Amount:     decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, from.Balance.Equal(decimal.NewFromInt(50)))
	assert.True(t, to.Balance.Equal(decimal.NewFromInt(10)))
}

func TestTransfer_NotFoundNamesSide(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	repo.On("GetByIDForUpdate", mock.Anything, uint(1)).Return(activeCard(1, 42, 100), nil)
	repo.On("GetByIDForUpdate", mock.Anything, uint(2)).Return(nil, repositories.ErrCardNotFound)

	_, err := svc.Transfer(context.Background(), 42, Request{
		FromCardID: 1,
		ToCardID:   2,
		Amount:     decimal.NewFromInt(10),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrCardNotFound)
	assert.Contains(t, err.Error(), "target card")
}

func TestBlockCard(t *testing.T) {
	t.Run("owner blocks active card", func(t *testing.T) {
		repo := new(MockCardRepo)
		users := new(MockUserResolver)
		svc := NewService(repo, users)

		owned := activeCard(7, 42, 0)
		users.On("GetByID", mock.Anything, uint(42)).Return(&models.User{Model: userModel(42), Username: "alice"}, nil)
		repo.On("GetByID", mock.Anything, uint(7)).Return(owned, nil)
		repo.On("GetByIDForUpdate", mock.Anything, uint(7)).Return(owned, nil)
		repo.On("Update", mock.Anything, owned).Return(nil)
		repo.On("CreateBlockRequest", mock.Anything, mock.MatchedBy(func(req *models.CardBlockRequest) bool {
			return req.CardID == 7 && req.UserID == 42 && req.Message == "lost"
		})).Return(nil)

		blocked, err := svc.BlockCard(context.Background(), 42, 7, "lost")

		require.NoError(t, err)
		assert.Equal(t, models.CardStatusBlocked, blocked.Status)
		repo.AssertNumberOfCalls(t, "CreateBlockRequest", 1)
		repo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected before any write", func(t *testing.T) {
		repo := new(MockCardRepo)
		users := new(MockUserResolver)
		svc := NewService(repo, users)

		other := activeCard(7, 99, 0)
		repo.On("GetByID", mock.Anything, uint(7)).Return(other, nil)
		users.On("GetByID", mock.Anything, uint(42)).Return(&models.User{Model: userModel(42)}, nil)

		_, err := svc.BlockCard(context.Background(), 42, 7, "lost")

		assert.ErrorIs(t, err, authz.ErrNotCardOwner)
		assert.Equal(t, models.CardStatusActive, other.Status)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "CreateBlockRequest", mock.Anything, mock.Anything)
	})

	t.Run("missing card", func(t *testing.T) {
		repo := new(MockCardRepo)
		users := new(MockUserResolver)
		svc := NewService(repo, users)

		repo.On("GetByID", mock.Anything, uint(7)).Return(nil, repositories.ErrCardNotFound)

		_, err := svc.BlockCard(context.Background(), 42, 7, "lost")
		assert.ErrorIs(t, err, repositories.ErrCardNotFound)
	})
}

func TestGetCardBalance(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	owned := activeCard(7, 42, 500)
	repo.On("GetByID", mock.Anything, uint(7)).Return(owned, nil)

	first, err := svc.GetCardBalance(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), first.CardID)
	assert.Equal(t, "**** **** **** 7890", first.MaskedNumber)
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(500)))

	// Reads are idempotent: repeating the call yields an identical result.
	second, err := svc.GetCardBalance(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetCardBalance_Forbidden(t *testing.T) {
	repo := new(MockCardRepo)
	users := new(MockUserResolver)
	svc := NewService(repo, users)

	repo.On("GetByID", mock.Anything, uint(7)).Return(activeCard(7, 99, 500), nil)

	_, err := svc.GetCardBalance(context.Background(), 42, 7)
	assert.ErrorIs(t, err, authz.ErrNotCardOwner)
}

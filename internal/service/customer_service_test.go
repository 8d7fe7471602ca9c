package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"customerhub/internal/errors"
	"customerhub/internal/model"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context, ownerID string) ([]model.Customer, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id, ownerID string) (*model.Customer, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Add(ctx context.Context, input model.CustomerInput, ownerID string) (*model.Customer, error) {
	args := m.Called(ctx, input, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id string, patch model.CustomerPatch, ownerID string) (*model.Customer, error) {
	args := m.Called(ctx, id, patch, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id, ownerID string) (*model.Customer, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func TestCustomerService_CreateTrimsAndDefaults(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	want := model.CustomerInput{Name: "Bob", Email: "b@x.com"}
	mockRepo.On("Add", mock.Anything, want, "owner").Return(&model.Customer{ID: "c1", Name: "Bob", Email: "b@x.com"}, nil)

	svc := NewCustomerService(mockRepo, zap.NewNop())
	customer, err := svc.Create(context.Background(), model.CustomerInput{Name: "  Bob ", Email: " b@x.com", Phone: "   "}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "c1", customer.ID)

	mockRepo.AssertExpectations(t)
}

func TestCustomerService_CreateRequiresNameAndEmail(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	svc := NewCustomerService(mockRepo, zap.NewNop())

	for _, input := range []model.CustomerInput{
		{Name: "", Email: "b@x.com"},
		{Name: "Bob", Email: "   "},
	} {
		customer, err := svc.Create(context.Background(), input, "owner")
		assert.Nil(t, customer)
		var validationErr *errors.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}

	mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerService_List(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("List", mock.Anything, "owner").Return([]model.Customer{
		{ID: "c1", Name: "Bob", Email: "b@x.com", CreatedAt: time.Now()},
	}, nil)

	svc := NewCustomerService(mockRepo, zap.NewNop())
	summaries, err := svc.List(context.Background(), "owner")
	require.NoError(t, err)
	assert.Equal(t, []model.CustomerSummary{{ID: "c1", Name: "Bob"}}, summaries)
}

func TestCustomerService_NotFound(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("Get", mock.Anything, "missing", "owner").Return(nil, nil)
	mockRepo.On("Update", mock.Anything, "missing", mock.Anything, "owner").Return(nil, nil)
	mockRepo.On("Delete", mock.Anything, "missing", "owner").Return(nil, nil)

	svc := NewCustomerService(mockRepo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing", "owner")
	assert.ErrorIs(t, err, errors.ErrCustomerNotFound)

	name := "X"
	_, err = svc.Update(ctx, "missing", model.CustomerPatch{Name: &name}, "owner")
	assert.ErrorIs(t, err, errors.ErrCustomerNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing", "owner"), errors.ErrCustomerNotFound)

	mockRepo.AssertExpectations(t)
}

func TestCustomerService_UpdateTrimsProvidedFields(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("Update", mock.Anything, "c1", mock.MatchedBy(func(p model.CustomerPatch) bool {
		return p.Phone != nil && *p.Phone == "555" && p.Name == nil && p.Email == nil && p.Company == nil
	}), "owner").Return(&model.Customer{ID: "c1", Phone: "555"}, nil)

	svc := NewCustomerService(mockRepo, zap.NewNop())
	phone := "  555  "
	customer, err := svc.Update(context.Background(), "c1", model.CustomerPatch{Phone: &phone}, "owner")
	require.NoError(t, err)
	assert.Equal(t, "555", customer.Phone)

	mockRepo.AssertExpectations(t)
}

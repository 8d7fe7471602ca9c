package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"customerhub/internal/auth"
	"customerhub/internal/cache"
	"customerhub/internal/cache/cachetest"
	"customerhub/internal/errors"
	"customerhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, email, password, name, nationalID string) (*model.User, error) {
	args := m.Called(ctx, email, password, name, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.PublicUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PublicUser), args.Error(1)
}

func storedUser() *model.User {
	return &model.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         "A",
		NationalID:   "123456789",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		idNumber      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful signup",
			idNumber: "123456789",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, "a@x.com", "pw", "A", "123456789").Return(storedUser(), nil)
			},
		},
		{
			name:     "invalid id number",
			idNumber: "12345",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, "a@x.com", "pw", "A", "12345").Return(nil, errors.ErrInvalidIDNumber)
			},
			expectedError: errors.ErrInvalidIDNumber,
		},
		{
			name:     "duplicate email",
			idNumber: "123456789",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, "a@x.com", "pw", "A", "123456789").Return(nil, errors.ErrEmailTaken)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			jwtService := auth.NewJWTService("test-secret", time.Hour)

			svc := NewAuthService(mockRepo, jwtService, nil, zap.NewNop())
			token, user, err := svc.Signup(context.Background(), "a@x.com", "pw", "A", tt.idNumber)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "a@x.com", user.Email)

				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "a@x.com", claims.Email)

				raw, err := json.Marshal(user)
				require.NoError(t, err)
				assert.NotContains(t, string(raw), "password")
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signin(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful signin",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(storedUser(), nil)
				m.On("VerifyPassword", "pw", "$2a$10$hash").Return(true)
			},
		},
		{
			name: "unknown user",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(storedUser(), nil)
				m.On("VerifyPassword", "pw", "$2a$10$hash").Return(false)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			jwtService := auth.NewJWTService("test-secret", time.Hour)

			svc := NewAuthService(mockRepo, jwtService, nil, zap.NewNop())
			token, user, err := svc.Signin(context.Background(), "a@x.com", "pw")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, "user-1", user.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "user-1").Return(storedUser(), nil)
	mockRepo.On("FindByID", mock.Anything, "gone").Return(nil, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("s", time.Hour), nil, zap.NewNop())

	user, err := svc.Me(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	user, err = svc.Me(context.Background(), "gone")
	assert.Equal(t, errors.ErrUserNotFound, err)
	assert.Nil(t, user)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_MeServesFromCache(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, "user-1").Return(storedUser(), nil).Once()

	mem := cachetest.NewMemory()
	svc := NewAuthService(mockRepo, auth.NewJWTService("s", time.Hour), cache.NewWithCmdable(mem), zap.NewNop())
	ctx := context.Background()

	first, err := svc.Me(ctx, "user-1")
	require.NoError(t, err)

	raw, ok := mem.Value("user:user-1")
	require.True(t, ok)
	assert.NotContains(t, raw, "$2a$10$hash")

	second, err := svc.Me(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.NationalID, second.NationalID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	mockRepo.AssertNumberOfCalls(t, "FindByID", 1)
	assert.Equal(t, 1, mem.Sets)
}

func TestAuthService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.PublicUser{storedUser().Public()}, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("s", time.Hour), nil, zap.NewNop())
	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)

	mockRepo.AssertExpectations(t)
}

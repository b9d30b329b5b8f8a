package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"workspace_chat_service/internal/account/app"
	"workspace_chat_service/internal/account/domain"
	"workspace_chat_service/pkg/encrypt"
	"workspace_chat_service/pkg/logger"
	"workspace_chat_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// === 以下為假的 mock repository，用來做 TDD ===
type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepo) FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error) {
	args := m.Called(ctx, query)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepo) UpdateAccountStatus(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

type mockSessionRedis struct {
	mock.Mock
}

func (m *mockSessionRedis) Set(ctx context.Context, key string, s domain.AccountSession, ttl time.Duration) error {
	args := m.Called(ctx, key, s, ttl)
	return args.Error(0)
}

func (m *mockSessionRedis) Get(ctx context.Context, key string) (domain.AccountSession, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.AccountSession), args.Error(1)
}

func (m *mockSessionRedis) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockSessionRedis) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

func (m *mockSessionRedis) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// === 測試 Register ===
func TestAccountUseCase_Register(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	accountRepo.On("FindByAccount", ctx, mock.Anything).
		Return(nil, errors.New("no account found with given criteria"))
	accountRepo.On("CreateAccount", ctx, mock.Anything).Return(nil)

	err := usecase.Register(ctx, "user@example.com", "alice", "Passw0rd123")
	assert.NoError(t, err)
	accountRepo.AssertCalled(t, "CreateAccount", ctx, mock.Anything)

	// 密碼強度不足
	err = usecase.Register(ctx, "weak@example.com", "bob", "short")
	assert.Error(t, err)
}

func TestAccountUseCase_RegisterDuplicateEmail(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	accountRepo.On("FindByAccount", ctx, mock.Anything).
		Return(&domain.Account{ID: 1, Email: "user@example.com"}, nil)

	err := usecase.Register(ctx, "user@example.com", "alice", "Passw0rd123")
	assert.Error(t, err)
	assert.Equal(t, "email already exists", err.Error())
	accountRepo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

// === 測試 Login ===
func TestAccountUseCase_Login(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	hashed, err := encrypt.HashPassword("Passw0rd123")
	assert.NoError(t, err)

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	accountRepo.On("FindByAccount", ctx, mock.Anything).
		Return(&domain.Account{ID: 1, UserID: "u-1", UserName: "alice", Email: "user@example.com", Password: hashed}, nil)
	accountRepo.On("UpdateAccountStatus", ctx, mock.Anything).Return(nil)
	redisRepo.On("Set", mock.Anything, "u-1", mock.Anything, 30*time.Minute).Return(nil)

	// 測試正確密碼
	jwt, err := usecase.Login(ctx, "user@example.com", "Passw0rd123")
	assert.NotEmpty(t, jwt)
	assert.NoError(t, err)

	claims, err := token.ParseJWT(jwt)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.UserName)

	// 測試錯誤密碼
	_, err = usecase.Login(ctx, "user@example.com", "wrongpass")
	assert.Error(t, err)
}

func TestAccountUseCase_LoginUnknownEmail(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	accountRepo.On("FindByAccount", ctx, mock.Anything).
		Return(nil, errors.New("no account found with given criteria"))

	_, err := usecase.Login(ctx, "ghost@example.com", "Passw0rd123")
	assert.Error(t, err)
	assert.Equal(t, "user not found", err.Error())
}

// === 測試 Logout ===
func TestAccountUseCase_Logout(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	jwt, err := token.GenerateJWT("u-1", "alice", string(token.RoleMember), "test")
	assert.NoError(t, err)

	redisRepo.On("Del", mock.Anything, "u-1").Return(nil)
	accountRepo.On("UpdateAccountStatus", ctx, mock.Anything).Return(nil)

	assert.NoError(t, usecase.Logout(ctx, jwt))
	redisRepo.AssertCalled(t, "Del", mock.Anything, "u-1")

	// 無效 token
	assert.Error(t, usecase.Logout(ctx, "not-a-token"))
}

// === 測試 CheckSessionTimeout ===
func TestAccountUseCase_CheckSessionTimeout(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	jwt, err := token.GenerateJWT("u-1", "alice", string(token.RoleMember), "test")
	assert.NoError(t, err)

	// session 仍有效
	redisRepo.On("GetTTL", mock.Anything, "u-1").Return(600, nil).Once()
	expired, err := usecase.CheckSessionTimeout(ctx, jwt)
	assert.NoError(t, err)
	assert.False(t, expired)

	// session 已過期
	redisRepo.On("GetTTL", mock.Anything, "u-1").Return(0, nil).Once()
	expired, err = usecase.CheckSessionTimeout(ctx, jwt)
	assert.NoError(t, err)
	assert.True(t, expired)
}

// === 測試 ReconnectSession ===
func TestAccountUseCase_ReconnectSession(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	accountRepo := new(mockAccountRepo)
	redisRepo := new(mockSessionRedis)
	usecase := app.NewAccountUseCase(accountRepo, 30*time.Minute, redisRepo)

	jwt, err := token.GenerateJWT("u-1", "alice", string(token.RoleMember), "test")
	assert.NoError(t, err)

	redisRepo.On("ExtendTTL", mock.Anything, "u-1", 30*time.Minute).Return(nil)

	assert.NoError(t, usecase.ReconnectSession(ctx, jwt))
	redisRepo.AssertCalled(t, "ExtendTTL", mock.Anything, "u-1", 30*time.Minute)
}

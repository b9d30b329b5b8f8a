package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workspace_chat_service/internal/account/domain"
	"workspace_chat_service/internal/account/repository"
	"workspace_chat_service/pkg/config"
	"workspace_chat_service/pkg/database"
	"workspace_chat_service/pkg/encrypt"
	"workspace_chat_service/pkg/logger"
	token "workspace_chat_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountUseCase 這裡封裝了對外提供的應用服務
type AccountUseCase interface {
	Register(ctx context.Context, email, userName, password string) error
	FindAccount(ctx context.Context, param *domain.AccountQuery) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ForceLogout(ctx context.Context, userID string) error
	CheckSessionTimeout(ctx context.Context, token string) (bool, error)
	ReconnectSession(ctx context.Context, token string) error
}

type accountUseCase struct {
	accountRepo repository.AccountRepository
	sessionTTL  time.Duration
	redisRepo   database.RedisRepository[domain.AccountSession]
}

// NewAccountUseCase 建立一個新的 AccountUseCase
func NewAccountUseCase(accountRepo repository.AccountRepository,
	sessionTTL time.Duration,
	redisRepo database.RedisRepository[domain.AccountSession],
) AccountUseCase {
	return &accountUseCase{
		accountRepo: accountRepo,
		sessionTTL:  sessionTTL,
		redisRepo:   redisRepo,
	}
}

// Register 建立新使用者,email 不可重複
func (a *accountUseCase) Register(ctx context.Context, email, userName, password string) error {
	if _, err := a.accountRepo.FindByAccount(ctx, &domain.AccountQuery{Email: &email}); err == nil {
		return errors.New("email already exists")
	}

	pw, err := encrypt.HashPassword(password)
	if err != nil {
		return err
	}

	account := domain.Account{
		UserID:   uuid.New().String(),
		UserName: userName,
		Email:    email,
		Password: pw,
	}

	logger.Log.Info(fmt.Sprintf("usecase Register : %s", account.Email))

	return a.accountRepo.CreateAccount(ctx, &account)
}

// FindAccount 依查詢條件尋找使用者
func (a *accountUseCase) FindAccount(ctx context.Context, param *domain.AccountQuery) (*domain.Account, error) {
	return a.accountRepo.FindByAccount(ctx, param)
}

// Login 驗證密碼並簽發 JWT,session 寫入 redis
func (a *accountUseCase) Login(ctx context.Context, email, password string) (string, error) {
	account, err := a.accountRepo.FindByAccount(ctx, &domain.AccountQuery{Email: &email})
	if err != nil {
		logger.Log.Error("email can't find!!!")
		return "", errors.New("user not found")
	}

	if err = account.IsPasswordMatch(password); err != nil {
		logger.Log.Error("password can't match!!!")
		return "", err
	}

	account.Status = domain.AccountStatusOnLine

	t, err := token.GenerateJWT(account.UserID, account.UserName, string(token.RoleMember), config.EnvConfig.AccountService)
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := domain.AccountSession{
		Token:        t,
		UserID:       account.UserID,
		CreatedAt:    now,
		LastActivity: now,
		ExpiredAt:    now.Add(a.sessionTTL),
	}

	a.redisRepo.Set(context.Background(), account.UserID, session, a.sessionTTL)

	if err := a.accountRepo.UpdateAccountStatus(ctx, account); err != nil {
		return "", err
	}

	return t, nil
}

// Logout 清除 session 並標記離線
func (a *accountUseCase) Logout(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("Logout err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("logout", zap.String("account token info", fmt.Sprintf("%v", tokenInfo)))

	a.redisRepo.Del(context.Background(), tokenInfo.UserID)

	return a.accountRepo.UpdateAccountStatus(ctx, &domain.Account{
		UserID: tokenInfo.UserID,
		Status: domain.AccountStatusOffLine,
	})
}

// ForceLogout 直接把該 userID 的 session 清除
func (a *accountUseCase) ForceLogout(ctx context.Context, userID string) error {
	a.redisRepo.Del(context.Background(), userID)

	return a.accountRepo.UpdateAccountStatus(ctx, &domain.Account{
		UserID: userID,
		Status: domain.AccountStatusOffLine,
	})
}

// CheckSessionTimeout 檢查 session 是否仍然有效
func (a *accountUseCase) CheckSessionTimeout(ctx context.Context, t string) (bool, error) {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("CheckSessionTimeout err :", zap.String("err", err.Error()))
		return true, err
	}

	ttl, err := a.redisRepo.GetTTL(context.Background(), tokenInfo.UserID)
	if err != nil {
		return true, err
	}

	if ttl > 0 {
		return false, nil
	}
	return true, nil
}

// ReconnectSession 斷線重連時延長 session
func (a *accountUseCase) ReconnectSession(ctx context.Context, t string) error {
	tokenInfo, err := token.ParseJWT(t)
	if err != nil {
		logger.Log.Error("ReconnectSession err :", zap.String("err", err.Error()))
		return err
	}
	logger.Log.Debug("ReconnectSession", zap.String("account token info", fmt.Sprintf("%v", tokenInfo)))

	a.redisRepo.ExtendTTL(context.Background(), tokenInfo.UserID, a.sessionTTL)

	return nil
}

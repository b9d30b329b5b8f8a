package unit

import (
	"testing"
	"time"

	"workspace_chat_service/internal/account/domain"
	"workspace_chat_service/pkg/encrypt"

	"github.com/stretchr/testify/assert"
)

func TestAccountPasswordMatch(t *testing.T) {
	hashed, err := encrypt.HashPassword("Passw0rd123")
	assert.NoError(t, err)

	account := domain.Account{
		ID:       1,
		Email:    "user@example.com",
		Password: hashed,
	}

	assert.True(t, account.IsPasswordMatch("Passw0rd123") == nil, "should match correct password")
	assert.False(t, account.IsPasswordMatch("wrongpass") == nil, "should not match incorrect password")
}

func TestAccountPasswordStrength(t *testing.T) {
	// 長度不足
	_, err := encrypt.HashPassword("Ab1")
	assert.Error(t, err)

	// 缺少大寫
	_, err = encrypt.HashPassword("password123")
	assert.Error(t, err)

	// 缺少數字
	_, err = encrypt.HashPassword("Passwordabc")
	assert.Error(t, err)
}

func TestAccountSessionExpiration(t *testing.T) {
	session := domain.AccountSession{
		Token:        "abcd1234",
		UserID:       "u-1",
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		ExpiredAt:    time.Now().Add(-1 * time.Minute), // 已經過期
	}

	assert.True(t, session.IsExpired(), "session should be expired")

	session.ExpiredAt = time.Now().Add(30 * time.Minute)
	assert.False(t, session.IsExpired(), "session should still be valid")
}

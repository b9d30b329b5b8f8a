package domain

import (
	"time"

	"workspace_chat_service/pkg/encrypt"
)

// AccountStatus 用來表示使用者狀態
type AccountStatus int

// 状态: 0=offline, 1=online, 2=ban ,3=delete
const (
	// AccountStatusOffLine 使用者離線
	AccountStatusOffLine AccountStatus = iota
	// AccountStatusOnLine 使用者在線
	AccountStatusOnLine
	// AccountStatusBan 使用者被封鎖
	AccountStatusBan
	// AccountStatusDelete 使用者已刪除
	AccountStatusDelete
)

// Account workspace 使用者
type Account struct {
	ID       int64
	UserID   string
	UserName string
	Email    string
	Password string
	Status   AccountStatus
}

// AccountSession 使用者的登入 Session
type AccountSession struct {
	Token        string    `json:"Token"`
	UserID       string    `json:"UserID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch 密碼驗證
func (a *Account) IsPasswordMatch(inputPwd string) error {
	return encrypt.CheckPassword(a.Password, inputPwd)
}

// IsExpired 檢查 Session 是否已過期
func (s *AccountSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// AccountQuery join conditions are used to query accounts
type AccountQuery struct {
	ID     *int64  `db:"id"`
	UserID *string `db:"user_id"`
	Email  *string `db:"email"`
}

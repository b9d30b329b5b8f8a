package domain

import "time"

const (
	// DefaultPresenceWindow peer 超過此時間沒有 ping 就視為離開
	DefaultPresenceWindow = 15 * time.Second
	// DefaultSweepInterval presence 掃描週期
	DefaultSweepInterval = 3 * time.Second
	// DefaultRePingInterval channel active 期間重發 read-cursor ping 的週期
	DefaultRePingInterval = 5 * time.Second
)

// PresencePing ephemeral broadcast,不落地、不回 ack
type PresencePing struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	ChannelID string `json:"channel_id"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Peer 是 presence tracker 眼中的一個「也在看」的使用者
type Peer struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	LastPing int64  `json:"last_ping"` // unix milliseconds
}

package domain

// EventKind event bus 事件種類
type EventKind string

const (
	// KindTyping typing indicator event
	KindTyping EventKind = "typing"
	// KindReadCursor read-cursor ping event
	KindReadCursor EventKind = "read-cursor"
)

// BusEvent 是 event bus 上的 ephemeral 訊號,無順序保證
// consumer 必須視為 idempotent 的 apply-if-newer 更新
type BusEvent struct {
	Kind      EventKind `json:"kind"`
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Timestamp int64     `json:"timestamp"` // unix milliseconds
	On        bool      `json:"on,omitempty"` // typing only
}

// Ping 轉成 presence tracker 的輸入
func (e BusEvent) Ping() PresencePing {
	return PresencePing{
		UserID:    e.UserID,
		UserName:  e.UserName,
		ChannelID: e.ChannelID,
		Timestamp: e.Timestamp,
	}
}

// ChannelEventKind channel notify topic 上的 payload 種類
type ChannelEventKind string

const (
	// ChannelEventMessage 新訊息到達
	ChannelEventMessage ChannelEventKind = "message"
	// ChannelEventHuddle huddle 狀態變更
	ChannelEventHuddle ChannelEventKind = "huddle"
)

// ChannelEvent channel notify topic 的 envelope
type ChannelEvent struct {
	Kind    ChannelEventKind `json:"kind"`
	Message *Message         `json:"message,omitempty"`
	Huddle  *Huddle          `json:"huddle,omitempty"`
}

// BusTopic channel 範圍的 bus topic
func BusTopic(channelID string) string {
	return "bus:channel:" + channelID
}

// NotifyTopic user 範圍的訊息通知 topic
func NotifyTopic(userID string) string {
	return "chat:user:" + userID
}

// ChannelNotifyTopic channel 範圍的訊息通知 topic
func ChannelNotifyTopic(channelID string) string {
	return "chat:channel:" + channelID
}

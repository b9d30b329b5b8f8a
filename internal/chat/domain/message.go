package domain

// Message 表示 channel append log 中的一筆訊息
type Message struct {
	ID         string   `bson:"id" json:"id"` // UUID, unique within the channel
	ChannelID  string   `bson:"channel_id" json:"channel_id"`
	AuthorID   string   `bson:"author_id" json:"author_id"`
	AuthorName string   `bson:"author_name" json:"author_name"`
	Content    string   `bson:"content" json:"content"`
	Timestamp  int64    `bson:"timestamp" json:"timestamp"`                       // unix milliseconds, non-decreasing per channel
	ParentID   string   `bson:"parent_id,omitempty" json:"parent_id,omitempty"`   // non-empty marks a threaded reply
	SeenBy     []string `bson:"seen_by,omitempty" json:"seen_by,omitempty"`       // user ids who read up to or past this message
}

// IsTopLevel report message show in main timeline (not a threaded reply)
func (m Message) IsTopLevel() bool {
	return m.ParentID == ""
}

// MessageBucket 表示某個 channel 某天的訊息存儲
type MessageBucket struct {
	ChannelID string    `bson:"channel_id" json:"channel_id"`
	Date      string    `bson:"date" json:"date"` // 格式："2025-01-23"
	Messages  []Message `bson:"messages" json:"messages"`
}

// ChannelUnreadInfo definition unread by channel
type ChannelUnreadInfo struct {
	ChannelID           string `bson:"_id" json:"channel_id"`
	UnreadCount         int    `bson:"unread_count" json:"unread_count"`
	LastUnreadTimeStamp int64  `bson:"last_unread_timestamp" json:"last_unread_timestamp"`
}

package domain

// ReadCursor 表示 user 在某 channel 已讀到的時間點
// LastReadTimestamp 只會向前，不會回退
type ReadCursor struct {
	UserID            string `bson:"user_id" json:"user_id"`
	ChannelID         string `bson:"channel_id" json:"channel_id"`
	LastReadTimestamp int64  `bson:"last_read_timestamp" json:"last_read_timestamp"` // unix milliseconds
}

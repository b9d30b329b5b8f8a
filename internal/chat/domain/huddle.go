package domain

// Huddle ambient 語音 session 標記,由 channel 成員共同持有
// 任一成員可 start/stop,最後一個成員離開時結束
type Huddle struct {
	ChannelID string   `json:"channel_id"`
	Active    bool     `json:"active"`
	StartedAt int64    `json:"started_at"` // unix milliseconds
	StartedBy string   `json:"started_by"`
	Members   []string `json:"members"`
	Muted     bool     `json:"muted"`
}

package domain

import "time"

// DefaultGroupingWindow 同作者訊息可併入同一 section 的最大時間差
const DefaultGroupingWindow = 5 * time.Minute

// Section 是 timeline 的顯示分組，為 Message Store 之上的 read model，不落地
type Section struct {
	Head           Message   `json:"head"`
	Members        []Message `json:"members"` // ordered, includes Head
	DayBoundary    bool      `json:"day_boundary"`
	UnreadBoundary bool      `json:"unread_boundary"`
}

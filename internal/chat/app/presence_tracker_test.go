package app

import (
	"testing"
	"time"

	"workspace_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func ping(userID, channelID string, ts int64) domain.PresencePing {
	return domain.PresencePing{
		UserID:    userID,
		UserName:  userID,
		ChannelID: channelID,
		Timestamp: ts,
	}
}

// 測試 ping 加入 peer,local user 自己被排除
func TestPresenceTracker_ApplyPing(t *testing.T) {
	p := NewPresenceTracker("me", 0, 0)

	p.ApplyPing(ping("bob", "ch-1", 1000))
	p.ApplyPing(ping("me", "ch-1", 1000)) // 自己不算 peer

	active := p.ListActive("ch-1")
	assert.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].UserID)
	assert.Equal(t, int64(1000), active[0].LastPing)
}

// 測試亂序到達的 ping: 較舊的 timestamp 不覆蓋較新的
func TestPresenceTracker_ApplyIfNewer(t *testing.T) {
	p := NewPresenceTracker("me", 0, 0)

	p.ApplyPing(ping("bob", "ch-1", 3000))
	p.ApplyPing(ping("bob", "ch-1", 1000)) // 晚到的舊 ping
	p.ApplyPing(ping("bob", "ch-1", 3000)) // 重複投遞

	active := p.ListActive("ch-1")
	assert.Len(t, active, 1)
	assert.Equal(t, int64(3000), active[0].LastPing)
}

// 測試 most-recently-active first 排序
func TestPresenceTracker_ListActiveOrder(t *testing.T) {
	p := NewPresenceTracker("me", 0, 0)

	p.ApplyPing(ping("bob", "ch-1", 1000))
	p.ApplyPing(ping("carol", "ch-1", 3000))
	p.ApplyPing(ping("dave", "ch-1", 2000))

	active := p.ListActive("ch-1")
	assert.Equal(t, "carol", active[0].UserID)
	assert.Equal(t, "dave", active[1].UserID)
	assert.Equal(t, "bob", active[2].UserID)
}

// 測試 sweep 的邊界: 超過 window 逐出,剛好等於 window 留著
func TestPresenceTracker_SweepEviction(t *testing.T) {
	p := NewPresenceTracker("me", 15*time.Second, time.Second)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	nowMs := now.UnixMilli()

	p.ApplyPing(ping("stale", "ch-1", nowMs-15001))
	p.ApplyPing(ping("edge", "ch-1", nowMs-15000))
	p.ApplyPing(ping("fresh", "ch-1", nowMs-1000))

	p.Sweep()

	active := p.ListActive("ch-1")
	ids := make([]string, 0, len(active))
	for _, peer := range active {
		ids = append(ids, peer.UserID)
	}
	assert.ElementsMatch(t, []string{"edge", "fresh"}, ids)
}

// 測試 peer 消失後再 ping 會重新出現
func TestPresenceTracker_ReappearAfterEviction(t *testing.T) {
	p := NewPresenceTracker("me", 15*time.Second, time.Second)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	nowMs := now.UnixMilli()

	p.ApplyPing(ping("bob", "ch-1", nowMs-20000))
	p.Sweep()
	assert.Empty(t, p.ListActive("ch-1"))

	p.ApplyPing(ping("bob", "ch-1", nowMs))
	active := p.ListActive("ch-1")
	assert.Len(t, active, 1)
	assert.Equal(t, "bob", active[0].UserID)
}

// 測試 channel 之間的 presence 彼此獨立
func TestPresenceTracker_PerChannel(t *testing.T) {
	p := NewPresenceTracker("me", 0, 0)

	p.ApplyPing(ping("bob", "ch-1", 1000))
	p.ApplyPing(ping("carol", "ch-2", 1000))

	assert.Len(t, p.ListActive("ch-1"), 1)
	assert.Len(t, p.ListActive("ch-2"), 1)
	assert.Empty(t, p.ListActive("ch-3"))
}

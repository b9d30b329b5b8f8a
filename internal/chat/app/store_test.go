package app

import (
	"testing"

	"workspace_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func msgAt(id, channelID, authorID string, ts int64) domain.Message {
	return domain.Message{
		ID:         id,
		ChannelID:  channelID,
		AuthorID:   authorID,
		AuthorName: authorID,
		Content:    "content of " + id,
		Timestamp:  ts,
	}
}

// 測試亂序到達的訊息依 timestamp 重新定位
func TestMessageStore_AppendOutOfOrder(t *testing.T) {
	store := NewMessageStore()

	assert.NoError(t, store.Append(msgAt("m1", "ch-1", "alice", 1000)))
	assert.NoError(t, store.Append(msgAt("m3", "ch-1", "alice", 3000)))
	// 晚到但 timestamp 較早
	assert.NoError(t, store.Append(msgAt("m2", "ch-1", "alice", 2000)))

	top := store.TopLevel("ch-1")
	assert.Len(t, top, 3)
	assert.Equal(t, "m1", top[0].ID)
	assert.Equal(t, "m2", top[1].ID)
	assert.Equal(t, "m3", top[2].ID)
}

// 測試 strict 模式拒絕時間倒退的寫入
func TestMessageStore_AppendStrictRejectsRegression(t *testing.T) {
	store := NewMessageStore()

	assert.NoError(t, store.AppendStrict(msgAt("m1", "ch-1", "alice", 2000)))
	err := store.AppendStrict(msgAt("m2", "ch-1", "alice", 1000))
	assert.ErrorIs(t, err, domain.ErrOutOfOrder)

	// 相等 timestamp 不算倒退
	assert.NoError(t, store.AppendStrict(msgAt("m3", "ch-1", "alice", 2000)))
}

// 測試重複 id 被拒絕,第一筆內容保留
func TestMessageStore_AppendDuplicateID(t *testing.T) {
	store := NewMessageStore()

	first := msgAt("m1", "ch-1", "alice", 1000)
	assert.NoError(t, store.Append(first))

	dup := msgAt("m1", "ch-1", "bob", 2000)
	assert.ErrorIs(t, store.Append(dup), domain.ErrDuplicateID)

	got, err := store.Get("m1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.AuthorID)
	assert.Equal(t, int64(1000), got.Timestamp)
}

func TestMessageStore_GetNotFound(t *testing.T) {
	store := NewMessageStore()
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// 測試 reply 不出現在 top-level,thread 讀取依 timestamp 排序
func TestMessageStore_Replies(t *testing.T) {
	store := NewMessageStore()

	parent := msgAt("p1", "ch-1", "alice", 1000)
	assert.NoError(t, store.Append(parent))

	r2 := msgAt("r2", "ch-1", "bob", 3000)
	r2.ParentID = "p1"
	r1 := msgAt("r1", "ch-1", "carol", 2000)
	r1.ParentID = "p1"
	assert.NoError(t, store.Append(r2))
	assert.NoError(t, store.Append(r1))

	top := store.TopLevel("ch-1")
	assert.Len(t, top, 1)
	assert.Equal(t, "p1", top[0].ID)

	replies := store.ListReplies("p1")
	assert.Len(t, replies, 2)
	assert.Equal(t, "r1", replies[0].ID)
	assert.Equal(t, "r2", replies[1].ID)
}

// 測試 orphan reply: parent 不存在時照常保存,但不進 top-level
func TestMessageStore_OrphanReply(t *testing.T) {
	store := NewMessageStore()

	orphan := msgAt("r1", "ch-1", "bob", 2000)
	orphan.ParentID = "ghost"
	assert.NoError(t, store.Append(orphan))

	assert.Empty(t, store.TopLevel("ch-1"))

	replies := store.ListReplies("ghost")
	assert.Len(t, replies, 1)
	assert.Equal(t, "r1", replies[0].ID)

	// orphan 仍可直接取回
	got, err := store.Get("r1")
	assert.NoError(t, err)
	assert.Equal(t, "ghost", got.ParentID)
}

// 測試 ListTopLevel 可重複 range
func TestMessageStore_ListTopLevelRestartable(t *testing.T) {
	store := NewMessageStore()
	assert.NoError(t, store.Append(msgAt("m1", "ch-1", "alice", 1000)))
	assert.NoError(t, store.Append(msgAt("m2", "ch-1", "alice", 2000)))

	seq := store.ListTopLevel("ch-1")

	var first []string
	for m := range seq {
		first = append(first, m.ID)
	}
	var second []string
	for m := range seq {
		second = append(second, m.ID)
		break // partial consumption 不影響下次 range
	}
	var third []string
	for m := range seq {
		third = append(third, m.ID)
	}

	assert.Equal(t, []string{"m1", "m2"}, first)
	assert.Equal(t, []string{"m1"}, second)
	assert.Equal(t, []string{"m1", "m2"}, third)
}

// 測試 MarkSeen 冪等,channel 不符時回 not found
func TestMessageStore_MarkSeen(t *testing.T) {
	store := NewMessageStore()
	assert.NoError(t, store.Append(msgAt("m1", "ch-1", "alice", 1000)))

	assert.NoError(t, store.MarkSeen("ch-1", "m1", "bob"))
	assert.NoError(t, store.MarkSeen("ch-1", "m1", "bob")) // 重複 no-op

	got, _ := store.Get("m1")
	assert.Equal(t, []string{"bob"}, got.SeenBy)

	assert.ErrorIs(t, store.MarkSeen("ch-2", "m1", "bob"), domain.ErrNotFound)
	assert.ErrorIs(t, store.MarkSeen("ch-1", "missing", "bob"), domain.ErrNotFound)
}

func TestMessageStore_Latest(t *testing.T) {
	store := NewMessageStore()

	_, ok := store.Latest("ch-1")
	assert.False(t, ok)

	assert.NoError(t, store.Append(msgAt("m2", "ch-1", "alice", 2000)))
	assert.NoError(t, store.Append(msgAt("m1", "ch-1", "alice", 1000)))

	latest, ok := store.Latest("ch-1")
	assert.True(t, ok)
	assert.Equal(t, "m2", latest.ID)
}

// 測試缺 id/channel 的訊息被拒絕
func TestMessageStore_AppendValidation(t *testing.T) {
	store := NewMessageStore()

	assert.Error(t, store.Append(domain.Message{ChannelID: "ch-1", Timestamp: 1}))
	assert.Error(t, store.Append(domain.Message{ID: "m1", Timestamp: 1}))
	assert.Equal(t, 0, store.Len("ch-1"))
}

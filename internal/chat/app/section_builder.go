package app

import (
	"time"

	"workspace_chat_service/internal/chat/domain"
)

// BuildSections 將 timestamp 順序的 top-level 訊息切成顯示分組
// 斷點條件: 作者變更、與 section head 的時間差超過 window、跨日
// 跨日是硬斷點,作者/時間差相同也會另起 section
//
// 回傳 sections 與 unread boundary 的 section index (全部已讀為 -1):
// 第一個包含 timestamp > lastRead 訊息的 section 被標記
func BuildSections(msgs []domain.Message, lastRead int64, window time.Duration) ([]domain.Section, int) {
	if len(msgs) == 0 {
		return nil, -1
	}

	windowMs := window.Milliseconds()
	if windowMs <= 0 {
		windowMs = domain.DefaultGroupingWindow.Milliseconds()
	}

	var sections []domain.Section
	cur := domain.Section{Head: msgs[0], Members: []domain.Message{msgs[0]}}

	for _, m := range msgs[1:] {
		prev := cur.Members[len(cur.Members)-1]
		dayBreak := !sameCalendarDay(prev.Timestamp, m.Timestamp)

		if dayBreak || m.AuthorID != cur.Head.AuthorID || m.Timestamp-cur.Head.Timestamp > windowMs {
			sections = append(sections, cur)
			cur = domain.Section{Head: m, Members: []domain.Message{m}, DayBoundary: dayBreak}
			continue
		}
		cur.Members = append(cur.Members, m)
	}
	sections = append(sections, cur)

	unreadIdx := -1
	for i, sec := range sections {
		if sectionHasUnread(sec, lastRead) {
			sections[i].UnreadBoundary = true
			unreadIdx = i
			break
		}
	}

	return sections, unreadIdx
}

// sectionHasUnread section 內任一訊息晚於 lastRead 即算未讀 (wholly or partially)
func sectionHasUnread(sec domain.Section, lastRead int64) bool {
	for _, m := range sec.Members {
		if m.Timestamp > lastRead {
			return true
		}
	}
	return false
}

// sameCalendarDay 比較 UTC 日曆日期,不是經過時間
func sameCalendarDay(aMs, bMs int64) bool {
	a := time.UnixMilli(aMs).UTC()
	b := time.UnixMilli(bMs).UTC()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SeenByOthers 回傳 viewer 以外已讀此訊息的 user id,保持原始順序
// 純投影,不改寫 stored 欄位
func SeenByOthers(msg domain.Message, viewerID string) []string {
	out := make([]string, 0, len(msg.SeenBy))
	for _, id := range msg.SeenBy {
		if id != viewerID {
			out = append(out, id)
		}
	}
	return out
}

package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"workspace_chat_service/internal/chat/domain"
)

// PresenceTracker 維護每個 channel「也在看」的 peer 集合
// 輸入是 bus 上的 read-cursor ping;approximate by design,
// 沒有 ack、沒有 handshake,漏一輪 sweep 只是 peer 多顯示一拍
type PresenceTracker struct {
	mu          sync.Mutex
	localUserID string
	window      time.Duration
	sweepEvery  time.Duration
	channels    map[string]map[string]domain.Peer

	now func() time.Time // 測試時覆蓋
}

// NewPresenceTracker create PresenceTracker,排除 localUserID 自己
func NewPresenceTracker(localUserID string, window, sweepEvery time.Duration) *PresenceTracker {
	if window <= 0 {
		window = domain.DefaultPresenceWindow
	}
	if sweepEvery <= 0 {
		sweepEvery = domain.DefaultSweepInterval
	}
	return &PresenceTracker{
		localUserID: localUserID,
		window:      window,
		sweepEvery:  sweepEvery,
		channels:    make(map[string]map[string]domain.Peer),
		now:         time.Now,
	}
}

// ApplyPing apply-if-newer 更新 peer 狀態,亂序 ping 冪等
func (p *PresenceTracker) ApplyPing(ping domain.PresencePing) {
	if ping.UserID == p.localUserID {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	peers, ok := p.channels[ping.ChannelID]
	if !ok {
		peers = make(map[string]domain.Peer)
		p.channels[ping.ChannelID] = peers
	}

	cur, ok := peers[ping.UserID]
	if ok && ping.Timestamp <= cur.LastPing {
		return
	}
	peers[ping.UserID] = domain.Peer{
		UserID:   ping.UserID,
		UserName: ping.UserName,
		LastPing: ping.Timestamp,
	}
}

// ListActive 回傳 channel 目前的 peer,most-recently-active first
func (p *PresenceTracker) ListActive(channelID string) []domain.Peer {
	p.mu.Lock()
	defer p.mu.Unlock()

	peers := p.channels[channelID]
	out := make([]domain.Peer, 0, len(peers))
	for _, peer := range peers {
		out = append(out, peer)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastPing != out[j].LastPing {
			return out[i].LastPing > out[j].LastPing
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// Sweep 逐出超過 inactivity window 的 peer
// 條件是 now - lastPing > window,剛好等於 window 還留著
func (p *PresenceTracker) Sweep() {
	nowMs := p.now().UnixMilli()
	windowMs := p.window.Milliseconds()

	p.mu.Lock()
	defer p.mu.Unlock()

	for channelID, peers := range p.channels {
		for userID, peer := range peers {
			if nowMs-peer.LastPing > windowMs {
				delete(peers, userID)
			}
		}
		if len(peers) == 0 {
			delete(p.channels, channelID)
		}
	}
}

// Start 啟動週期 sweep,ctx 結束時停止
func (p *PresenceTracker) Start(ctx context.Context) {
	ticker := time.NewTicker(p.sweepEvery)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

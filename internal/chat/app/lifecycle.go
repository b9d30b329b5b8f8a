package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// Emitter 把 server push 送回這個 client
type Emitter func(resp domain.WSResponse)

// Session 是單一 client 的 channel lifecycle coordinator
// mount → activate channel → 收新訊息時推進 cursor、發 ping、掃 mention
// 每個 handler 獨立失敗:mention 或 ping 掛掉不影響 scroll/cursor,反之亦然
type Session struct {
	userID   string
	userName string

	msgUC    *MessageUseCase
	cursor   *CursorTracker
	presence *PresenceTracker
	channels repository.ChannelRepository
	bus      repository.EventBus
	pubsub   repository.PubSub
	notifier repository.Notifier
	emit     Emitter

	rePingEvery time.Duration

	mu              sync.Mutex
	activeChannel   string
	lastSyncedMsgID string // 防止同一筆訊息重複觸發 scroll/read-advance
	cancelActive    context.CancelFunc
}

// SessionDeps Session 的依賴集合
type SessionDeps struct {
	MsgUC       *MessageUseCase
	Cursor      *CursorTracker
	Presence    *PresenceTracker
	Channels    repository.ChannelRepository
	Bus         repository.EventBus
	PubSub      repository.PubSub
	Notifier    repository.Notifier
	Emit        Emitter
	RePingEvery time.Duration
}

// NewSession create Session,presence sweep 跟著 ctx 的生命週期
func NewSession(ctx context.Context, userID, userName string, deps SessionDeps) *Session {
	if deps.RePingEvery <= 0 {
		deps.RePingEvery = domain.DefaultRePingInterval
	}
	s := &Session{
		userID:      userID,
		userName:    userName,
		msgUC:       deps.MsgUC,
		cursor:      deps.Cursor,
		presence:    deps.Presence,
		channels:    deps.Channels,
		bus:         deps.Bus,
		pubsub:      deps.PubSub,
		notifier:    deps.Notifier,
		emit:        deps.Emit,
		rePingEvery: deps.RePingEvery,
	}
	if s.emit == nil {
		s.emit = func(domain.WSResponse) {}
	}
	if s.presence != nil {
		s.presence.Start(ctx)
	}
	return s
}

// ListChannels lifecycle step 1: 載入 channel list
func (s *Session) ListChannels(ctx context.Context) ([]domain.Channel, error) {
	return s.channels.ListForMember(ctx, s.userID)
}

// ActivateChannel 切換 active channel
// 先收掉前一個 channel 的訂閱與 ticker,再重置 lastSyncedMsgID,
// 避免上一個 channel 的殘留狀態誤觸發 read-advance/scroll
func (s *Session) ActivateChannel(ctx context.Context, channelID string) error {
	s.mu.Lock()
	if s.cancelActive != nil {
		s.cancelActive()
		s.cancelActive = nil
	}
	s.activeChannel = channelID
	s.lastSyncedMsgID = ""
	chCtx, cancel := context.WithCancel(ctx)
	s.cancelActive = cancel
	s.mu.Unlock()

	// 冷啟動時回填 snapshot
	if err := s.msgUC.LoadSnapshot(ctx, channelID); err != nil {
		logger.Log.Errorf("load snapshot failed:", err, zap.String("channel", channelID))
	}

	// 首次進入 channel 的 cursor 初始化: 最新訊息 timestamp,沒訊息就 now
	fallback := int64(0)
	if latest, ok := s.msgUC.Latest(channelID); ok {
		fallback = latest.Timestamp
	}
	s.cursor.EnsureLoaded(ctx, channelID, fallback)

	// peer 的 read-cursor ping 餵 presence,typing 直接轉給 client
	if s.bus != nil {
		_, err := s.bus.Subscribe(chCtx, domain.BusTopic(channelID), func(evt domain.BusEvent) {
			s.onBusEvent(channelID, evt)
		})
		if err != nil {
			// presence/typing 降級,訊息流不受影響
			logger.Log.Errorf("bus subscribe failed:", err, zap.String("channel", channelID))
		}
	}

	// 新訊息與 huddle 狀態通知
	if s.pubsub != nil {
		_, err := s.pubsub.Subscribe(chCtx, domain.ChannelNotifyTopic(channelID), func(payload []byte) {
			s.onChannelEvent(chCtx, channelID, payload)
		})
		if err != nil {
			logger.Log.Errorf("notify subscribe failed:", err, zap.String("channel", channelID))
		}
	}

	// 週期 re-ping,讓晚加入的 peer 也看得到 presence
	go s.rePingLoop(chCtx, channelID)

	// 進場先發一次 ping
	s.publishPing(ctx, channelID)

	return nil
}

// Deactivate 收掉 active channel 的訂閱與 ticker
func (s *Session) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelActive != nil {
		s.cancelActive()
		s.cancelActive = nil
	}
	s.activeChannel = ""
	s.lastSyncedMsgID = ""
}

// ActiveChannel 目前 active 的 channel id
func (s *Session) ActiveChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChannel
}

func (s *Session) onBusEvent(channelID string, evt domain.BusEvent) {
	if evt.ChannelID != channelID || evt.UserID == s.userID {
		return
	}
	switch evt.Kind {
	case domain.KindReadCursor:
		if s.presence != nil {
			s.presence.ApplyPing(evt.Ping())
		}
	case domain.KindTyping:
		s.emit(domain.WSResponse{
			Action:  string(domain.Typing),
			Success: true,
			Payload: map[string]interface{}{
				"channel_id": evt.ChannelID,
				"user_id":    evt.UserID,
				"user_name":  evt.UserName,
				"on":         evt.On,
			},
		})
	}
}

func (s *Session) onChannelEvent(ctx context.Context, channelID string, payload []byte) {
	var evt domain.ChannelEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		logger.Log.Errorf("channel event unmarshal failed:", err)
		return
	}

	switch evt.Kind {
	case domain.ChannelEventMessage:
		if evt.Message != nil {
			s.OnNewMessage(ctx, *evt.Message)
		}
	case domain.ChannelEventHuddle:
		if evt.Huddle != nil {
			s.emit(domain.WSResponse{
				Action:  string(domain.HuddleState),
				Success: true,
				Payload: map[string]interface{}{"huddle": evt.Huddle},
			})
		}
	}
}

// OnNewMessage active channel 有新訊息時的反應
// scroll、cursor+ping、mention 三段各自獨立,任何一段失敗不擋其他段
func (s *Session) OnNewMessage(ctx context.Context, msg domain.Message) {
	s.mu.Lock()
	if msg.ChannelID != s.activeChannel || msg.ID == s.lastSyncedMsgID {
		s.mu.Unlock()
		return
	}
	s.lastSyncedMsgID = msg.ID
	channelID := s.activeChannel
	s.mu.Unlock()

	s.safely("scroll", func() {
		s.emit(domain.WSResponse{
			Action:  string(domain.ScrollToLatest),
			Success: true,
			Payload: map[string]interface{}{
				"channel_id": channelID,
				"message_id": msg.ID,
			},
		})
	})

	s.safely("read-advance", func() {
		// view 在 active channel 且捲到底,視為讀完目前可見內容
		if s.cursor.AdvanceTo(ctx, channelID, msg.Timestamp) {
			s.publishPing(ctx, channelID)
		}
	})

	s.safely("mention", func() {
		if msg.AuthorID == s.userID {
			return
		}
		if s.notifier != nil && MentionsUser(msg.Content, s.userID, s.userName) {
			s.notifier.Notify(msg.AuthorName, msg.Content)
		}
	})
}

// Typing 廣播本地 user 的 typing 狀態
func (s *Session) Typing(ctx context.Context, channelID string, on bool) {
	if s.bus == nil {
		return
	}
	evt := domain.BusEvent{
		Kind:      domain.KindTyping,
		ChannelID: channelID,
		UserID:    s.userID,
		UserName:  s.userName,
		Timestamp: time.Now().UnixMilli(),
		On:        on,
	}
	if err := s.bus.Publish(ctx, domain.BusTopic(channelID), evt); err != nil {
		logger.Log.Info(fmt.Sprintf("typing publish degraded: %v", err))
	}
}

// publishPing 發送 read-cursor ping,失敗靜默降級
func (s *Session) publishPing(ctx context.Context, channelID string) {
	if s.bus == nil {
		return
	}
	evt := domain.BusEvent{
		Kind:      domain.KindReadCursor,
		ChannelID: channelID,
		UserID:    s.userID,
		UserName:  s.userName,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.bus.Publish(ctx, domain.BusTopic(channelID), evt); err != nil {
		logger.Log.Info(fmt.Sprintf("read-cursor ping degraded: %v", err))
	}
}

func (s *Session) rePingLoop(ctx context.Context, channelID string) {
	ticker := time.NewTicker(s.rePingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.publishPing(ctx, channelID)
		case <-ctx.Done():
			return
		}
	}
}

// safely 單段 handler 的故障隔離
func (s *Session) safely(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("lifecycle step panicked",
				zap.String("step", step), zap.Any("panic", r))
		}
	}()
	fn()
}

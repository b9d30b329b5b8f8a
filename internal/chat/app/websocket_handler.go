package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/pkg/logger"
	"workspace_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler 可包含所有需要的 UseCase
type ChatWebsocketHandler struct {
	msgUC      *MessageUseCase
	huddleUC   *HuddleUseCase
	channels   repository.ChannelRepository
	cursorRepo repository.CursorRepository
	bus        repository.EventBus
	pubsub     repository.PubSub
	notifier   repository.Notifier

	presenceWindow time.Duration
	sweepEvery     time.Duration
	rePingEvery    time.Duration
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	msgUC *MessageUseCase,
	huddleUC *HuddleUseCase,
	channels repository.ChannelRepository,
	cursorRepo repository.CursorRepository,
	bus repository.EventBus,
	pubsub repository.PubSub,
	notifier repository.Notifier,
	presenceWindow, sweepEvery, rePingEvery time.Duration,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		msgUC:          msgUC,
		huddleUC:       huddleUC,
		channels:       channels,
		cursorRepo:     cursorRepo,
		bus:            bus,
		pubsub:         pubsub,
		notifier:       notifier,
		presenceWindow: presenceWindow,
		sweepEvery:     sweepEvery,
		rePingEvery:    rePingEvery,
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	userID, _ := conn.Locals(middlewares.TokenUserID).(string)
	userName, _ := conn.Locals(middlewares.TokenUserName).(string)
	logger.Log.Info("websocket handle user",
		zap.String("userID", userID), zap.String("userName", userName))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	var writeMu sync.Mutex
	send := func(resp domain.WSResponse) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(resp); err != nil {
			logger.Log.Errorf("websocket write error:", err)
		}
	}

	session := NewSession(ctxClose, userID, userName, SessionDeps{
		MsgUC:       h.msgUC,
		Cursor:      NewCursorTracker(userID, h.cursorRepo),
		Presence:    NewPresenceTracker(userID, h.presenceWindow, h.sweepEvery),
		Channels:    h.channels,
		Bus:         h.bus,
		PubSub:      h.pubsub,
		Notifier:    h.notifier,
		Emit:        send,
		RePingEvery: h.rePingEvery,
	})

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", userID))
		session.Deactivate()
		conn.Close()
		cancel()
	}()

	// client 發出 close,fiber 在 read msg 回傳 err,這裡另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	// server 發出 ping 之後 client 連線正常會回 pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("Received PONG", zap.String("data", appData))
		return nil
	})

	// client 發出 ping
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteMessage(websocket.PingMessage, []byte("ping message")); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		// 1. 讀取前端訊息
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctxClose, session, send, userID, userName, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(
	ctx context.Context,
	session *Session,
	send Emitter,
	userID, userName string,
	message []byte,
) {
	var req domain.WSRequest
	if err := json.Unmarshal(message, &req); err != nil {
		send(domain.WSResponse{Action: req.Action, Success: false, Error: "invalid request"})
		return
	}

	fail := func(err error) {
		send(domain.WSResponse{Action: req.Action, Success: false, Error: err.Error()})
	}
	ok := func(payload map[string]interface{}) {
		send(domain.WSResponse{Action: req.Action, Success: true, Payload: payload})
	}

	switch domain.Action(req.Action) {
	case domain.ListChannels:
		channels, err := session.ListChannels(ctx)
		if err != nil {
			fail(err)
			return
		}
		ok(map[string]interface{}{"channels": channels})

	case domain.ActivateChannel:
		if err := session.ActivateChannel(ctx, req.ChannelID); err != nil {
			fail(err)
			return
		}
		ok(map[string]interface{}{"channel_id": req.ChannelID})

	case domain.SendMessage:
		msgID, err := h.msgUC.Post(ctx, req.ChannelID, userID, userName, req.Content, req.ParentID)
		if err != nil {
			fail(err)
			return
		}
		ok(map[string]interface{}{"message_id": msgID})

	case domain.MarkSeen:
		if err := h.msgUC.MarkSeen(ctx, req.ChannelID, req.MessageID, userID); err != nil {
			fail(err)
			return
		}
		ok(map[string]interface{}{"message_id": req.MessageID})

	case domain.GetTimeline:
		lastRead := session.cursor.Current(req.ChannelID)
		sections, unreadIdx := h.msgUC.Timeline(req.ChannelID, lastRead)
		seen := make(map[string][]string)
		for _, sec := range sections {
			for _, m := range sec.Members {
				seen[m.ID] = SeenByOthers(m, userID)
			}
		}
		ok(map[string]interface{}{
			"sections":     sections,
			"unread_index": unreadIdx,
			"seen_by":      seen,
		})

	case domain.GetReplies:
		ok(map[string]interface{}{"replies": h.msgUC.Replies(req.ParentID)})

	case domain.GetPresence:
		ok(map[string]interface{}{"peers": session.presence.ListActive(req.ChannelID)})

	case domain.GetUnread:
		infos, err := h.msgUC.Unread(ctx, userID)
		if err != nil {
			fail(err)
			return
		}
		ok(map[string]interface{}{"unread": infos})

	case domain.Typing:
		session.Typing(ctx, req.ChannelID, req.On)
		ok(map[string]interface{}{"channel_id": req.ChannelID})

	case domain.HuddleStart:
		h.huddleAction(ctx, ok, fail, func() (domain.Huddle, error) {
			return h.huddleUC.Start(ctx, req.ChannelID, userID)
		})
	case domain.HuddleJoin:
		h.huddleAction(ctx, ok, fail, func() (domain.Huddle, error) {
			return h.huddleUC.Join(ctx, req.ChannelID, userID)
		})
	case domain.HuddleLeave:
		h.huddleAction(ctx, ok, fail, func() (domain.Huddle, error) {
			return h.huddleUC.Leave(ctx, req.ChannelID, userID)
		})
	case domain.HuddleMute:
		h.huddleAction(ctx, ok, fail, func() (domain.Huddle, error) {
			return h.huddleUC.SetMuted(ctx, req.ChannelID, userID, req.Muted)
		})

	default:
		send(domain.WSResponse{Action: req.Action, Success: false, Error: "unknown action"})
	}
}

func (h *ChatWebsocketHandler) huddleAction(
	_ context.Context,
	ok func(map[string]interface{}),
	fail func(error),
	fn func() (domain.Huddle, error),
) {
	huddle, err := fn()
	if err != nil {
		fail(err)
		return
	}
	ok(map[string]interface{}{"huddle": huddle})
}

package app

import (
	"iter"
	"sort"
	"sync"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/pkg"
	errprocess "workspace_chat_service/pkg/err"
)

// MessageStore 持有每個 channel 的 canonical 訊息序列
// append 經由內部鎖序列化,顯示正確性依賴排序結果而非插入順序
type MessageStore struct {
	mu       sync.RWMutex
	channels map[string]*channelLog
	byID     map[string]*domain.Message   // message id 在 channel 內唯一,這裡以 channel id 搭配檢查
	byParent map[string][]*domain.Message // replies, timestamp order
}

type channelLog struct {
	ordered []*domain.Message // non-decreasing timestamp
}

// NewMessageStore create MessageStore
func NewMessageStore() *MessageStore {
	return &MessageStore{
		channels: make(map[string]*channelLog),
		byID:     make(map[string]*domain.Message),
		byParent: make(map[string][]*domain.Message),
	}
}

// Append 寫入一筆訊息,接受亂序到達並依 timestamp 重新定位
func (s *MessageStore) Append(msg domain.Message) error {
	return s.append(msg, false)
}

// AppendStrict 寫入一筆訊息,timestamp 小於 channel 目前最大值時拒絕
func (s *MessageStore) AppendStrict(msg domain.Message) error {
	return s.append(msg, true)
}

func (s *MessageStore) append(msg domain.Message, strict bool) error {
	if msg.ID == "" || msg.ChannelID == "" {
		return errprocess.Set("message id and channel id are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[msg.ID]; ok {
		return domain.ErrDuplicateID
	}

	log, ok := s.channels[msg.ChannelID]
	if !ok {
		log = &channelLog{}
		s.channels[msg.ChannelID] = log
	}

	if strict && len(log.ordered) > 0 {
		if max := log.ordered[len(log.ordered)-1].Timestamp; msg.Timestamp < max {
			return domain.ErrOutOfOrder
		}
	}

	stored := msg
	s.byID[msg.ID] = &stored

	// 等 timestamp 的訊息維持到達順序 (stable insert)
	i := sort.Search(len(log.ordered), func(i int) bool {
		return log.ordered[i].Timestamp > stored.Timestamp
	})
	log.ordered = append(log.ordered, nil)
	copy(log.ordered[i+1:], log.ordered[i:])
	log.ordered[i] = &stored

	if stored.ParentID != "" {
		replies := s.byParent[stored.ParentID]
		j := sort.Search(len(replies), func(j int) bool {
			return replies[j].Timestamp > stored.Timestamp
		})
		replies = append(replies, nil)
		copy(replies[j+1:], replies[j:])
		replies[j] = &stored
		s.byParent[stored.ParentID] = replies
	}

	return nil
}

// Get 以 id 取回訊息
func (s *MessageStore) Get(id string) (domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.byID[id]
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	return *msg, nil
}

// ListTopLevel 以 timestamp 順序回傳非 thread 訊息,lazy 且可重複 range
// 有 ParentID 的訊息 (包含 orphan) 一律排除
func (s *MessageStore) ListTopLevel(channelID string) iter.Seq[domain.Message] {
	return func(yield func(domain.Message) bool) {
		for _, m := range s.TopLevel(channelID) {
			if !yield(m) {
				return
			}
		}
	}
}

// TopLevel snapshot of non-threaded messages in timestamp order
func (s *MessageStore) TopLevel(channelID string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.channels[channelID]
	if !ok {
		return nil
	}
	out := make([]domain.Message, 0, len(log.ordered))
	for _, m := range log.ordered {
		if m.IsTopLevel() {
			out = append(out, *m)
		}
	}
	return out
}

// ListReplies 回傳 parent 底下的 reply,timestamp 順序
// parent 不存在時照樣回傳指向它的 reply (orphan 容忍)
func (s *MessageStore) ListReplies(parentID string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	replies := s.byParent[parentID]
	out := make([]domain.Message, 0, len(replies))
	for _, m := range replies {
		out = append(out, *m)
	}
	return out
}

// MarkSeen 將 userID 加入訊息的 seen_by,重複標記為 no-op
func (s *MessageStore) MarkSeen(channelID, messageID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.byID[messageID]
	if !ok || msg.ChannelID != channelID {
		return domain.ErrNotFound
	}
	if !pkg.Contains(msg.SeenBy, userID) {
		msg.SeenBy = append(msg.SeenBy, userID)
	}
	return nil
}

// Latest 回傳 channel 目前最新的訊息
func (s *MessageStore) Latest(channelID string) (domain.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.channels[channelID]
	if !ok || len(log.ordered) == 0 {
		return domain.Message{}, false
	}
	return *log.ordered[len(log.ordered)-1], true
}

// Len channel 內訊息總數 (含 reply)
func (s *MessageStore) Len(channelID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.channels[channelID]
	if !ok {
		return 0
	}
	return len(log.ordered)
}

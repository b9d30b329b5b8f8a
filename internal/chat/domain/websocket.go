package domain

// Action websocket request action
type Action string

const (
	// ListChannels websocket action list_channels
	ListChannels Action = "list_channels"
	// ActivateChannel websocket action activate_channel
	ActivateChannel Action = "activate_channel"

	// SendMessage websocket action send_message
	SendMessage Action = "send_message"
	// MarkSeen websocket action mark_seen
	MarkSeen Action = "mark_seen"

	// GetTimeline websocket action get_timeline
	GetTimeline Action = "get_timeline"
	// GetReplies websocket action get_replies
	GetReplies Action = "get_replies"
	// GetPresence websocket action get_presence
	GetPresence Action = "get_presence"
	// GetUnread websocket action get_unread
	GetUnread Action = "get_unread"

	// Typing websocket action typing
	Typing Action = "typing"

	// HuddleStart websocket action huddle_start
	HuddleStart Action = "huddle_start"
	// HuddleJoin websocket action huddle_join
	HuddleJoin Action = "huddle_join"
	// HuddleLeave websocket action huddle_leave
	HuddleLeave Action = "huddle_leave"
	// HuddleMute websocket action huddle_mute
	HuddleMute Action = "huddle_mute"

	// NotifyMessage websocket action notify_message (server push)
	NotifyMessage Action = "notify_message"
	// ScrollToLatest websocket action scroll_to_latest (server push)
	ScrollToLatest Action = "scroll_to_latest"
	// HuddleState websocket action huddle_state (server push)
	HuddleState Action = "huddle_state"
)

// WSRequest websocket Request
type WSRequest struct {
	Action    string `json:"action"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	ParentID  string `json:"parent_id"`
	MessageID string `json:"message_id"`
	On        bool   `json:"on"`
	Muted     bool   `json:"muted"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

package repository

import (
	"encoding/json"

	"workspace_chat_service/pkg/database"
	"workspace_chat_service/pkg/logger"

	"github.com/streadway/amqp"
)

// Notifier mention 命中時的通知側通道,fire-and-forget
type Notifier interface {
	Notify(authorName, messageText string)
}

// MentionNotification 通知 payload
type MentionNotification struct {
	AuthorName  string `json:"author_name"`
	MessageText string `json:"message_text"`
}

type rabbitNotifier struct {
	rabbit     database.RabbitRepo
	exchange   string
	routingKey string
}

// NewRabbitNotifier create a Notifier backed by RabbitMQ
func NewRabbitNotifier(rabbit database.RabbitRepo, exchange, routingKey string) Notifier {
	return &rabbitNotifier{
		rabbit:     rabbit,
		exchange:   exchange,
		routingKey: routingKey,
	}
}

// Notify 發布 mention 通知,失敗只記 log,不回傳
func (n *rabbitNotifier) Notify(authorName, messageText string) {
	body, err := json.Marshal(MentionNotification{
		AuthorName:  authorName,
		MessageText: messageText,
	})
	if err != nil {
		logger.Log.Errorf("mention notification marshal failed:", err)
		return
	}

	err = n.rabbit.Publish(n.exchange, n.routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logger.Log.Errorf("mention notification publish failed:", err)
	}
}

package app

import (
	"context"
	"encoding/json"
	"errors"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// IngestConsumer 消費後端 append log,把訊息餵進 MessageUseCase
// decode 或 append 失敗記 log 後繼續,log 消費不能因單筆壞資料停擺
type IngestConsumer struct {
	reader *kafka.Reader
	msgUC  *MessageUseCase
}

// NewIngestConsumer create IngestConsumer
func NewIngestConsumer(reader *kafka.Reader, msgUC *MessageUseCase) *IngestConsumer {
	return &IngestConsumer{reader: reader, msgUC: msgUC}
}

// Run 阻塞消費直到 ctx 結束
func (c *IngestConsumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var msg domain.Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			logger.Log.Errorf("ingest decode failed:", err)
			continue
		}

		if err := c.msgUC.Ingest(ctx, msg); err != nil {
			logger.Log.Errorf("ingest append failed:", err)
		}
	}
}

// Close 關閉 kafka reader
func (c *IngestConsumer) Close() error {
	return c.reader.Close()
}

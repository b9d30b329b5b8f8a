package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"workspace_chat_service/internal/chat/app"
	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/internal/chat/router"
	"workspace_chat_service/pkg/config"
	"workspace_chat_service/pkg/database"
	"workspace_chat_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	// 2. 建立 Mongo 連線 (存訊息與 channel directory)
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 3. 建立 Redis 連線 (Pub/Sub + read cursor)
	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 4. 建立 Kafka append-log consumer
	kafkaReader, err := database.NewKafkaReaderWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		GroupID:       cfg.Kafka.GroupID,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect kafka err : %v", err))
	}

	// 5. 建立 RabbitMQ 連線 (mention 通知 side channel)
	rabbitConn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    cfg.Rabbit.URL,
		RetryCount:    cfg.Rabbit.RetryCount,
		RetryInterval: time.Duration(cfg.Rabbit.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect rabbitmq err : %v", err))
	}
	defer rabbitConn.Close()

	rabbitCh, err := database.GetRabbitMQChannelWithRetry(rabbitConn, cfg.Rabbit.RetryCount, time.Second)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("open rabbitmq channel err : %v", err))
	}
	defer rabbitCh.Close()

	// 6. 初始化 Repository
	channelRepo := repository.NewMongoChannelRepository(mongo.Database)
	archiveRepo := repository.NewMongoArchiveRepository(mongo.Database)
	cursorRepo := repository.NewRedisCursorRepository(redisClient)
	pubsub := repository.NewRedisPubSub(redisClient)
	bus := repository.NewRedisBus(redisClient)
	notifier := repository.NewRabbitNotifier(
		database.NewRabbitRepository(rabbitCh),
		cfg.Rabbit.Exchange,
		cfg.Rabbit.RoutingKey,
	)

	// 7. 初始化 UseCases
	msgUC := app.NewMessageUseCase(
		app.NewMessageStore(),
		channelRepo,
		archiveRepo,
		pubsub,
		time.Duration(cfg.Timeline.GroupingWindowMs)*time.Millisecond,
	)
	huddleUC := app.NewHuddleUseCase(pubsub)

	// 8. 啟動 append-log 消費
	ingest := app.NewIngestConsumer(kafkaReader, msgUC)
	defer ingest.Close()
	go func() {
		if err := ingest.Run(ctx); err != nil {
			logger.Log.Error("ingest consumer stopped", zap.Error(err))
		}
	}()

	// 9. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由
	router.RegisterRoutes(r, app.NewChatWebsocketHandler(
		msgUC,
		huddleUC,
		channelRepo,
		cursorRepo,
		bus,
		pubsub,
		notifier,
		time.Duration(cfg.Timeline.PresenceWindowMs)*time.Millisecond,
		time.Duration(cfg.Timeline.SweepIntervalMs)*time.Millisecond,
		time.Duration(cfg.Timeline.RePingIntervalMs)*time.Millisecond,
	))

	// Listen
	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	_ "workspace_chat_service/cmd/account_service/docs" // 引入生成的 Swagger 文档
	"workspace_chat_service/internal/account/app"
	"workspace_chat_service/internal/account/domain"
	"workspace_chat_service/internal/account/repository"
	"workspace_chat_service/internal/account/router"
	"workspace_chat_service/pkg/config"
	"workspace_chat_service/pkg/database"
	"workspace_chat_service/pkg/logger"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.AccountService, config.EnvConfig.AccountServiceLogPath)

	cfg := config.LoadConfig[config.Account](config.EnvConfig.AccountService, config.EnvConfig.AccountServiceYAMLPath)

	sqlParams := fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.PostgreSQL.User, cfg.PostgreSQL.Password, cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    sqlParams,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval),
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s]", sqlParams)),
			zap.Error(err),
		)
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)

	masterName, sentinel := config.GetRedisSetting()
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	redisRepo := database.NewRedisRepository[domain.AccountSession](redisClient)

	usecase := app.NewAccountUseCase(accountRepo, time.Duration(cfg.SessionTTL)*time.Second, redisRepo)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.AccountServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由
	router.RegisterRoutes(r, app.NewAccountHandler(usecase))

	port := ":" + cfg.Port
	log.Printf("Account Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}

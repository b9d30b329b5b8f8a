package router

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	"workspace_chat_service/internal/account/app"
	"workspace_chat_service/pkg/logger"
	"workspace_chat_service/pkg/middlewares"
)

// RegisterRoutes 注册用户相关的路由
// @title Workspace Chat Account API
// @version 1.0
// @description API documentation for the workspace chat account service
// @host localhost:8070
// @BasePath /
func RegisterRoutes(r *fiber.App, accountHandler *app.AccountHandler) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", connectCheck)
	r.Post("/debug", debugLogFlag)

	accountRoutes := r.Group("/account")
	accountRoutes.Post("/register", accountHandler.Register)
	accountRoutes.Post("/login", accountHandler.Login)
	accountRoutes.Get("/session/check", accountHandler.CheckSession)
	accountRoutes.Post("/session/reconnect", accountHandler.ReconnectSession)

	accountRoutes.Use(middlewares.JWTMiddleware())
	accountRoutes.Post("/logout", accountHandler.Logout)
}

// connectCheck check api connect start
// @Summary Check account service status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "account service start!"
// @Router / [get]
func connectCheck(c *fiber.Ctx) error {
	return c.SendString("account service start!")
}

// debugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging for a service
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func debugLogFlag(c *fiber.Ctx) error {
	// prase payload
	query, _ := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

package app

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"workspace_chat_service/pkg/logger"
	"workspace_chat_service/pkg/middlewares"
)

// AccountHandler 处理用户相关的 HTTP 请求
type AccountHandler struct {
	Usecase AccountUseCase
}

// NewAccountHandler 创建新的 AccountHandler
func NewAccountHandler(usecase AccountUseCase) *AccountHandler {
	return &AccountHandler{Usecase: usecase}
}

// Register 注册新用户
// @Summary 注册新用户
// @Description 处理用户注册请求
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} string "注册成功"
// @Failure 400 {object} string "请求错误"
// @Failure 500 {object} string "服务器错误"
// @Router /account/register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		UserName string `json:"user_name"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email), zap.String("user_name", req.UserName))

	if err := h.Usecase.Register(c.Context(), req.Email, req.UserName, req.Password); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "register success"})
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户通过邮箱和密码登录
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} string "登录成功"
// @Failure 400 {object} string "请求错误"
// @Failure 401 {object} string "登录失败"
// @Router /account/login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	logger.Log.Debug("Login", zap.String("Email", req.Email))

	t, err := h.Usecase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"token": t, "message": "login success"})
}

// Logout 用户登出
// @Summary 用户登出
// @Description 注销用户会话
// @Tags Accounts
// @Accept json
// @Produce json
// @Param auth query string true "JWT token"
// @Success 200 {object} string "注销成功"
// @Failure 500 {object} string "服务器错误"
// @Router /account/logout [post]
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	t := c.Query(middlewares.QueryToken)
	if t == "" {
		t = c.Cookies(middlewares.CookieToken)
	}

	if err := h.Usecase.Logout(c.Context(), t); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "logout success"})
}

// CheckSession 检查会话是否过期
// @Summary 检查会话
// @Description 检查 session 是否仍然有效
// @Tags Accounts
// @Produce json
// @Param auth query string true "JWT token"
// @Success 200 {object} string "会话状态"
// @Router /account/session/check [get]
func (h *AccountHandler) CheckSession(c *fiber.Ctx) error {
	t := c.Query(middlewares.QueryToken)

	expired, err := h.Usecase.CheckSessionTimeout(c.Context(), t)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "expired": expired})
	}

	return c.JSON(fiber.Map{"expired": expired})
}

// ReconnectSession 断线重连
// @Summary 断线重连
// @Description 重新连线并延长 session
// @Tags Accounts
// @Produce json
// @Param auth query string true "JWT token"
// @Success 200 {object} string "重连成功"
// @Router /account/session/reconnect [post]
func (h *AccountHandler) ReconnectSession(c *fiber.Ctx) error {
	t := c.Query(middlewares.QueryToken)

	if err := h.Usecase.ReconnectSession(c.Context(), t); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "reconnect success"})
}

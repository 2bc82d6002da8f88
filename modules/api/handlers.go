package api

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/example/zzchat/modules/chat"
	"github.com/example/zzchat/modules/storage"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 1000
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	// Health check
	m.app.Get("/health", m.healthHandler)

	// Client bootstrap
	m.app.Get("/config", m.configHandler)

	// History
	m.app.Get("/history", m.historyHandler)

	// Auth
	m.app.Post("/api/register", m.registerHandler)
	m.app.Post("/api/login", m.loginHandler)
	m.app.Post("/api/clear_history", m.clearHistoryHandler)

	// WebSocket endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(m.handleWebSocket))
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"rooms":             m.chat.Registry().Rooms(),
			"connected_clients": m.chat.Registry().ClientCount(),
		},
	})
}

// configHandler handles GET /config. It serves the deployment's server
// list from config.json and always includes an entry for the host the
// client is talking to right now.
func (m *APIModule) configHandler(c *fiber.Ctx) error {
	scheme := "ws"
	if c.Protocol() == "https" {
		scheme = "wss"
	}
	dynURL := fmt.Sprintf("%s://%s/ws", scheme, string(c.Request().Host()))

	data := map[string]any{}
	raw, err := os.ReadFile(m.cfg.ConfigPath)
	if err != nil || json.Unmarshal(raw, &data) != nil {
		data = map[string]any{
			"servers": []any{
				map[string]any{"name": "当前访问域", "ws_url": dynURL},
			},
		}
		return c.JSON(data)
	}

	servers, _ := data["servers"].([]any)
	found := false
	for _, s := range servers {
		if entry, ok := s.(map[string]any); ok && entry["ws_url"] == dynURL {
			found = true
			break
		}
	}
	if !found {
		data["servers"] = append([]any{
			map[string]any{"name": "当前访问域", "ws_url": dynURL},
		}, servers...)
	}

	return c.JSON(data)
}

// historyHandler handles GET /history.
func (m *APIModule) historyHandler(c *fiber.Ctx) error {
	room := c.Query("room", chat.DefaultRoom)

	limit := defaultHistoryLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = min(parsed, maxHistoryLimit)
		}
	}

	var beforeTS int64
	if b := c.Query("before_ts"); b != "" {
		if parsed, err := strconv.ParseInt(b, 10, 64); err == nil {
			beforeTS = parsed
		}
	}

	items, err := m.storage.History(c.UserContext(), room, limit, beforeTS)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "history_failed",
			Message: "Failed to query history",
		})
	}

	// The store returns ascending order; newest-first is the display
	// default.
	if strings.ToLower(c.Query("order", "desc")) == "desc" {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	return c.JSON(storage.HistoryResponse{Items: items})
}

// registerHandler handles POST /api/register.
func (m *APIModule) registerHandler(c *fiber.Ctx) error {
	var req AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(storage.OpResponse{Code: 1, Message: "参数错误"})
	}

	nick := strings.TrimSpace(req.Nick)
	password := strings.TrimSpace(req.Password)
	return c.JSON(m.storage.RegisterUser(c.UserContext(), nick, password))
}

// loginHandler handles POST /api/login. On success it sets a signed
// session cookie carrying the nick.
func (m *APIModule) loginHandler(c *fiber.Ctx) error {
	var req AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(storage.OpResponse{Code: 1, Message: "参数错误"})
	}

	nick := strings.TrimSpace(req.Nick)
	password := strings.TrimSpace(req.Password)
	resp := m.storage.VerifyUser(c.UserContext(), nick, password)
	if resp.Code == 0 {
		token, err := m.sessions.Issue(nick)
		if err != nil {
			return c.JSON(storage.OpResponse{Code: 1, Message: "会话创建失败"})
		}
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.sessions.TTL().Seconds()),
			HTTPOnly: true,
		})
	}
	return c.JSON(resp)
}

// clearHistoryHandler handles POST /api/clear_history.
func (m *APIModule) clearHistoryHandler(c *fiber.Ctx) error {
	var req ClearHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		req = ClearHistoryRequest{}
	}

	room := strings.TrimSpace(req.Room)
	if room == "" {
		room = chat.DefaultRoom
	}

	if err := m.storage.ClearHistory(c.UserContext(), room); err != nil {
		return c.JSON(storage.OpResponse{Code: 1, Message: err.Error()})
	}
	return c.JSON(storage.OpResponse{Code: 0, Message: "已清空"})
}

package handler

import (
	"context"
	"encoding/json"
	"os"

	"gradaid-be/internal/entity"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/service"
	internalWS "gradaid-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FeedHandler bridges the in-process activity feed topic to connected
// websocket clients via the hub.
type FeedHandler struct {
	hub        *internalWS.Hub
	subscriber message.Subscriber
	logger     logger.ILogger
}

func NewFeedHandler(hub *internalWS.Hub, subscriber message.Subscriber, log logger.ILogger) *FeedHandler {
	return &FeedHandler{
		hub:        hub,
		subscriber: subscriber,
		logger:     log,
	}
}

// Start consumes the activity feed topic and pushes each entry to the hub.
func (h *FeedHandler) Start(ctx context.Context) error {
	messages, err := h.subscriber.Subscribe(ctx, service.ActivityFeedTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var entry entity.ActivityEntry
			if err := json.Unmarshal(msg.Payload, &entry); err != nil {
				h.logger.Warn("FeedHandler", "Failed to decode activity entry", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}
			h.hub.SendActivity(&entry)
			msg.Ack()
		}
	}()
	return nil
}

// ServeWs upgrades the request after validating the caller's token. Browsers
// cannot set headers on websocket handshakes, so the token may arrive as a
// query parameter instead.
func (h *FeedHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("FeedHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("FeedHandler", "Starting feed session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("FeedHandler", "Feed session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *FeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/feed", h.ServeWs)
}

package handlers

import (
	"log"

	"wardaropa-backend/internal/models"
	"wardaropa-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// WelcomeHandler answers plain GET / and hands WebSocket upgrades on to the
// next handler on the route.
func WelcomeHandler(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.JSON(fiber.Map{"message": "Welcome to the Wardaropa API"})
}

// WebSocketHandler greets the client and echoes every message back wrapped
// in {"echo": ...}. It shares no state with the REST routes.
func WebSocketHandler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		connID := uuid.New().String()
		log.Printf("websocket %s connected from %s", connID, c.RemoteAddr())

		defer func() {
			c.Close()
			log.Printf("websocket %s disconnected", connID)
		}()

		if err := utils.SendJSON(c, models.WSWelcome{Message: "Connected to Wardaropa"}); err != nil {
			utils.LogError(err, "WebSocket welcome")
			return
		}

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("websocket %s error: %v", connID, err)
				}
				break
			}

			log.Printf("websocket %s received %d bytes", connID, len(msg))
			if err := utils.SendJSON(c, models.WSEcho{Echo: string(msg)}); err != nil {
				utils.LogError(err, "WebSocket echo")
				break
			}
		}
	})
}

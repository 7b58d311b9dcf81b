package utils

import (
	"log"

	"github.com/gofiber/websocket/v2"
)

// SendJSON encodes payload as one text frame. Only the goroutine that owns
// the connection's read loop may call it: the echo loop answers each frame
// itself and nothing else writes to the socket.
func SendJSON(c *websocket.Conn, payload interface{}) error {
	return c.WriteJSON(payload)
}

// LogError prints err tagged with where it happened. Nil errors are ignored.
func LogError(err error, where string) {
	if err == nil {
		return
	}
	log.Printf("Error [%s]: %v", where, err)
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

// SetupWebsocketRoute wires the seller dashboard socket. The token travels
// in the path because browsers cannot set headers on websocket upgrades.
func SetupWebsocketRoute(app *fiber.App) {
	app.Use("/api/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/api/ws/:token", websocket.New(func(conn *websocket.Conn) {
		sellerID, err := utils.ValidateToken(conn.Params("token"), initializers.AppConfig.JwtSecret)
		if err != nil {
			conn.Close()
			return
		}

		utils.RegisterWSClient(sellerID, conn)
		defer utils.UnregisterWSClient(sellerID, conn)

		// Read loop only keeps the connection alive; the dashboard never
		// sends anything meaningful upstream.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}

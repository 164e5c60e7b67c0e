package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

// DeserializeSeller resolves the seller from the Bearer token and stores it
// in locals. The seller identity is always taken from the verified token,
// never from a client-supplied header.
func DeserializeSeller(c *fiber.Ctx) error {
	var token string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		token = strings.TrimPrefix(authorization, "Bearer ")
	}

	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "You are not logged in",
		})
	}

	sellerID, err := utils.ValidateToken(token, initializers.AppConfig.JwtSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid or expired token",
		})
	}

	var seller models.Seller
	if err := initializers.DB.First(&seller, "id = ?", sellerID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "The seller belonging to this token no longer exists",
		})
	}

	c.Locals("seller", models.FilterSellerRecord(&seller))

	return c.Next()
}

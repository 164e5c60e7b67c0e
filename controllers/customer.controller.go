package controllers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
)

func GetCustomers(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	var customers []models.Customer
	err := initializers.DB.
		Where("seller_id = ?", seller.ID).
		Order("created_at DESC").
		Find(&customers).Error
	if err != nil {
		log.Println("Could not list customers:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not fetch customers",
		})
	}

	var orders []models.Order
	err = initializers.DB.
		Select("customer_id", "created_at").
		Where("seller_id = ? AND customer_id IS NOT NULL", seller.ID).
		Find(&orders).Error
	if err != nil {
		log.Println("Could not load order stats:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not fetch customers",
		})
	}

	counts := make(map[uuid.UUID]int64, len(customers))
	lastDates := make(map[uuid.UUID]time.Time, len(customers))
	for _, order := range orders {
		id := *order.CustomerID
		counts[id]++
		if order.CreatedAt.After(lastDates[id]) {
			lastDates[id] = order.CreatedAt
		}
	}

	withStats := make([]models.CustomerWithStats, 0, len(customers))
	for _, customer := range customers {
		row := models.CustomerWithStats{
			ID:             customer.ID,
			FullName:       customer.FullName,
			Phone:          customer.Phone,
			City:           customer.City,
			Address:        customer.Address,
			Username:       customer.Username,
			MarketingOptIn: customer.MarketingOptIn,
			CreatedAt:      customer.CreatedAt,
			LastUsedAt:     customer.LastUsedAt,
			TotalOrders:    counts[customer.ID],
		}
		if last, ok := lastDates[customer.ID]; ok {
			lastCopy := last
			row.LastOrderDate = &lastCopy
		}
		withStats = append(withStats, row)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   withStats,
	})
}

func GetCustomer(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)
	customerID := c.Params("id")

	var customer models.Customer
	if err := initializers.DB.First(&customer, "id = ? AND seller_id = ?", customerID, seller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Customer not found",
		})
	}

	var orders []models.Order
	err := initializers.DB.
		Where("customer_id = ?", customer.ID).
		Preload("CheckoutLink").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		log.Println("Could not load customer orders:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not fetch customer",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   customer,
		"orders": orders,
	})
}

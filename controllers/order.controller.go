package controllers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

// duplicateSubmitWindow is how long a repeated identical submission (same
// link, phone and quantity) is treated as a network retry rather than a
// second order.
const duplicateSubmitWindow = 10 * time.Second

func submissionKey(input *models.CreateOrderInput) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", input.CheckoutLinkID, input.Buyer.Phone, input.Quantity)))
	return fmt.Sprintf("order-submit:%x", sum)
}

func isDuplicateSubmission(input *models.CreateOrderInput) bool {
	if initializers.Redis == nil {
		return false
	}

	ok, err := initializers.Redis.SetNX(context.Background(), submissionKey(input), 1, duplicateSubmitWindow).Result()
	if err != nil {
		// Guard is best effort; a broken Redis never blocks an order.
		return false
	}
	return !ok
}

// releaseSubmission gives the claimed key back when the order did not make
// it into the database, so the buyer's retry is not answered 409 for a
// submission that never succeeded.
func releaseSubmission(input *models.CreateOrderInput) {
	if initializers.Redis == nil {
		return
	}
	initializers.Redis.Del(context.Background(), submissionKey(input))
}

func CreateOrder(c *fiber.Ctx) error {
	var input models.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation error",
			"errors":  utils.ValidationErrors(err),
		})
	}

	var link models.CheckoutLink
	if err := initializers.DB.First(&link, "id = ?", input.CheckoutLinkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Checkout link not found",
			})
		}
		log.Println("Could not look up checkout link:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create order",
		})
	}

	if !link.DeliveryOptions.Allows(input.DeliveryMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Delivery method is not offered for this product",
		})
	}

	if isDuplicateSubmission(&input) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "This order was already submitted, please wait a moment",
		})
	}

	// The total is computed once at creation and never recomputed, so later
	// price edits on the link do not touch existing orders.
	totalPrice := link.Price * int64(input.Quantity)

	snapshot := models.ContactSnapshot{
		FullName: input.Buyer.FullName,
		Phone:    input.Buyer.Phone,
		City:     input.Buyer.City,
		Address:  input.Buyer.Address,
		Username: input.Buyer.Username,
	}

	var customerID *uuid.UUID
	if input.SaveDetails {
		id, err := upsertCustomer(link.SellerID, &input.Buyer)
		if err != nil {
			log.Println("Could not upsert customer:", err)
			releaseSubmission(&input)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Could not create order",
			})
		}
		customerID = id
	}

	order := models.Order{
		SellerID:        link.SellerID,
		CheckoutLinkID:  link.ID,
		CustomerID:      customerID,
		Quantity:        input.Quantity,
		TotalPrice:      totalPrice,
		SelectedSize:    input.SelectedSize,
		DeliveryMethod:  input.DeliveryMethod,
		ContactSnapshot: snapshot,
		PaymentStatus:   models.PaymentStatusNew,
		DeliveryStatus:  models.DeliveryStatusPending,
	}

	if err := initializers.DB.Create(&order).Error; err != nil {
		log.Println("Could not create order:", err)
		releaseSubmission(&input)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create order",
		})
	}

	order.CheckoutLink = &link

	var seller models.Seller
	if err := initializers.DB.First(&seller, "id = ?", link.SellerID).Error; err == nil {
		go utils.NotifySellerAboutNewOrder(&initializers.AppConfig, &seller, &order, &link)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

// upsertCustomer creates or refreshes the customer row keyed by
// (seller_id, phone). The insert carries ON CONFLICT DO UPDATE so two
// concurrent submissions with the same phone still end up with one row;
// the canonical id is re-read afterwards because the in-memory id is the
// discarded one when the conflict path ran.
func upsertCustomer(sellerID uuid.UUID, buyer *models.BuyerInput) (*uuid.UUID, error) {
	customer := models.Customer{
		SellerID:       sellerID,
		FullName:       buyer.FullName,
		Phone:          buyer.Phone,
		City:           buyer.City,
		Address:        buyer.Address,
		Username:       buyer.Username,
		MarketingOptIn: true,
		LastUsedAt:     time.Now(),
	}

	err := initializers.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "seller_id"}, {Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "city", "address", "username", "marketing_opt_in", "last_used_at",
		}),
	}).Create(&customer).Error
	if err != nil {
		return nil, err
	}

	var saved models.Customer
	err = initializers.DB.First(&saved, "seller_id = ? AND phone = ?", sellerID, buyer.Phone).Error
	if err != nil {
		return nil, err
	}

	return &saved.ID, nil
}

func GetOrders(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	var orders []models.Order
	err := utils.Paginate(c, initializers.DB.
		Where("seller_id = ?", seller.ID).
		Preload("CheckoutLink").
		Preload("Customer").
		Order("created_at DESC"), &orders)
	if err != nil {
		log.Println("Could not list orders:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not fetch orders",
		})
	}

	return nil
}

// UpdateOrderStatus mutates payment and delivery status independently.
// Omitted fields are left untouched and no transition table is enforced:
// sellers track these by hand and need to be able to correct mistakes,
// including moving a status backwards.
func UpdateOrderStatus(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	var input models.UpdateOrderStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation error",
			"errors":  utils.ValidationErrors(err),
		})
	}

	var order models.Order
	if err := initializers.DB.First(&order, "id = ? AND seller_id = ?", input.ID, seller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	if input.PaymentStatus != nil {
		order.PaymentStatus = *input.PaymentStatus
	}
	if input.DeliveryStatus != nil {
		order.DeliveryStatus = *input.DeliveryStatus
	}

	if err := initializers.DB.Save(&order).Error; err != nil {
		log.Println("Could not update order status:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update order",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
	})
}

// GetOrder backs the public post-order success page. Anyone holding the
// order id can read it; the id is an unguessable UUID handed to the buyer
// right after submission.
func GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var order models.Order
	err := initializers.DB.
		Preload("CheckoutLink").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Order not found",
		})
	}

	var seller models.Seller
	sellerInfo := fiber.Map{}
	if err := initializers.DB.First(&seller, "id = ?", order.SellerID).Error; err == nil {
		sellerInfo = fiber.Map{
			"name":          seller.Name,
			"slug":          seller.Slug,
			"instagram_url": seller.InstagramUrl,
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   order,
		"seller": sellerInfo,
	})
}

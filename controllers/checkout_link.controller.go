package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

func parseCheckoutLinkInput(c *fiber.Ctx) (*models.CheckoutLinkInput, error) {
	var input models.CheckoutLinkInput
	if err := c.BodyParser(&input); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(&input); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation error",
			"errors":  utils.ValidationErrors(err),
		})
	}

	if err := input.Check(); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	if input.Currency == "" {
		input.Currency = "UZS"
	}
	if input.DefaultQty == 0 {
		input.DefaultQty = 1
	}

	return &input, nil
}

func CreateCheckoutLink(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	input, err := parseCheckoutLinkInput(c)
	if input == nil {
		return err
	}

	slug := utils.Slugify(input.Name)

	// Per-seller collision gets a single time-suffixed retry. Slugs are
	// never reused, so one retry is enough.
	var existing models.CheckoutLink
	err = initializers.DB.First(&existing, "seller_id = ? AND slug = ?", seller.ID, slug).Error
	if err == nil {
		slug = utils.UniqueSlug(slug)
	} else if err != gorm.ErrRecordNotFound {
		log.Println("Could not check slug:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create checkout link",
		})
	}

	link := models.CheckoutLink{
		SellerID:        seller.ID,
		Name:            input.Name,
		Slug:            slug,
		Price:           input.Price,
		Currency:        input.Currency,
		DefaultQty:      input.DefaultQty,
		MaxQty:          input.MaxQty,
		ImageUrl:        input.ImageUrl,
		Sizes:           models.StringList(input.Sizes),
		DeliveryOptions: input.DeliveryOptions,
		PaymentNote:     input.PaymentNote,
	}

	if err := initializers.DB.Create(&link).Error; err != nil {
		log.Println("Could not create checkout link:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create checkout link",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   link,
	})
}

func GetCheckoutLinks(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	var links []models.CheckoutLink
	err := initializers.DB.
		Where("seller_id = ?", seller.ID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		log.Println("Could not list checkout links:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not fetch checkout links",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   links,
	})
}

func GetCheckoutLink(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)
	linkID := c.Params("id")

	// Cross-seller lookups return 404, not 403, so foreign ids are
	// indistinguishable from ids that never existed.
	var link models.CheckoutLink
	if err := initializers.DB.First(&link, "id = ? AND seller_id = ?", linkID, seller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Checkout link not found",
		})
	}

	var orderCount int64
	initializers.DB.Model(&models.Order{}).Where("checkout_link_id = ?", link.ID).Count(&orderCount)

	return c.JSON(fiber.Map{
		"status":      "success",
		"data":        link,
		"order_count": orderCount,
	})
}

func UpdateCheckoutLink(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)
	linkID := c.Params("id")

	var link models.CheckoutLink
	if err := initializers.DB.First(&link, "id = ? AND seller_id = ?", linkID, seller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Checkout link not found",
		})
	}

	input, err := parseCheckoutLinkInput(c)
	if input == nil {
		return err
	}

	// Full-field replace. The slug is deliberately left alone so links
	// already shared with buyers keep working.
	link.Name = input.Name
	link.Price = input.Price
	link.Currency = input.Currency
	link.DefaultQty = input.DefaultQty
	link.MaxQty = input.MaxQty
	link.ImageUrl = input.ImageUrl
	link.Sizes = models.StringList(input.Sizes)
	link.DeliveryOptions = input.DeliveryOptions
	link.PaymentNote = input.PaymentNote

	if err := initializers.DB.Save(&link).Error; err != nil {
		log.Println("Could not update checkout link:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not update checkout link",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   link,
	})
}

func DeleteCheckoutLink(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)
	linkID := c.Params("id")

	var link models.CheckoutLink
	if err := initializers.DB.First(&link, "id = ? AND seller_id = ?", linkID, seller.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Checkout link not found",
		})
	}

	// Orders referencing the link go with it. Accepted data loss, no soft
	// delete.
	if err := initializers.DB.Where("checkout_link_id = ?", link.ID).Delete(&models.Order{}).Error; err != nil {
		log.Println("Could not delete orders for checkout link:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete checkout link",
		})
	}

	if err := initializers.DB.Delete(&link).Error; err != nil {
		log.Println("Could not delete checkout link:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not delete checkout link",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Checkout link deleted successfully",
	})
}

// GetCheckoutLinkBySlug serves the public buyer-facing page data.
func GetCheckoutLinkBySlug(c *fiber.Ctx) error {
	sellerSlug := c.Params("sellerSlug")
	checkoutSlug := c.Params("checkoutSlug")

	var seller models.Seller
	if err := initializers.DB.First(&seller, "slug = ?", sellerSlug).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Seller not found",
		})
	}

	var link models.CheckoutLink
	if err := initializers.DB.First(&link, "seller_id = ? AND slug = ?", seller.ID, checkoutSlug).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Checkout link not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   link,
		"seller": fiber.Map{
			"id":            seller.ID,
			"name":          seller.Name,
			"slug":          seller.Slug,
			"instagram_url": seller.InstagramUrl,
		},
	})
}

// TrackVisit bumps the visit counter. The increment is a single atomic
// update in the store and any failure is swallowed; the buyer page never
// sees an error from tracking.
func TrackVisit(c *fiber.Ctx) error {
	sellerSlug := c.Params("sellerSlug")
	checkoutSlug := c.Params("checkoutSlug")

	var seller models.Seller
	if err := initializers.DB.First(&seller, "slug = ?", sellerSlug).Error; err == nil {
		err = initializers.DB.Model(&models.CheckoutLink{}).
			Where("seller_id = ? AND slug = ?", seller.ID, checkoutSlug).
			UpdateColumn("visits", gorm.Expr("visits + ?", 1)).Error
		if err != nil {
			log.Println("Could not track visit:", err)
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

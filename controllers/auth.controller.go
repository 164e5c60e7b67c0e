package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

func SignUpSeller(c *fiber.Ctx) error {
	var input models.SignUpInput
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

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Could not hash password:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create seller",
		})
	}

	email := strings.ToLower(input.Email)
	var existing models.Seller
	if err := initializers.DB.First(&existing, "email = ?", email).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "A seller with this email already exists",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Could not look up seller:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create seller",
		})
	}

	slug := utils.Slugify(input.Name)
	var taken models.Seller
	if err := initializers.DB.First(&taken, "slug = ?", slug).Error; err == nil {
		slug = utils.UniqueSlug(slug)
	}

	seller := models.Seller{
		Name:           input.Name,
		Slug:           slug,
		Email:          email,
		Password:       string(hashedPassword),
		InstagramUrl:   input.InstagramUrl,
		TelegramChatID: input.TelegramChatID,
	}

	if err := initializers.DB.Create(&seller).Error; err != nil {
		log.Println("Could not create seller:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not create seller",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   models.FilterSellerRecord(&seller),
	})
}

func SignInSeller(c *fiber.Ctx) error {
	var input models.SignInInput
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

	var seller models.Seller
	err := initializers.DB.First(&seller, "email = ?", strings.ToLower(input.Email)).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Println("Could not look up seller:", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(seller.Password), []byte(input.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	config := initializers.AppConfig
	token, err := utils.GenerateToken(config.JwtExpiresIn, seller.ID.String(), config.JwtSecret)
	if err != nil {
		log.Println("Could not generate token:", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not sign in",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"seller": models.FilterSellerRecord(&seller),
		"token":  token,
	})
}

func GetMe(c *fiber.Ctx) error {
	seller := c.Locals("seller").(models.SellerResponse)

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   seller,
	})
}

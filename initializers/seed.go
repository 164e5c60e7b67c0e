package initializers

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
)

// SeedDemoData creates a demo seller with one checkout link so a fresh
// install has something to click on. Safe to run repeatedly.
func SeedDemoData() {
	var existing models.Seller
	if err := DB.First(&existing, "email = ?", "seller@example.com").Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Could not seed demo data:", err)
		return
	}

	seller := models.Seller{
		Name:         "Test Seller",
		Slug:         "test-seller",
		Email:        "seller@example.com",
		Password:     string(hashed),
		InstagramUrl: "https://instagram.com/testseller",
	}
	if err := DB.Create(&seller).Error; err != nil {
		log.Println("Could not seed demo seller:", err)
		return
	}

	maxQty := 5
	link := models.CheckoutLink{
		SellerID:   seller.ID,
		Name:       "White Oversized Hoodie",
		Slug:       "white-hoodie",
		Price:      150000,
		Currency:   "UZS",
		DefaultQty: 1,
		MaxQty:     &maxQty,
		Sizes:      models.StringList{"S", "M", "L", "XL"},
		DeliveryOptions: models.DeliveryOptions{
			CourierCity: true,
			Pickup:      true,
			Region:      false,
		},
		PaymentNote: "Pay via Payme or Uzcard to this card: 8600 1234 5678 9012",
	}
	if err := DB.Create(&link).Error; err != nil {
		log.Println("Could not seed demo checkout link:", err)
		return
	}

	log.Printf("Seeded demo seller, checkout URL: /api/checkout-links/%s/%s", seller.Slug, link.Slug)
}

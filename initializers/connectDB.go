package initializers

import (
	"fmt"
	"log"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(config *Config) {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Tashkent",
		config.DBHost, config.DBUserName, config.DBUserPassword, config.DBName, config.DBPort)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to the Database:", err)
	}

	log.Println("Connected successfully to the Database")
}

func MigrateDB() {
	err := DB.AutoMigrate(
		&models.Seller{},
		&models.CheckoutLink{},
		&models.Customer{},
		&models.Order{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Migration complete")
}

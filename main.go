package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Otisxdes/Bog-la-platform-for-SME-s/initializers"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/routes"
	"github.com/Otisxdes/Bog-la-platform-for-SME-s/utils"
)

func init() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatal("Could not load environment variables:", err)
	}
	initializers.AppConfig = config

	initializers.ConnectDB(&config)
	initializers.MigrateDB()
	initializers.ConnectRedis(&config)

	if config.SeedDemoData {
		initializers.SeedDemoData()
	}

	utils.InitTelegramBot(config.TelegramBotToken)
	utils.InitEventPublisher(config.AmqpUrl)
}

func main() {
	defer utils.CloseEventPublisher()

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     initializers.AppConfig.ClientOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app)
	routes.NotFoundRoute(app)

	log.Fatal(app.Listen(":" + initializers.AppConfig.ServerPort))
}

package main

import (
	"log"
	"time"

	"edudash/cache"
	"edudash/config"
	accountController "edudash/controllers/account"
	authController "edudash/controllers/auth"
	instructorController "edudash/controllers/instructor"
	notificationController "edudash/controllers/notification"
	paymentController "edudash/controllers/payment"
	walletController "edudash/controllers/wallet"
	"edudash/database"
	"edudash/middleware"
	"edudash/routers/accountRoutes"
	"edudash/routers/authRoutes"
	"edudash/routers/instructorRoutes"
	"edudash/routers/notificationRoutes"
	"edudash/routers/paymentRoutes"
	"edudash/routers/walletRoutes"
	"edudash/services"
	"edudash/session"
	"edudash/upstream"
	"edudash/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	database.ConnectDb(config.AppConfig.DBName)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	queryCache := cache.New(rdb, time.Duration(config.AppConfig.CacheTTL)*time.Second)

	api := upstream.New(
		config.AppConfig.UpstreamBaseURL,
		config.AppConfig.UpstreamToken,
		time.Duration(config.AppConfig.UpstreamTimeout)*time.Second,
	)

	notificationSvc := services.NewNotificationService(
		api,
		config.AppConfig.RecentDays,
		config.AppConfig.RetryMax,
		time.Duration(config.AppConfig.RetryDelayMs)*time.Millisecond,
	)
	offlineQueue := services.NewOfflineQueue(database.Database.Db, notificationSvc)
	accountSvc := services.NewAccountService(api, notificationSvc)
	instructorSvc := services.NewInstructorService(api, notificationSvc)
	paymentSvc := services.NewPaymentService(api, notificationSvc)
	walletSvc := services.NewWalletService(api)

	middleware.Sessions = session.NewManager(database.Database.Db)

	notificationController.Init(notificationSvc, queryCache, offlineQueue, services.LogToaster{})
	accountController.Init(accountSvc)
	instructorController.Init(instructorSvc)
	paymentController.Init(paymentSvc)
	walletController.Init(walletSvc)
	authController.Init(api, middleware.Sessions)

	utils.StartOfflineScheduler(offlineQueue, config.AppConfig.OfflineFlushCron)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	accountRoutes.SetupAccountRoutes(app)
	instructorRoutes.SetupInstructorRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	walletRoutes.SetupWalletRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

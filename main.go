package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"redlink/config"
	"redlink/database"
	"redlink/httpServices/mailer"
	"redlink/jobs"
	"redlink/logger"
	"redlink/routes"
	appointmentService "redlink/services/appointment"
	"redlink/services/notification"
	otpService "redlink/services/otp"
	"redlink/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: " + err.Error())
	}

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
	})

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}
	store := storage.NewGormStore(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Endpoint,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	otpStore := otpService.NewRedisStore(redisClient)

	dispatcher := notification.NewDispatcher(mailer.NewSMTPMailer(cfg.SMTP))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	routes.SetupRoutes(app, db, routes.Deps{
		Store:      store,
		Dispatcher: dispatcher,
		OTPStore:   otpStore,
		Config:     cfg,
	})

	// Background status sweep, decoupled from request handling.
	sweeper := jobs.NewStatusSweeper(
		appointmentService.NewService(store, dispatcher),
		cfg.Sweep.Interval,
	)
	sweeper.Start()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")
		sweeper.Stop()
		if err := app.Shutdown(); err != nil {
			logger.Error("Server forced to shutdown", err)
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Success("Server is running on " + addr)
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lms/config"
	authController "lms/controllers/auth"
	controllers "lms/controllers/course"
	discussionController "lms/controllers/discussion"
	userController "lms/controllers/userControllers"
	"lms/database"
	"lms/routers/authRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/discussionRoutes"
	"lms/routers/progressRoutes"
	"lms/routers/userRoutes"
	"lms/services/progressService"
	"lms/utils"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mailer := utils.NewMailer(cfg)
	svc := progressService.New(db)

	authCtrl := authController.New(db, cfg, mailer)
	userCtrl := userController.New(db, svc)
	courseCtrl := controllers.New(db, cfg, svc)
	discussionCtrl := discussionController.New(db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, authCtrl)
	userRoutes.SetupUserRoutes(app, userCtrl, db, cfg.JWTKey)
	courseRoutes.SetupCourseRoutes(app, courseCtrl, cfg.JWTKey)
	courseRoutes.SetupAdminCourseRoutes(app, courseCtrl, db, cfg.JWTKey)
	progressRoutes.SetupProgressRoutes(app, courseCtrl, cfg.JWTKey)
	discussionRoutes.SetupDiscussionRoutes(app, discussionCtrl, cfg.JWTKey)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"restaurant_pos_backend/internal/database"
	"restaurant_pos_backend/internal/notifier"
	appRouter "restaurant_pos_backend/internal/router"
	"restaurant_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "pos_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "pos_password")
	dbName := utils.Getenv("DB_NAME", "restaurant_pos_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath); err != nil {
		utils.LogError(err, "Failed to initialize database")
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Staff notifications are best-effort; without a broker they are dropped.
	var n notifier.Notifier = notifier.Noop{}
	if rabbitURL := os.Getenv("RABBITMQ_URL"); rabbitURL != "" {
		rmq, err := notifier.NewRabbitMQNotifier(rabbitURL)
		if err != nil {
			utils.LogError(err, "Failed to connect to RabbitMQ, notifications disabled")
		} else {
			defer rmq.Close()
			n = rmq
			utils.LogInfo("RabbitMQ notifier connected", map[string]interface{}{"queue": notifier.QueueName})
		}
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	appRouter.Setup(engine, database.GetDB(), n)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

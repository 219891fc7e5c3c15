package main

import (
	"Magnate/config"
	"Magnate/middleware"
	"Magnate/routes"
	"Magnate/services/board"
	"Magnate/services/ledger"
	"Magnate/services/redis"
	"Magnate/services/socket_io"
	"Magnate/services/storage"
	gamesync "Magnate/sync"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()
	// Setup DB conn
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := zap.NewProduction()
	if os.Getenv("PROD") != "true" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
			// Continue execution even if migration fails
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Println("Connection to Redis successful")
	defer redis.CloseRedis(redisClient)

	catalog, err := board.LoadProperties()
	if err != nil {
		log.Fatalf("Error loading board catalog: %v", err)
	}

	backend := storage.NewPostgresBackend(gormDB, catalog)
	registry := ledger.NewRegistry(backend, catalog, logger)
	syncManager := gamesync.NewSyncManager(redisClient, backend)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, registry, logger)

	sio := &socket_io.MySocketServer{}
	sio.Start(r, registry, redisClient, syncManager)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" && os.Getenv("USE_HTTPS") == "true" {
		port = "443"
	} else if port == "" {
		port = "8080"
	}

	if os.Getenv("USE_HTTPS") == "true" {
		// SSL certification configuration for HTTPS
		certFile := os.Getenv("SSL_CERT_FILE")
		keyFile := os.Getenv("SSL_KEY_FILE")

		// Start server
		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
	log.Printf("Server started on port %s", port)
}

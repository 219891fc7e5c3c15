package config

import (
	"Magnate/models/postgres"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")
	verbose := os.Getenv("VERBOSE_POSTGRES")

	// NOTE: https://stackoverflow.com/questions/57205060/how-to-connect-postgresql-database-using-gorm
	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		user, password, host, port, database)

	sqlDB1, err := sql.Open("postgres", dsn)

	if err != nil {
		log.Printf("Error connecting to PostgreSQL: %v", err)
		return nil, err
	}

	gormConfig := &gorm.Config{}
	if verbose == "true" {
		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
			logger.Config{
				SlowThreshold:             time.Second, // Slow SQL threshold
				LogLevel:                  logger.Info, // Log level (Silent, Error, Warn, Info)
				IgnoreRecordNotFoundError: false,       // Ignore ErrRecordNotFound error for logger
				Colorful:                  true,        // Enable color
			},
		)
		gormConfig.Logger = newLogger
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB1,
		PreferSimpleProtocol: true,
	}), gormConfig)

	if err != nil {
		log.Printf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	// Get the underlying SQL DB object
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying SQL DB: %v", err)
		return nil, err
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: for more info, execute db.Debug().AutoMigrate(...)
	err := db.AutoMigrate(
		postgres.Game{},
		postgres.Player{},
		postgres.GameProperty{},
		postgres.PropertyCatalog{},
		postgres.Transaction{},
		postgres.Trade{},
		postgres.UndoEntry{})

	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Println("PostgreSQL database migrated successfully")

	return nil
}

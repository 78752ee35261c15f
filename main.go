package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acamacho/portfolio-backend/api"
	appconfig "github.com/acamacho/portfolio-backend/config"
	"github.com/acamacho/portfolio-backend/database"
	"github.com/acamacho/portfolio-backend/models"
	"github.com/acamacho/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := appconfig.New()

	connStr := appconfig.GetString(cfg, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			appconfig.GetString(cfg, "DB_HOST", "localhost"),
			appconfig.GetString(cfg, "DB_USER", "postgres"),
			appconfig.GetString(cfg, "DB_PASSWORD", ""),
			appconfig.GetString(cfg, "DB_NAME", "portfolio"),
			appconfig.GetString(cfg, "DB_PORT", "5432"),
			appconfig.GetString(cfg, "DB_SSLMODE", "disable"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.Admin{}, &models.Project{}, &models.ProjectTechnology{}); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	blobs, err := services.NewBlobStore(cfg)
	if err != nil {
		fmt.Printf("Error initializing blob store: %v\n", err)
		os.Exit(1)
	}

	// Startup checks: verify the database answers and the bucket exists
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	g, gCtx := errgroup.WithContext(startupCtx)
	g.Go(func() error {
		var result int
		return db.WithContext(gCtx).Raw("SELECT 1").Scan(&result).Error
	})
	g.Go(func() error {
		return blobs.EnsureBucket(gCtx)
	})
	if err := g.Wait(); err != nil {
		cancel()
		fmt.Printf("Startup check failed: %v\n", err)
		os.Exit(1)
	}
	cancel()

	currentDB := database.New(db)

	if err := bootstrapAdmin(currentDB, cfg); err != nil {
		fmt.Printf("Error bootstrapping admin: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, blobs)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// bootstrapAdmin creates the initial admin from ADMIN_EMAIL/ADMIN_PASSWORD.
// Refuses silently when an admin already exists; a fresh database gets exactly
// one account.
func bootstrapAdmin(db database.Database, cfg map[string]string) error {
	email := appconfig.GetString(cfg, "ADMIN_EMAIL", "")
	password := appconfig.GetString(cfg, "ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	count, err := db.AdminRepo().Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{Email: email, PasswordHash: string(hash)}
	if err := db.AdminRepo().Add(&admin); err != nil {
		return err
	}

	fmt.Printf("Created initial admin: %s\n", email)
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

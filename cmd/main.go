package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/config"
	"github.com/krishiconnect/krishi-backend/database"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/events"
	"github.com/krishiconnect/krishi-backend/internal/media"
	"github.com/krishiconnect/krishi-backend/routes"
	"github.com/krishiconnect/krishi-backend/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "krishi",
	Short:         "Krishi Connect backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := openDatabase()
		return err
	},
}

var (
	flagAdminEmail    string
	flagAdminPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an admin account if the email is not registered",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAdminEmail == "" || flagAdminPassword == "" {
			return errors.New("--email and --password are required")
		}
		db, err := openDatabase()
		if err != nil {
			return err
		}
		_, err = ensureAdmin(cmd.Context(), db, flagAdminEmail, flagAdminPassword)
		return err
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&flagAdminEmail, "email", "", "Admin email")
	seedAdminCmd.Flags().StringVar(&flagAdminPassword, "password", "", "Admin password")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedAdminCmd)
}

func main() {
	// With no subcommand the binary serves.
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Error:", err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func ensureAdmin(ctx context.Context, db *gorm.DB, email, password string) (*auth.User, error) {
	tokens := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	audit := auditlog.NewService(auditlog.NewRepository(db))
	svc := auth.NewService(auth.NewRepository(db), tokens, nil, audit)

	user, created, err := svc.EnsureAdmin(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		log.Printf("✅ Admin %s created", user.Email)
	} else {
		log.Printf("ℹ️ Admin %s already exists", email)
	}
	return user, nil
}

func newStorage(ctx context.Context) (media.Storage, error) {
	switch cfg.MediaBackend {
	case "minio":
		return media.NewMinIOStorage(ctx, media.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	case "", "local":
		return media.NewLocalStorage(cfg.MediaDir)
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase()
	if err != nil {
		return err
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := ensureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	// Redis is optional. Without it logout revocation, dashboard caching
	// and the notification stream are off.
	rdb, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, continuing without it: %v", err)
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	storage, err := newStorage(ctx)
	if err != nil {
		return fmt.Errorf("media storage: %w", err)
	}
	log.Printf("✅ Media backend: %s", cfg.MediaBackend)

	deps := routes.Deps{DB: db, Redis: rdb, Storage: storage}

	var bus *events.InProcess
	writer := utils.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	if writer != nil {
		defer writer.Close()
		deps.Publisher = events.NewKafkaPublisher(writer)
	} else {
		bus = events.NewInProcess()
		deps.Publisher = bus
		log.Println("ℹ️ Kafka not configured, delivering events in process")
	}

	svc := routes.NewServices(cfg, deps)

	if bus != nil {
		bus.Subscribe(svc.Notifications.HandleEvent)
	} else {
		reader := utils.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
		defer reader.Close()
		go func() {
			log.Printf("🔄 Consuming events from %s", cfg.KafkaTopic)
			if err := events.Consume(ctx, reader, svc.Notifications.HandleEvent); err != nil {
				log.Printf("❌ Event consumer stopped: %v", err)
			}
		}()
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	routes.Setup(router, cfg, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🔄 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("✅ Server stopped")
	return nil
}

package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/krishiconnect/krishi-backend/config"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/crop"
	"github.com/krishiconnect/krishi-backend/internal/farmer"
	"github.com/krishiconnect/krishi-backend/internal/landlord"
	"github.com/krishiconnect/krishi-backend/internal/notification"
	"github.com/krishiconnect/krishi-backend/internal/space"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database. TranslateError is on so unique
// violations surface as gorm.ErrDuplicatedKey on both drivers.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite", "":
		if dir := filepath.Dir(cfg.DatabaseURL); dir != "." && cfg.DatabaseURL != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(SQLiteDSN(cfg.DatabaseURL))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// sqlite serializes writers
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("✅ Connected to %s database", db.Dialector.Name())
	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&auth.User{},
		&farmer.FarmerDetails{},
		&landlord.LandlordDetails{},
		&space.Space{},
		&crop.Crop{},
		&crop.Proof{},
		&auditlog.AuditLog{},
		&notification.InAppNotification{},
	}
}

// SQLiteDSN turns foreign key enforcement on, keeping any query string
// already in the path.
func SQLiteDSN(path string) string {
	const fk = "_pragma=foreign_keys(1)"
	if strings.Contains(path, fk) {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + fk
	}
	return path + "?" + fk
}

func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Println("✅ Database migrations completed")
	return nil
}

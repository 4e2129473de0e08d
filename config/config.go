package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDriver is "sqlite" or "postgres".
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	CORSAllowedOrigins []string

	// Media storage
	MediaBackend  string // local | minio
	MediaDir      string
	PublicBaseURL string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// ✅ Redis Config (optional)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config (optional)
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	RateLimitPerMinute int64

	// Bootstrap admin
	AdminEmail    string
	AdminPassword string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	accessMinutes := getEnvInt("JWT_ACCESS_TTL_MINUTES", 30)
	refreshHours := getEnvInt("JWT_REFRESH_TTL_HOURS", 7*24)
	redisDB := getEnvInt("REDIS_DB", 0)
	rateLimit := getEnvInt("RATE_LIMIT_PER_MINUTE", 100)

	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	if accessSecret == "" {
		log.Println("⚠️ JWT_ACCESS_SECRET not set, using development secret")
		accessSecret = "dev-access-secret-change-me"
	}
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}

	cfg := &Config{
		Port: getEnv("PORT", "9876"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		JWTAccessSecret:  accessSecret,
		JWTRefreshSecret: refreshSecret,
		JWTAccessTTL:     time.Duration(accessMinutes) * time.Minute,
		JWTRefreshTTL:    time.Duration(refreshHours) * time.Hour,

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		MediaBackend:  strings.ToLower(getEnv("MEDIA_BACKEND", "local")),
		MediaDir:      getEnv("MEDIA_DIR", "./media"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "krishi-media"),
		MinIOUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "krishi.events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "krishi-notifications"),

		RateLimitPerMinute: int64(rateLimit),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = cfg.defaultDSN()
	}
	return cfg
}

func (c *Config) defaultDSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
	return "./app.db"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort string // Application port
	IsProd  bool   // Is production environment

	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name
	DBMaxOpenConns    int           // Maximum open connections
	DBMaxIdleConns    int           // Maximum idle connections
	DBConnMaxLifetime time.Duration // Connection max lifetime
	DBLogLevel        string        // GORM log level: silent, error, warn, info

	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // Token lifetime
	BcryptCost int           // Password hashing cost

	RedisAddr string        // Redis server address
	RedisPass string        // Redis password
	RedisDB   int           // Redis database number
	CacheTTL  time.Duration // Read cache lifetime

	KafkaBrokers []string // Kafka brokers, empty disables event publishing
	KafkaTopic   string   // Topic for statement events

	LogLevel string // Logrus level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort: getEnv("APP_PORT", "3333"),     // Application port
		IsProd:  os.Getenv("IS_PROD") == "true", // Is production environment

		DBUser:            os.Getenv("DB_USER"),                                // Database user
		DBPassword:        os.Getenv("DB_PASSWORD"),                            // Database password
		DBHost:            getEnv("DB_HOST", "localhost"),                      // Database host
		DBPort:            getEnv("DB_PORT", "3306"),                           // Database port
		DBName:            getEnv("DB_NAME", "fin_api"),                        // Database name
		DBMaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 100),                    // Maximum open connections
		DBMaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 10),                     // Maximum idle connections
		DBConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute), // Connection max lifetime
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "error"),                     // GORM log level

		JWTSecret:  os.Getenv("JWT_SECRET"),              // JWT secret key
		JWTTTL:     getDuration("JWT_TTL", 24*time.Hour), // Token lifetime
		BcryptCost: getInt("BCRYPT_COST", 8),             // Password hashing cost

		RedisAddr: os.Getenv("REDIS_ADDR"),                  // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"),                  // Redis password
		RedisDB:   getInt("REDIS_DB", 0),                    // Redis database number
		CacheTTL:  getDuration("CACHE_TTL", 60*time.Second), // Read cache lifetime

		KafkaBrokers: getList("KAFKA_BROKERS"),                   // Kafka brokers
		KafkaTopic:   getEnv("KAFKA_TOPIC", "statement_created"), // Topic for statement events

		LogLevel: getEnv("LOG_LEVEL", "info"), // Logrus level
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getList splits a comma separated variable, dropping blanks
func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config file paths for static game configuration
const (
	ConfigPathRewards  = "configs/rewards.json"
	ConfigPathMonsters = "configs/monsters.json"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string

	// StorageBackend selects "postgres" (multi-user server) or "file"
	// (single-user client mode over a local KV directory).
	StorageBackend string
	DataDir        string

	// LocalUserID and LocalToken identify the single user in file mode,
	// where no session store exists.
	LocalUserID string
	LocalToken  string

	RewardsConfigPath  string
	MonstersConfigPath string

	// AuthorityURL points file-mode deployments at a remote reward
	// authority. Empty means rewards apply locally without validation.
	AuthorityURL string

	// AuthorityTimeout bounds client calls to the reward authority;
	// longer calls count as failures and trigger rollback.
	AuthorityTimeout time.Duration

	SessionCacheSize int
	SessionCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:        getEnv("ENVIRONMENT", "dev"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		DBUser:             getEnv("DB_USER", "postgres"),
		DBPassword:         getEnv("DB_PASSWORD", "postgres"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBName:             getEnv("DB_NAME", "liferpg"),
		StorageBackend:     getEnv("STORAGE_BACKEND", "postgres"),
		DataDir:            getEnv("DATA_DIR", "data"),
		LocalUserID:        getEnv("LOCAL_USER_ID", ""),
		LocalToken:         getEnv("LOCAL_TOKEN", ""),
		RewardsConfigPath:  getEnv("REWARDS_CONFIG", ConfigPathRewards),
		MonstersConfigPath: getEnv("MONSTERS_CONFIG", ConfigPathMonsters),
		AuthorityURL:       getEnv("AUTHORITY_URL", ""),
		AuthorityTimeout:   getEnvAsDuration("AUTHORITY_TIMEOUT", 10*time.Second),
		SessionCacheSize:   getEnvAsInt("SESSION_CACHE_SIZE", 1024),
		SessionCacheTTL:    getEnvAsDuration("SESSION_CACHE_TTL", 5*time.Minute),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

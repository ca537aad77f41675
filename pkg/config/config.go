package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	JWTExpiresIn            time.Duration
	AuthProvider            string // "jwt" or "firebase"
	FirebaseCredentialsPath string
	ClientURL               string
	MetricsPort             string
	RedisURL                string
	RateLimitPerHour        int
	StorageDriver           string // "local" or "minio"
	UploadDir               string
	MinioEndpoint           string
	MinioAccessKey          string
	MinioSecretKey          string
	MinioBucket             string
	MinioUseSSL             bool
}

// Load reads the configuration from the environment, loading a .env file first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "estatehub"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		JWTExpiresIn:            getDuration("JWT_EXPIRES_IN", 72*time.Hour),
		AuthProvider:            getEnv("AUTH_PROVIDER", "jwt"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		ClientURL:               getEnv("CLIENT_URL", "*"),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		RedisURL:                getEnv("REDIS_URL", ""),
		RateLimitPerHour:        getInt("RATE_LIMIT_PER_HOUR", 100),
		StorageDriver:           getEnv("STORAGE_DRIVER", "local"),
		UploadDir:               getEnv("UPLOAD_DIR", "public/images"),
		MinioEndpoint:           getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:          getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:          getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:             getEnv("MINIO_BUCKET", "estate-images"),
		MinioUseSSL:             getEnv("MINIO_USE_SSL", "false") == "true",
	}
}

// IsDevelopment reports whether verbose error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

package config

import (
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	MongoURI                     string
	MongoDatabase                string
	MoodCollection               string
	CompanyCollection            string
	UserCollection               string
	PendingUserCollection        string
	FailedNotificationCollection string
	Timeout                      time.Duration
	AppEnv                       string
	Logger                       *zap.SugaredLogger
	JWTSecret                    []byte
	JWTIssuer                    string
	JWTAudience                  string
	TokenTTL                     time.Duration
	RedisAddr                    string
	RedisPassword                string
	ReportCacheTTL               time.Duration
	MessengerEndpoint            string
	MessengerDestination         string
	MessengerTimeout             time.Duration
	VerifyBaseURL                string
	AllowedOrigins               []string
	AllowCreatedAtOverride       bool
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	appEnv := envOrDefault("APP_ENV", "development")
	logger := newLogger(appEnv)

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}

	tokenTTL := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("JWT_TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			tokenTTL = parsed
		}
	}

	reportCacheTTL := 10 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("REPORT_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			reportCacheTTL = parsed
		}
	}

	messengerTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			messengerTimeout = parsed
		}
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "team-mood"),
		MoodCollection:               envOrDefault("MOOD_COLLECTION", "moods"),
		CompanyCollection:            envOrDefault("COMPANY_COLLECTION", "companies"),
		UserCollection:               envOrDefault("USER_COLLECTION", "users"),
		PendingUserCollection:        envOrDefault("PENDING_USER_COLLECTION", "pendingUsers"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		Timeout:                      timeout,
		AppEnv:                       appEnv,
		Logger:                       logger,
		JWTSecret:                    []byte(jwtSecret),
		JWTIssuer:                    envOrDefault("JWT_ISSUER", "team-mood-api"),
		JWTAudience:                  envOrDefault("JWT_AUDIENCE", "team-mood-clients"),
		TokenTTL:                     tokenTTL,
		RedisAddr:                    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:                strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		ReportCacheTTL:               reportCacheTTL,
		MessengerEndpoint:            strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		MessengerDestination:         envOrDefault("MESSENGER_GATEWAY_DESTINATION", "email"),
		MessengerTimeout:             messengerTimeout,
		VerifyBaseURL:                strings.TrimSpace(os.Getenv("SIGNUP_VERIFY_BASE_URL")),
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		AllowCreatedAtOverride:       strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_CREATED_AT_OVERRIDE")), "true"),
	}

	logger.Infow("loaded config",
		"env", appEnv,
		"addr", cfg.Addr,
		"mongoDatabase", cfg.MongoDatabase,
		"redisEnabled", cfg.RedisAddr != "",
	)

	return cfg
}

// newLogger builds a zap logger matching the runtime environment.
func newLogger(appEnv string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if appEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return logger.Sugar()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

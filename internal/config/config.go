package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	USAJobsBaseURL     string
	USAJobsCodeListURL string
	USAJobsAPIKey      string
	USAJobsUserAgent   string
	USAJobsTimeout     time.Duration

	SearchCacheTTL   time.Duration
	DetailCacheTTL   time.Duration
	CodeListCacheTTL time.Duration
	PositionCacheTTL time.Duration

	CacheBackend         string
	CacheDefaultTTL      time.Duration
	CacheSlidingWindow   time.Duration
	CacheCleanupInterval time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisDB              int

	PostgresURL string

	NATSURL         string
	NATSConnTimeout time.Duration

	RefreshSchedule string

	SourcePageSize    int
	CandidatePoolSize int
	MaxCandidates     int
}

func LoadConfig() (*Config, error) {
	config := &Config{
		USAJobsBaseURL:     getEnvString("USAJOBS_API_BASE_URL", "https://data.usajobs.gov/api"),
		USAJobsCodeListURL: getEnvString("USAJOBS_CODELIST_BASE_URL", "https://data.usajobs.gov/api/codelist"),
		USAJobsAPIKey:      getEnvString("USAJOBS_API_KEY", ""),
		USAJobsUserAgent:   getEnvString("USAJOBS_USER_AGENT", "talentgigs-aggregator"),
		USAJobsTimeout:     getEnvDuration("USAJOBS_API_TIMEOUT", 30*time.Second),

		SearchCacheTTL:   getEnvDuration("SEARCH_CACHE_TTL", 15*time.Minute),
		DetailCacheTTL:   getEnvDuration("DETAIL_CACHE_TTL", 60*time.Minute),
		CodeListCacheTTL: getEnvDuration("CODELIST_CACHE_TTL", 4*time.Hour),
		PositionCacheTTL: getEnvDuration("POSITION_CACHE_TTL", 5*time.Minute),

		CacheBackend:         getEnvString("CACHE_BACKEND", "memory"),
		CacheDefaultTTL:      getEnvDuration("CACHE_DEFAULT_TTL", time.Hour),
		CacheSlidingWindow:   getEnvDuration("CACHE_SLIDING_WINDOW", 10*time.Minute),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
		RedisAddr:            getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnvString("REDIS_PASSWORD", ""),
		RedisDB:              getEnvInt("REDIS_DB", 0),

		PostgresURL: getEnvString("POSTGRES_URL", "postgres://localhost:5432/talentgigs"),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		RefreshSchedule: getEnvString("CODELIST_REFRESH_SCHEDULE", "@every 4h"),

		SourcePageSize:    getEnvInt("SOURCE_PAGE_SIZE", 100),
		CandidatePoolSize: getEnvInt("CANDIDATE_POOL_SIZE", 50),
		MaxCandidates:     getEnvInt("MAX_CANDIDATES", 5),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

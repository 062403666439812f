package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Identity IdentityConfig `yaml:"identity"`
	IGDB     IGDBConfig     `yaml:"igdb"`
	Cache    CacheConfig    `yaml:"cache"`
	Throttle ThrottleConfig `yaml:"throttle"`
	CORS     CORSConfig     `yaml:"cors"`
	Logger   LoggerConfig   `yaml:"logger"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN builds the postgres connection string
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.Username, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
}

// IdentityConfig configures the external identity provider bridge
type IdentityConfig struct {
	TokenInfoURL string        `yaml:"token_info_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

type IGDBConfig struct {
	APIURL        string        `yaml:"api_url"`
	AuthURL       string        `yaml:"auth_url"`
	ClientID      string        `yaml:"client_id"`
	ClientSecret  string        `yaml:"client_secret"`
	Timeout       time.Duration `yaml:"timeout"`
	TokenCacheTTL time.Duration `yaml:"token_cache_ttl"`
}

// CacheConfig holds per-endpoint cache TTLs for the game catalog
type CacheConfig struct {
	GameDetails   time.Duration `yaml:"game_details"`
	TrendingGames time.Duration `yaml:"trending_games"`
	SearchResults time.Duration `yaml:"search_results"`
}

// ThrottleConfig holds fixed-window rate limit settings
type ThrottleConfig struct {
	Window time.Duration `yaml:"window"`
	Limit  int           `yaml:"limit"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the yaml file at path (if present),
// then applies environment variable overrides
func Load(path string) (*Config, error) {
	// .env is optional, ignore if missing
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            "3000",
			Mode:            "debug",
			BasePath:        "/api/v1",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Username:        "gaming_user",
			Password:        "gaming_password",
			Name:            "gaming_community_db",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		JWT: JWTConfig{
			ExpiresIn: 7 * 24 * time.Hour,
		},
		Identity: IdentityConfig{
			TokenInfoURL: "https://oauth2.googleapis.com/tokeninfo",
			Timeout:      5 * time.Second,
		},
		IGDB: IGDBConfig{
			APIURL:        "https://api.igdb.com/v4",
			AuthURL:       "https://id.twitch.tv/oauth2/token",
			Timeout:       10 * time.Second,
			TokenCacheTTL: 60 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			GameDetails:   24 * time.Hour,
			TrendingGames: 6 * time.Hour,
			SearchResults: time.Hour,
		},
		Throttle: ThrottleConfig{
			Window: time.Minute,
			Limit:  100,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if basePath := os.Getenv("API_PREFIX"); basePath != "" {
		cfg.Server.BasePath = basePath
	}
	if host := os.Getenv("DATABASE_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DATABASE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Database.Port = p
		}
	}
	if user := os.Getenv("DATABASE_USERNAME"); user != "" {
		cfg.Database.Username = user
	}
	if pass := os.Getenv("DATABASE_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DATABASE_NAME"); name != "" {
		cfg.Database.Name = name
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Redis.Port = p
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if exp := os.Getenv("JWT_EXPIRATION"); exp != "" {
		if d, err := time.ParseDuration(exp); err == nil {
			cfg.JWT.ExpiresIn = d
		}
	}
	if url := os.Getenv("IDENTITY_TOKEN_INFO_URL"); url != "" {
		cfg.Identity.TokenInfoURL = url
	}
	if id := os.Getenv("TWITCH_CLIENT_ID"); id != "" {
		cfg.IGDB.ClientID = id
	}
	if secret := os.Getenv("TWITCH_CLIENT_SECRET"); secret != "" {
		cfg.IGDB.ClientSecret = secret
	}
	if url := os.Getenv("IGDB_API_URL"); url != "" {
		cfg.IGDB.APIURL = url
	}
	if ttl := os.Getenv("IGDB_TOKEN_CACHE_TTL"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil {
			cfg.IGDB.TokenCacheTTL = time.Duration(secs) * time.Second
		}
	}
	if ttl := os.Getenv("CACHE_TTL_GAME_DETAILS"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil {
			cfg.Cache.GameDetails = time.Duration(secs) * time.Second
		}
	}
	if ttl := os.Getenv("CACHE_TTL_TRENDING_GAMES"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil {
			cfg.Cache.TrendingGames = time.Duration(secs) * time.Second
		}
	}
	if ttl := os.Getenv("CACHE_TTL_SEARCH_RESULTS"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil {
			cfg.Cache.SearchResults = time.Duration(secs) * time.Second
		}
	}
	if ttl := os.Getenv("THROTTLE_TTL"); ttl != "" {
		if secs, err := strconv.Atoi(ttl); err == nil {
			cfg.Throttle.Window = time.Duration(secs) * time.Second
		}
	}
	if limit := os.Getenv("THROTTLE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			cfg.Throttle.Limit = n
		}
	}
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
}

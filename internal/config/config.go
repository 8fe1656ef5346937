package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"nardchat/internal/logger"
)

type Config struct {
	Port           string        `yaml:"port" env:"PORT"`
	DatabaseURL    string        `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL       string        `yaml:"redis_url" env:"REDIS_URL"`
	SessionSecret  string        `yaml:"session_secret" env:"SESSION_SECRET"`
	JWTSecret      string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTTTL         time.Duration `yaml:"jwt_ttl" env:"JWT_TTL"`
	AppName        string        `yaml:"app_name" env:"APP_NAME"`
	AllowedOrigins string        `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"` // comma separated
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogPretty      bool          `yaml:"log_pretty" env:"LOG_PRETTY"`

	// Identity
	AdminWallets string        `yaml:"admin_wallets" env:"ADMIN_WALLETS"` // comma separated
	IdentityTTL  time.Duration `yaml:"identity_ttl" env:"IDENTITY_TTL"`

	// DiscussionStorage contract
	ContractAddress string `yaml:"contract_address" env:"CONTRACT_ADDRESS"`
	ChainID         int64  `yaml:"chain_id" env:"CHAIN_ID"`

	// Comments
	CommentMaxDepth   int    `yaml:"comment_max_depth" env:"COMMENT_MAX_DEPTH"` // 0 = unbounded
	PromoteOrphans    bool   `yaml:"promote_orphans" env:"PROMOTE_ORPHANS"`
	RateLimitPerMin   int    `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	FarcasterManifest string `yaml:"farcaster_manifest" env:"FARCASTER_MANIFEST"` // path to a generated farcaster.json
}

// Defaults returns the configuration used for anything not set by file or env.
func Defaults() Config {
	return Config{
		Port:            "8080",
		DatabaseURL:     "host=localhost user=postgres password=postgres dbname=nardchat port=5432 sslmode=disable TimeZone=UTC",
		SessionSecret:   "secret_key_change_me",
		JWTSecret:       "jwt_secret_change_me",
		JWTTTL:          24 * time.Hour,
		AppName:         "Nard.chat",
		AllowedOrigins:  "http://localhost:3000",
		LogLevel:        "info",
		AdminWallets:    "0x527F6123c3A39E87B1B5fFbC185f2174EC323Edb",
		IdentityTTL:     30 * time.Second,
		ContractAddress: "0xc613d6564baeac4abf110ecad84ac59016233c6e",
		ChainID:         84532, // Base Sepolia
		RateLimitPerMin: 30,
	}
}

// Load builds the config: defaults, then the optional YAML file named by
// CONFIG_FILE, then environment variables (a .env file is loaded first).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug().Msg("No .env file found, finding env vars from system")
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("config: env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("config: invalid CHAIN_ID %d", c.ChainID)
	}
	if c.CommentMaxDepth < 0 {
		return fmt.Errorf("config: COMMENT_MAX_DEPTH must be >= 0, got %d", c.CommentMaxDepth)
	}
	return nil
}

// AdminWalletList splits ADMIN_WALLETS.
func (c Config) AdminWalletList() []string {
	return splitAndTrim(c.AdminWallets, ",")
}

func (c Config) AllowedOriginList() []string {
	return splitAndTrim(c.AllowedOrigins, ",")
}

// splitAndTrim splits s by sep and trims results.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package buildCFG

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"gatepass/internal/cache"
	"gatepass/internal/gateway"
	"gatepass/internal/mailer"
)

type ServerConfig struct {
	Port string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

// Secrets come from the environment, everything else from config.yaml.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return ServerConfig{Port: port}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := envOr("DATABASE_DSN", cfg.GetString("database.master_dsn"))
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("database.master_dsn is required")
	}

	var slaveDSNs []string
	for _, dsn := range strings.Split(cfg.GetString("database.slave_dsns"), ",") {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			slaveDSNs = append(slaveDSNs, dsn)
		}
	}

	opts := &dbpg.Options{
		MaxOpenConns: cfg.GetInt("database.max_open_conns"),
		MaxIdleConns: cfg.GetInt("database.max_idle_conns"),
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 5
	}

	log.Info().Int("slaves", len(slaveDSNs)).Msg("database configuration built")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Url:      envOr("RABBIT_URL", cfg.GetString("rabbit.url")),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.Url == "" {
		return rc, fmt.Errorf("rabbit.url is required")
	}
	if rc.Exchange == "" {
		rc.Exchange = "gatepass.jobs"
	}
	if rc.Queue == "" {
		rc.Queue = "gatepass.jobs"
	}
	log.Info().Str("exchange", rc.Exchange).Str("queue", rc.Queue).Msg("rabbit configuration built")
	return rc, nil
}

// BuildGatewayConfig returns the payment provider client config plus the
// currency bookings are charged in.
func BuildGatewayConfig(cfg *config.Config, log *zerolog.Logger) (gateway.Config, string, error) {
	gc := gateway.Config{
		BaseURL:   cfg.GetString("gateway.base_url"),
		KeyID:     envOr("GATEWAY_KEY_ID", cfg.GetString("gateway.key_id")),
		KeySecret: os.Getenv("GATEWAY_KEY_SECRET"),
	}
	if secs := cfg.GetInt("gateway.timeout_seconds"); secs > 0 {
		gc.Timeout = time.Duration(secs) * time.Second
	}
	if gc.BaseURL == "" {
		return gc, "", fmt.Errorf("gateway.base_url is required")
	}
	if gc.KeySecret == "" {
		return gc, "", fmt.Errorf("GATEWAY_KEY_SECRET is required")
	}

	currency := cfg.GetString("gateway.currency")
	if currency == "" {
		currency = "INR"
	}
	log.Info().Str("currency", currency).Msg("gateway configuration built")
	return gc, currency, nil
}

func BuildRedisConfig(cfg *config.Config, log *zerolog.Logger) cache.Config {
	rc := cache.Config{
		Addr:     cfg.GetString("redis.addr"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       cfg.GetInt("redis.db"),
	}
	if rc.Addr == "" {
		rc.Addr = "localhost:6379"
	}
	if secs := cfg.GetInt("redis.stats_ttl_seconds"); secs > 0 {
		rc.TTL = time.Duration(secs) * time.Second
	}
	log.Info().Str("addr", rc.Addr).Msg("redis configuration built")
	return rc
}

func BuildMailerConfig(cfg *config.Config, log *zerolog.Logger) mailer.Config {
	mc := mailer.Config{
		Host:     cfg.GetString("mailer.host"),
		Port:     cfg.GetString("mailer.port"),
		From:     cfg.GetString("mailer.from"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
	if mc.Port == "" {
		mc.Port = "587"
	}
	log.Info().Str("host", mc.Host).Str("from", mc.From).Msg("mailer configuration built")
	return mc
}

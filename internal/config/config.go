package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-ownership-resolver/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// SubgraphsConfig holds the subgraph endpoints indexed for one chain.
// Any endpoint may be empty when the chain does not host that subgraph.
type SubgraphsConfig struct {
	Marketplace string `mapstructure:"marketplace"`
	Collections string `mapstructure:"collections"`
	ThirdParty  string `mapstructure:"third_party"`
}

// ChainConfig holds configuration for one chain
type ChainConfig struct {
	Enabled              bool            `mapstructure:"enabled"`
	ChainID              string          `mapstructure:"chain_id"`
	RPCURL               string          `mapstructure:"rpc_url"`
	StartBlock           uint64          `mapstructure:"start_block"`
	BlockHeadTTL         time.Duration   `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration   `mapstructure:"block_head_stale_window"`
	BlockTimestampTTL    time.Duration   `mapstructure:"block_timestamp_ttl"` // 0 caches forever
	Subgraphs            SubgraphsConfig `mapstructure:"subgraphs"`
}

// ChainsConfig holds the primary and secondary chain configuration
type ChainsConfig struct {
	L1 ChainConfig `mapstructure:"l1"`
	L2 ChainConfig `mapstructure:"l2"`
}

// RateLimitConfig holds the client-side subgraph request limit.
// A zero RequestsPerSecond disables limiting; an empty RedisAddr limits per replica.
type RateLimitConfig struct {
	RequestsPerSecond       int           `mapstructure:"requests_per_second"`
	Burst                   int           `mapstructure:"burst"`
	MaxWait                 time.Duration `mapstructure:"max_wait"`
	LocalFallbackMultiplier float64       `mapstructure:"local_fallback_multiplier"`
	RedisAddr               string        `mapstructure:"redis_addr"`
	RedisPassword           string        `mapstructure:"redis_password"`
	RedisDB                 int           `mapstructure:"redis_db"`
	RedisKeyPrefix          string        `mapstructure:"redis_key_prefix"`
}

// ResolverConfig holds ownership resolution configuration
type ResolverConfig struct {
	ToleranceWindow     time.Duration   `mapstructure:"tolerance_window"`
	MaxInputCardinality int             `mapstructure:"max_input_cardinality"`
	PageSize            int             `mapstructure:"page_size"`
	MaxConcurrency      int             `mapstructure:"max_concurrency"`
	HTTPTimeout         time.Duration   `mapstructure:"http_timeout"`
	RateLimitMaxWait    time.Duration   `mapstructure:"rate_limit_max_wait"`
	RateLimit           RateLimitConfig `mapstructure:"rate_limit"`
	Chains              ChainsConfig    `mapstructure:"chains"`
}

// Chain returns the configuration for a chain
func (c *ResolverConfig) Chain(chain domain.Chain) (ChainConfig, error) {
	switch chain {
	case domain.ChainL1:
		return c.Chains.L1, nil
	case domain.ChainL2:
		return c.Chains.L2, nil
	default:
		return ChainConfig{}, fmt.Errorf("%w: %s", domain.ErrUnknownChain, chain)
	}
}

// Validate checks the resolver configuration
func (c *ResolverConfig) Validate() error {
	if c.ToleranceWindow < 0 {
		return errors.New("resolver.tolerance_window must not be negative")
	}
	if c.MaxInputCardinality <= 0 {
		return errors.New("resolver.max_input_cardinality must be positive")
	}
	if c.PageSize <= 0 {
		return errors.New("resolver.page_size must be positive")
	}
	if c.MaxConcurrency <= 0 {
		return errors.New("resolver.max_concurrency must be positive")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("resolver.rate_limit.requests_per_second must not be negative")
	}
	if !c.Chains.L1.Enabled && !c.Chains.L2.Enabled {
		return errors.New("at least one chain must be enabled")
	}
	for _, chain := range domain.AllChains {
		cc, _ := c.Chain(chain)
		if !cc.Enabled {
			continue
		}
		if cc.RPCURL == "" {
			return fmt.Errorf("resolver.chains.%s.rpc_url is required", chain)
		}
	}
	return nil
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Auth       AuthConfig     `mapstructure:"auth"`
	Resolver   ResolverConfig `mapstructure:"resolver"`
}

// CheckConfig holds configuration for the ownership-check command
type CheckConfig struct {
	BaseConfig `mapstructure:",squash"`
	Resolver   ResolverConfig `mapstructure:"resolver"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	setResolverDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Resolver.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}

	return &cfg, nil
}

// LoadCheckConfig loads configuration for the ownership-check command
func LoadCheckConfig(configFile string, envPath string) (*CheckConfig, error) {
	v := configureViper("ownership-check", configFile, envPath)
	setResolverDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg CheckConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Resolver.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resolver config: %w", err)
	}

	return &cfg, nil
}

// setResolverDefaults sets the defaults shared by every service embedding ResolverConfig
func setResolverDefaults(v *viper.Viper) {
	v.SetDefault("resolver.tolerance_window", domain.DEFAULT_TOLERANCE_WINDOW)
	v.SetDefault("resolver.max_input_cardinality", domain.DEFAULT_MAX_INPUT_CARDINALITY)
	v.SetDefault("resolver.page_size", domain.DEFAULT_PAGE_SIZE)
	v.SetDefault("resolver.max_concurrency", domain.DEFAULT_MAX_CONCURRENCY)
	v.SetDefault("resolver.http_timeout", "30s")
	v.SetDefault("resolver.rate_limit_max_wait", "1m")
	v.SetDefault("resolver.rate_limit.requests_per_second", 0)
	v.SetDefault("resolver.rate_limit.max_wait", "1m")
	v.SetDefault("resolver.rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("resolver.chains.l1.enabled", true)
	v.SetDefault("resolver.chains.l1.chain_id", "eip155:1")
	v.SetDefault("resolver.chains.l1.block_head_ttl", "12s")
	v.SetDefault("resolver.chains.l1.block_head_stale_window", "1m")
	v.SetDefault("resolver.chains.l2.enabled", true)
	v.SetDefault("resolver.chains.l2.chain_id", "eip155:137")
	v.SetDefault("resolver.chains.l2.block_head_ttl", "2s")
	v.SetDefault("resolver.chains.l2.block_head_stale_window", "30s")
}

// readInConfig reads the config file, tolerating a missing file so env-only setups work
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// FF_OWNERSHIP_RESOLVER_CHAINS_L1_RPC_URL -> resolver.chains.l1.rpc_url
	v.SetEnvPrefix("FF_OWNERSHIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvKeys(v)

	return v
}

// bindAllEnvKeys binds nested keys so Unmarshal picks them up from the environment
// even when no config file mentions them
func bindAllEnvKeys(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"auth.jwt_public_key",
		"auth.api_keys",
		"resolver.tolerance_window",
		"resolver.max_input_cardinality",
		"resolver.page_size",
		"resolver.max_concurrency",
		"resolver.http_timeout",
		"resolver.rate_limit_max_wait",
		"resolver.rate_limit.requests_per_second",
		"resolver.rate_limit.burst",
		"resolver.rate_limit.max_wait",
		"resolver.rate_limit.local_fallback_multiplier",
		"resolver.rate_limit.redis_addr",
		"resolver.rate_limit.redis_password",
		"resolver.rate_limit.redis_db",
		"resolver.rate_limit.redis_key_prefix",
	}

	for _, chain := range []string{"l1", "l2"} {
		prefix := "resolver.chains." + chain + "."
		keys = append(keys,
			prefix+"enabled",
			prefix+"chain_id",
			prefix+"rpc_url",
			prefix+"start_block",
			prefix+"block_head_ttl",
			prefix+"block_head_stale_window",
			prefix+"block_timestamp_ttl",
			prefix+"subgraphs.marketplace",
			prefix+"subgraphs.collections",
			prefix+"subgraphs.third_party",
		)
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

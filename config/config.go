package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		RateLimit RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
	} `json:"http" yaml:"http"`

	Storage StorageConfig `json:"storage" yaml:"storage"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth AuthConfig `json:"auth" yaml:"auth"`
}

// StorageConfig selects the entity store implementation.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
}

// RateLimitConfig throttles credential endpoints per client IP.
// A zero LoginRequests disables throttling.
type RateLimitConfig struct {
	LoginRequests int           `json:"loginRequests" yaml:"loginRequests"`
	Window        time.Duration `json:"window" yaml:"window"`
}

// JWTConfig is the immutable token codec configuration.
type JWTConfig struct {
	Secret     string        `json:"secret" yaml:"secret"`
	Issuer     string        `json:"issuer" yaml:"issuer"`
	AccessTTL  time.Duration `json:"accessTTL" yaml:"accessTTL"`
	RefreshTTL time.Duration `json:"refreshTTL" yaml:"refreshTTL"`

	IncludeUserDetails bool `json:"includeUserDetails" yaml:"includeUserDetails"`
	IncludeRoles       bool `json:"includeRoles" yaml:"includeRoles"`
	IncludePermissions bool `json:"includePermissions" yaml:"includePermissions"`
	IncludeAuthorities bool `json:"includeAuthorities" yaml:"includeAuthorities"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost  int    `json:"bcryptCost" yaml:"bcryptCost"`
	DefaultRole string `json:"defaultRole" yaml:"defaultRole"`
	ClientID    string `json:"clientId" yaml:"clientId"`

	// ReaperInterval controls how often expired refresh tokens are purged. Zero disables the reaper.
	ReaperInterval time.Duration `json:"reaperInterval" yaml:"reaperInterval"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// defaulter is implemented by config types that seed values before decoding,
// so keys missing from YAML and env keep a sensible value.
type defaulter interface {
	applyDefaults()
}

// Default returns a Config populated with the built-in defaults only.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	c.Env.Log.Level = "info"
	c.HTTP.Port = 8080
	c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	c.HTTP.RateLimit = RateLimitConfig{LoginRequests: 10, Window: time.Minute}
	c.Storage.Driver = StorageDriverPostgres
	c.JWT = JWTConfig{
		Issuer:             "/api/v1",
		AccessTTL:          time.Hour,
		RefreshTTL:         7 * 24 * time.Hour,
		IncludeUserDetails: true,
		IncludeRoles:       true,
		IncludePermissions: true,
		IncludeAuthorities: true,
	}
	c.Auth = AuthConfig{
		BcryptCost:     12,
		DefaultRole:    "USER",
		ClientID:       "identity-service",
		ReaperInterval: time.Hour,
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	if d, ok := any(cfg).(defaulter); ok {
		d.applyDefaults()
	}
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: JWT_ACCESSTTL -> jwt.accessTTL (not jwt.accessttl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Postgres == nil {
			return errors.New("postgres configuration is required for the postgres storage driver")
		}
	default:
		return errors.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret is not set, provide it through JWT_SECRET")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt.accessTTL and jwt.refreshTTL must be positive")
	}
	if strings.TrimSpace(c.Auth.DefaultRole) == "" {
		return errors.New("auth.defaultRole must not be empty")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}

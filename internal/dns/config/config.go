package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Host is the IP address the DNS server binds to. Empty binds all interfaces.
	Host string `koanf:"host" validate:"omitempty,ip"`

	// Port is the network port the DNS server will bind to.
	Port int `koanf:"port" validate:"required,gte=1,lte=65535"`

	// ZoneDir is the directory where zone files are located.
	ZoneDir string `koanf:"zone_dir" validate:"required"`

	// ZoneBackend selects where loaded zones are served from.
	ZoneBackend string `koanf:"zone_backend" validate:"required,oneof=memory bolt"`

	// ZoneDB is the bbolt snapshot path used by the bolt backend.
	ZoneDB string `koanf:"zone_db" validate:"required_if=ZoneBackend bolt"`

	// ZoneCacheSize bounds the decoded zones kept hot by the bolt backend.
	ZoneCacheSize int `koanf:"zone_cache_size" validate:"required,gte=1"`

	// DefaultTTL applies to zone entries that omit a ttl.
	DefaultTTL uint32 `koanf:"default_ttl" validate:"lte=2147483647"`

	// MaxInflight bounds concurrently handled requests.
	MaxInflight int `koanf:"max_inflight" validate:"required,gte=1"`

	// APIPort is the management API port. 0 disables the API.
	APIPort int `koanf:"api_port" validate:"gte=0,lte=65535"`
}

// DEFAULT_APP_CONFIG defines the default application configuration settings for the DNS service.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:           "prod",
	LogLevel:      "info",
	Host:          "",
	Port:          53,
	ZoneDir:       "/etc/rr-authdns/zones/",
	ZoneBackend:   "memory",
	ZoneDB:        "/var/lib/rr-authdns/zones.db",
	ZoneCacheSize: 1000,
	DefaultTTL:    300,
	MaxInflight:   256,
	APIPort:       0,
}

// envLoader loads environment variables with the prefix "DNS_",
// lowercasing keys and removing the prefix. It can be mocked in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := defaultLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	err = envLoader(k)
	if err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.Struct(&cfg)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// ListenAddr returns the host:port the DNS server binds to.
func (c *AppConfig) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// APIAddr returns the management API bind address, or "" when the API is disabled.
func (c *AppConfig) APIAddr() string {
	if c.APIPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.APIPort))
}

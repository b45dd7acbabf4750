package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from every environment variable before it becomes a koanf key.
const envPrefix = "RRCODEC_"

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Port is the UDP port the serve command listens on.
	Port int `koanf:"port" validate:"gte=1,lte=65535"`

	// ZoneDir is the directory where zone files are located.
	ZoneDir string `koanf:"zone_dir" validate:"required"`

	// TTL is applied to every record loaded from a zone file.
	TTL uint32 `koanf:"ttl" validate:"gte=1"`

	// DBPath is the bbolt file holding imported records.
	DBPath string `koanf:"db_path" validate:"required"`

	// CacheSize bounds the lookup cache. Zero disables caching.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// BloomFPRate is the target false-positive rate of the owner-name prefilter.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"fp_rate"`
}

// DEFAULT_APP_CONFIG defines the default settings of the codec tooling.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:         "prod",
	LogLevel:    "info",
	Port:        53,
	ZoneDir:     "/etc/rr-codec/zones/",
	TTL:         300,
	DBPath:      "/var/lib/rr-codec/records.db",
	CacheSize:   1000,
	BloomFPRate: 0.01,
}

// validFPRate accepts a probability strictly between 0 and 1.
func validFPRate(fl validator.FieldLevel) bool {
	p := fl.Field().Float()
	return p > 0 && p < 1
}

// envLoader loads environment variables with the prefix "RRCODEC_".
// It can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "fp_rate" tag.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("fp_rate", validFPRate)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

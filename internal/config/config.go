package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	seederrors "github.com/Rana718/ghseed/internal/errors"
)

// ExternalIDStrategy selects how repository external ids are assigned.
type ExternalIDStrategy string

const (
	// StrategySequential draws ids from a counter threaded through the run.
	StrategySequential ExternalIDStrategy = "sequential"
	// StrategyRandom draws independent N-digit ids.
	StrategyRandom ExternalIDStrategy = "random"
)

// Sampling selects how the enabled repositories of a user are picked.
type Sampling string

const (
	// SamplingReplacement samples with replacement; duplicates collapse.
	SamplingReplacement Sampling = "replacement"
	// SamplingDistinct samples without replacement.
	SamplingDistinct Sampling = "distinct"
)

type Config struct {
	Database Database   `json:"database" mapstructure:"database"`
	Seed     SeedConfig `json:"seed" mapstructure:"seed"`
	Logger   Logger     `json:"logger" mapstructure:"logger"`
	// TokenSecret seals remote access tokens at rest.
	TokenSecret string `json:"token_secret" mapstructure:"token_secret"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider" validate:"oneof=postgresql postgres mysql sqlite sqlite3"`
	URLEnv   string `json:"url_env" mapstructure:"url_env" validate:"required"`
	// Driver picks the PostgreSQL client: "pgx" (default) or "pq".
	Driver string `json:"driver" mapstructure:"driver" validate:"omitempty,oneof=pgx pq"`
}

type Logger struct {
	Level  string `json:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `json:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
	// OutputPath is stdout, stderr or a file path.
	OutputPath string `json:"output_path" mapstructure:"output_path"`
}

// SeedConfig holds the options of one seed run.
type SeedConfig struct {
	UserCount           int                `json:"user_count" mapstructure:"user_count" validate:"gt=0"`
	ReposPerUser        int                `json:"repos_per_user" mapstructure:"repos_per_user" validate:"gt=0"`
	EnabledReposPerUser int                `json:"enabled_repos_per_user" mapstructure:"enabled_repos_per_user" validate:"gte=0,ltefield=ReposPerUser"`
	PurgeExisting       bool               `json:"purge_existing" mapstructure:"purge_existing"`
	ExternalIDStrategy  ExternalIDStrategy `json:"external_id_strategy" mapstructure:"external_id_strategy" validate:"oneof=sequential random"`
	ExternalIDStart     int64              `json:"external_id_start" mapstructure:"external_id_start" validate:"gt=0"`
	ExternalIDDigits    int                `json:"external_id_digits" mapstructure:"external_id_digits" validate:"gte=1,lte=9"`
	HookDigits          int                `json:"hook_digits" mapstructure:"hook_digits" validate:"gte=1,lte=9"`
	UsernameLength      int                `json:"username_length" mapstructure:"username_length" validate:"gte=1,lte=200"`
	DomainLength        int                `json:"domain_length" mapstructure:"domain_length" validate:"gte=1,lte=200"`
	// FirstUserID of 0 continues after the largest id already stored.
	FirstUserID     int64    `json:"first_user_id" mapstructure:"first_user_id" validate:"gte=0"`
	ClientID        string   `json:"client_id" mapstructure:"client_id" validate:"required,max=255"`
	EnabledSampling Sampling `json:"enabled_sampling" mapstructure:"enabled_sampling" validate:"oneof=replacement distinct"`
	ReleasesPerRepo int      `json:"releases_per_repo" mapstructure:"releases_per_repo" validate:"gte=0"`
	BatchSize       int      `json:"batch_size" mapstructure:"batch_size" validate:"gt=0"`
	// RandomSeed of 0 seeds from the clock.
	RandomSeed int64 `json:"random_seed" mapstructure:"random_seed"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DefaultSeedConfig returns the options used when nothing is configured.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		UserCount:           10,
		ReposPerUser:        10,
		EnabledReposPerUser: 5,
		ExternalIDStrategy:  StrategySequential,
		ExternalIDStart:     1,
		ExternalIDDigits:    8,
		HookDigits:          8,
		UsernameLength:      20,
		DomainLength:        10,
		FirstUserID:         1,
		ClientID:            "github",
		EnabledSampling:     SamplingReplacement,
		BatchSize:           100,
	}
}

// SetDefaults registers defaults on v so that unset keys still unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultSeedConfig()
	v.SetDefault("database.provider", "postgresql")
	v.SetDefault("database.url_env", "DATABASE_URL")
	v.SetDefault("database.driver", "pgx")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output_path", "stderr")
	v.SetDefault("token_secret", "CHANGE_ME")
	v.SetDefault("seed.user_count", d.UserCount)
	v.SetDefault("seed.repos_per_user", d.ReposPerUser)
	v.SetDefault("seed.enabled_repos_per_user", d.EnabledReposPerUser)
	v.SetDefault("seed.purge_existing", d.PurgeExisting)
	v.SetDefault("seed.external_id_strategy", string(d.ExternalIDStrategy))
	v.SetDefault("seed.external_id_start", d.ExternalIDStart)
	v.SetDefault("seed.external_id_digits", d.ExternalIDDigits)
	v.SetDefault("seed.hook_digits", d.HookDigits)
	v.SetDefault("seed.username_length", d.UsernameLength)
	v.SetDefault("seed.domain_length", d.DomainLength)
	v.SetDefault("seed.first_user_id", d.FirstUserID)
	v.SetDefault("seed.client_id", d.ClientID)
	v.SetDefault("seed.enabled_sampling", string(d.EnabledSampling))
	v.SetDefault("seed.releases_per_repo", d.ReleasesPerRepo)
	v.SetDefault("seed.batch_size", d.BatchSize)
	v.SetDefault("seed.random_seed", d.RandomSeed)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	return validateStruct(c)
}

// ValidateConnection checks everything but the seed section, which only the
// seed command reads and validates after its flags are applied.
func (c *Config) ValidateConnection() error {
	if err := validateStruct(c.Database); err != nil {
		return err
	}
	return validateStruct(c.Logger)
}

// Validate checks the seed options. It never touches the store.
func (s SeedConfig) Validate() error {
	return validateStruct(s)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return seederrors.NewConfigurationError("invalid configuration", err.Error())
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, fieldErrorMessage(fe))
	}
	return seederrors.NewConfigurationError("invalid configuration", strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, jsonName(param))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func jsonName(fieldName string) string {
	if f, ok := reflect.TypeOf(SeedConfig{}).FieldByName(fieldName); ok {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	}
	return fieldName
}

// GetDatabaseURL reads the connection string from the configured variable.
func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", seederrors.NewConfigurationError(
			"database URL not found",
			fmt.Sprintf("environment variable %s is empty", c.Database.URLEnv))
	}
	return dbURL, nil
}

// NormalizedProvider folds provider aliases.
func (c *Config) NormalizedProvider() string {
	switch c.Database.Provider {
	case "postgresql", "postgres":
		return "postgresql"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return c.Database.Provider
	}
}

package configuration

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/pkg/errors"
	"priceghost/internal/logger"
)

type Config struct {
	ServerAddress  string
	DatabaseURI    string
	RedisURI       string
	CheckInterval  time.Duration
	SweepBatchSize int
	FetchTimeout   time.Duration
	LogLevel       logger.Level
	LogToFile      bool
	AuthSecretKey  jwk.Key
	CronSecret     string
	ResendAPIKey   string
	EmailFrom      string
	UserAgents     []string
}

type tomlConfig struct {
	ServerAddress  string   `toml:"server_address"`
	DatabaseURI    string   `toml:"database_uri"`
	RedisURI       string   `toml:"redis_uri"`
	CheckInterval  string   `toml:"check_interval"`
	SweepBatchSize int      `toml:"sweep_batch_size"`
	FetchTimeout   string   `toml:"fetch_timeout"`
	LogLevel       string   `toml:"log_level"`
	LogToFile      bool     `toml:"log_to_file"`
	AuthSecretKey  string   `toml:"auth_secret_key"`
	CronSecret     string   `toml:"cron_secret"`
	ResendAPIKey   string   `toml:"resend_api_key"`
	EmailFrom      string   `toml:"email_from"`
	UserAgents     []string `toml:"user_agents"`
}

func GetConfig(path string) (*Config, error) {
	var tc tomlConfig
	_, err := toml.DecodeFile(path, &tc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode toml file with path: %s", path)
	}

	if tc.ServerAddress == "" {
		tc.ServerAddress = "localhost:8888"
	}
	if tc.DatabaseURI == "" {
		tc.DatabaseURI = "mongodb://localhost:27017"
	}
	if tc.RedisURI == "" {
		tc.RedisURI = "redis://localhost:6379"
	}
	if tc.LogLevel == "" {
		tc.LogLevel = "INFO"
	}
	logLevel, err := logger.ParseLevel(tc.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse log_level: %s", tc.LogLevel)
	}

	if tc.CheckInterval == "" {
		return nil, errors.New("check_interval is not set")
	}
	checkInterval, err := time.ParseDuration(tc.CheckInterval)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse check_interval: %s", tc.CheckInterval)
	}
	if checkInterval < 1*time.Minute {
		return nil, errors.Errorf("check_interval too short (%v), minimum interval: 1m", checkInterval)
	}

	fetchTimeout := 15 * time.Second
	if tc.FetchTimeout != "" {
		if fetchTimeout, err = time.ParseDuration(tc.FetchTimeout); err != nil {
			return nil, errors.Wrapf(err, "failed to parse fetch_timeout: %s", tc.FetchTimeout)
		}
		if fetchTimeout < 1*time.Second || fetchTimeout > 60*time.Second {
			return nil, errors.Errorf("fetch_timeout out of range (%v), must be between 1s and 60s", fetchTimeout)
		}
	}

	if tc.SweepBatchSize == 0 {
		tc.SweepBatchSize = 10
	}
	if tc.SweepBatchSize < 1 || tc.SweepBatchSize > 100 {
		return nil, errors.Errorf("sweep_batch_size out of range (%d), must be between 1 and 100", tc.SweepBatchSize)
	}

	if tc.AuthSecretKey == "" {
		return nil, errors.New("auth_secret_key is not set")
	}
	authSecretKey, err := jwk.FromRaw([]byte(tc.AuthSecretKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create key from auth_secret_key")
	}

	if tc.CronSecret == "" {
		return nil, errors.New("cron_secret is not set")
	}

	if tc.EmailFrom == "" {
		tc.EmailFrom = "PriceGhost <alerts@priceghost.app>"
	}

	return &Config{
		ServerAddress:  tc.ServerAddress,
		DatabaseURI:    tc.DatabaseURI,
		RedisURI:       tc.RedisURI,
		CheckInterval:  checkInterval,
		SweepBatchSize: tc.SweepBatchSize,
		FetchTimeout:   fetchTimeout,
		LogLevel:       logLevel,
		LogToFile:      tc.LogToFile,
		AuthSecretKey:  authSecretKey,
		CronSecret:     tc.CronSecret,
		ResendAPIKey:   tc.ResendAPIKey,
		EmailFrom:      tc.EmailFrom,
		UserAgents:     tc.UserAgents,
	}, nil
}

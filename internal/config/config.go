package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRPCURL         = "https://rpc.hyperliquid.xyz/evm"
	DefaultVaultAddress   = "0x7E698EEa0709e4a0Dbbd790fC493D60691801157"
	DefaultCheckInterval  = 60 * time.Second
	DefaultConnectTimeout = 15 * time.Second
	DefaultAssetSymbol    = "USDe"
	DefaultShareSymbol    = "HLPe"
)

// Config models the monitor settings, read from an optional YAML file and the environment.
type Config struct {
	RPCURL         string          `yaml:"rpc_url"`
	VaultAddress   string          `yaml:"vault_address"`
	CheckInterval  Interval        `yaml:"check_interval"`
	ConnectTimeout Interval        `yaml:"connect_timeout"`
	WebhookURL     string          `yaml:"webhook_url"`
	MetricsAddr    string          `yaml:"metrics_addr"`
	AssetSymbol    string          `yaml:"asset_symbol"`
	ShareSymbol    string          `yaml:"share_symbol"`
	Telegram       *TelegramConfig `yaml:"telegram"`
}

// TelegramConfig configures Telegram bot notifications.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// Interval accepts either a whole number of seconds or a Go duration string.
type Interval time.Duration

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration { return time.Duration(i) }

// UnmarshalYAML decodes "60", 60 or "1m30s".
func (i *Interval) UnmarshalYAML(node *yaml.Node) error {
	d, err := ParseInterval(node.Value)
	if err != nil {
		return err
	}
	*i = Interval(d)
	return nil
}

// ParseInterval parses a whole number of seconds or a Go duration string.
func ParseInterval(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, errors.New("empty interval")
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", v)
	}
	return d, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RPCURL:         DefaultRPCURL,
		VaultAddress:   DefaultVaultAddress,
		CheckInterval:  Interval(DefaultCheckInterval),
		ConnectTimeout: Interval(DefaultConnectTimeout),
		AssetSymbol:    DefaultAssetSymbol,
		ShareSymbol:    DefaultShareSymbol,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if non-empty),
// then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads variables from an env file into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays settings found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("RPC_URL"); ok && v != "" {
		c.RPCURL = v
	}
	if v, ok := lookup("VAULT_MANAGER_ADDRESS"); ok && v != "" {
		c.VaultAddress = v
	}
	if v, ok := lookup("CHECK_INTERVAL"); ok && v != "" {
		d, err := ParseInterval(v)
		if err != nil {
			return fmt.Errorf("CHECK_INTERVAL: %w", err)
		}
		c.CheckInterval = Interval(d)
	}
	if v, ok := lookup("CONNECT_TIMEOUT"); ok && v != "" {
		d, err := ParseInterval(v)
		if err != nil {
			return fmt.Errorf("CONNECT_TIMEOUT: %w", err)
		}
		c.ConnectTimeout = Interval(d)
	}
	if v, ok := lookup("WEBHOOK_URL"); ok {
		c.WebhookURL = v
	}
	if v, ok := lookup("METRICS_ADDR"); ok {
		c.MetricsAddr = v
	}
	if v, ok := lookup("ASSET_SYMBOL"); ok {
		c.AssetSymbol = v
	}
	if v, ok := lookup("SHARE_SYMBOL"); ok {
		c.ShareSymbol = v
	}

	token, hasToken := lookup("TELEGRAM_BOT_TOKEN")
	chat, hasChat := lookup("TELEGRAM_CHAT_ID")
	if hasToken || hasChat {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		if hasToken {
			c.Telegram.BotToken = token
		}
		if hasChat {
			c.Telegram.ChatID = chat
		}
	}

	return nil
}

// Validate checks that the configuration can drive the monitor.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("rpc_url must be provided")
	}
	if !common.IsHexAddress(c.VaultAddress) {
		return fmt.Errorf("vault address %q is not a valid hex string", c.VaultAddress)
	}
	if c.CheckInterval <= 0 {
		return errors.New("check_interval must be positive")
	}
	if tg := c.Telegram; tg != nil && (tg.BotToken != "" || tg.ChatID != "") {
		if tg.BotToken == "" {
			return errors.New("telegram.bot_token is required")
		}
		if tg.ChatID == "" {
			return errors.New("telegram.chat_id is required")
		}
	}
	return nil
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram != nil && c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mtmgate/sms"
	"mtmgate/zosmf"
)

type Config struct {
	ListenAddr string `yaml:"listenAddr"`
	DBPath     string `yaml:"dbPath"`
	// WebhookURL is the public URL Twilio posts to; needed for webhook
	// signature validation.
	WebhookURL string           `yaml:"webhookUrl"`
	Zosmf      zosmf.Config     `yaml:"zosmf"`
	Twilio     sms.TwilioConfig `yaml:"twilio"`
}

// LoadConfig builds the immutable process config: defaults, then the YAML
// file, then the environment, then flags.
func LoadConfig() (Config, error) {
	var file, addr, dbPath string
	flag.StringVar(&file, "config", envOrDefault("MTMGATE_CONFIG", ""), "YAML config file")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides config file)")
	flag.StringVar(&dbPath, "db", "", "SQLite database path (overrides config file)")
	flag.Parse()

	return buildConfig(file, addr, dbPath)
}

// buildConfig layers the sources lowest-precedence first, so an explicit
// flag always wins over the file and the environment.
func buildConfig(file, addr, dbPath string) (Config, error) {
	cfg := defaultConfig()

	if file != "" {
		if err := loadConfigFile(&cfg, file); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("MTMGATE_ADDR"); v != "" {
		cfg.ListenAddr = v
	} else if port := os.Getenv("PORT"); port != "" {
		// Railway, Render, etc. set PORT
		cfg.ListenAddr = ":" + port
	}
	if v := os.Getenv("MTMGATE_DB"); v != "" {
		cfg.DBPath = v
	}
	// Secrets come from the environment in deployed setups
	if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		cfg.Twilio.AccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		cfg.Twilio.AuthToken = v
	}

	if addr != "" {
		cfg.ListenAddr = addr
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		ListenAddr: ":8090",
		DBPath:     "mtmgate.db",
		Zosmf: zosmf.Config{
			Host:            "192.86.32.153",
			Port:            10443,
			ResponseTimeout: 600,
			Profile: zosmf.TsoProfile{
				Account:        "fb3",
				CharacterSet:   "697",
				CodePage:       "1047",
				Columns:        80,
				LogonProcedure: "IZUFPROC",
				RegionSize:     4096,
				Rows:           24,
			},
		},
		Twilio: sms.TwilioConfig{
			FromNumber: "+17656000686",
		},
	}
}

func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

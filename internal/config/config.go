package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the appliance.
type Config struct {
	Timing     Timing     `yaml:"timing"`
	Display    Display    `yaml:"display"`
	Interfaces Interfaces `yaml:"interfaces"`
	Paths      Paths      `yaml:"paths"`
	Logging    Logging    `yaml:"logging"`
}

type Timing struct {
	PayloadTimeout   time.Duration `yaml:"payload_timeout"`
	ConfirmWindow    time.Duration `yaml:"confirm_window"`
	RenderIdle       time.Duration `yaml:"render_idle"`
	RenderActive     time.Duration `yaml:"render_active"`
	BacklightTimeout time.Duration `yaml:"backlight_timeout"`
	DataRefresh      time.Duration `yaml:"data_refresh"`
}

// UnmarshalYAML accepts Go duration strings ("300s", "2m") for the
// timing fields. Absent fields keep whatever value the target already
// holds, so file values layer over the defaults.
func (t *Timing) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		PayloadTimeout   string `yaml:"payload_timeout"`
		ConfirmWindow    string `yaml:"confirm_window"`
		RenderIdle       string `yaml:"render_idle"`
		RenderActive     string `yaml:"render_active"`
		BacklightTimeout string `yaml:"backlight_timeout"`
		DataRefresh      string `yaml:"data_refresh"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	fields := []struct {
		dst *time.Duration
		src string
	}{
		{&t.PayloadTimeout, raw.PayloadTimeout},
		{&t.ConfirmWindow, raw.ConfirmWindow},
		{&t.RenderIdle, raw.RenderIdle},
		{&t.RenderActive, raw.RenderActive},
		{&t.BacklightTimeout, raw.BacklightTimeout},
		{&t.DataRefresh, raw.DataRefresh},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		d, err := time.ParseDuration(f.src)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", f.src, err)
		}
		*f.dst = d
	}
	return nil
}

type Display struct {
	AlertCapacity int `yaml:"alert_capacity"`
	MenuRows      int `yaml:"menu_rows"`
	ProcessRows   int `yaml:"process_rows"`
}

type Interfaces struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Monitor   string `yaml:"monitor"`
	Ethernet  string `yaml:"ethernet"`
	USB       string `yaml:"usb"`
}

type Paths struct {
	BaseDir     string `yaml:"base_dir"`
	LootDir     string `yaml:"loot_dir"`
	Credentials string `yaml:"credentials"`
}

type Logging struct {
	FilePath string `yaml:"file"`
	Trace    bool   `yaml:"trace"`
}

const (
	envConfigFile = "KRAKENPI_CONFIG"
	envBaseDir    = "KRAKENPI_BASE_DIR"
	envLootDir    = "KRAKENPI_LOOT_DIR"
	envPrimary    = "KRAKENPI_IFACE"
	envSecondary  = "KRAKENPI_IFACE_SECONDARY"
	envTimeout    = "KRAKENPI_PAYLOAD_TIMEOUT"
	envAlertCap   = "KRAKENPI_ALERT_CAPACITY"
	envTrace      = "KRAKENPI_TRACE"
	envLogFile    = "KRAKENPI_LOG_FILE"
)

// Default returns the built-in configuration for a stock appliance.
func Default() Config {
	base := "/root/krakenpi"
	return Config{
		Timing: Timing{
			PayloadTimeout:   300 * time.Second,
			ConfirmWindow:    3 * time.Second,
			RenderIdle:       500 * time.Millisecond,
			RenderActive:     100 * time.Millisecond,
			BacklightTimeout: 60 * time.Second,
			DataRefresh:      2 * time.Second,
		},
		Display: Display{
			AlertCapacity: 50,
			MenuRows:      7,
			ProcessRows:   20,
		},
		Interfaces: Interfaces{
			Primary:   "wlan0",
			Secondary: "wlan1",
			Monitor:   "wlan1mon",
			Ethernet:  "eth0",
			USB:       "usb0",
		},
		Paths: Paths{
			BaseDir:     base,
			LootDir:     filepath.Join(base, "loot"),
			Credentials: filepath.Join(base, "creds.json"),
		},
		Logging: Logging{},
	}
}

// Load resolves configuration from defaults, an optional YAML file, and
// environment overrides, in that order of precedence.
func Load() (Config, error) {
	return LoadEnv(os.Environ())
}

// LoadEnv allows tests to supply a specific environment.
func LoadEnv(environ []string) (Config, error) {
	env := parseEnv(environ)
	cfg := Default()

	if path := envOrDefault(env, envConfigFile, ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := envOrDefault(env, envBaseDir, ""); v != "" {
		cfg.Paths.BaseDir = v
		cfg.Paths.LootDir = filepath.Join(v, "loot")
		cfg.Paths.Credentials = filepath.Join(v, "creds.json")
	}
	if v := envOrDefault(env, envLootDir, ""); v != "" {
		cfg.Paths.LootDir = v
	}
	if v := envOrDefault(env, envPrimary, ""); v != "" {
		cfg.Interfaces.Primary = v
	}
	if v := envOrDefault(env, envSecondary, ""); v != "" {
		cfg.Interfaces.Secondary = v
		cfg.Interfaces.Monitor = v + "mon"
	}
	if v := envOrInt(env, envTimeout, 0); v > 0 {
		cfg.Timing.PayloadTimeout = time.Duration(v) * time.Second
	}
	if v := envOrInt(env, envAlertCap, 0); v > 0 {
		cfg.Display.AlertCapacity = v
	}
	cfg.Logging.Trace = envOrBool(env, envTrace, cfg.Logging.Trace)
	if v := envOrDefault(env, envLogFile, ""); v != "" {
		cfg.Logging.FilePath = v
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.Timing.PayloadTimeout <= 0 {
		return fmt.Errorf("payload timeout must be positive (got %v)", cfg.Timing.PayloadTimeout)
	}
	if cfg.Timing.ConfirmWindow <= 0 {
		return fmt.Errorf("confirm window must be positive (got %v)", cfg.Timing.ConfirmWindow)
	}
	if cfg.Display.AlertCapacity <= 0 {
		return fmt.Errorf("alert capacity must be positive (got %d)", cfg.Display.AlertCapacity)
	}
	if cfg.Display.MenuRows <= 0 {
		return fmt.Errorf("menu rows must be positive (got %d)", cfg.Display.MenuRows)
	}
	if cfg.Interfaces.Primary == "" {
		return fmt.Errorf("primary interface must be set")
	}
	if cfg.Paths.BaseDir == "" {
		return fmt.Errorf("base directory must be set")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"signup_e2e/domain/entities"
)

const (
	EnvLocal      = "local"
	EnvStaging    = "staging"
	EnvProduction = "production"

	defaultEnv = EnvStaging
)

// TimeoutConfig holds the runner-level bounds of an environment
type TimeoutConfig struct {
	Default    time.Duration `json:"default"`
	Navigation time.Duration `json:"navigation"`
}

// Environment is the resolved configuration of one test environment.
// It is built once by Load and passed to whatever needs it.
type Environment struct {
	Name    string            `json:"name"`
	BaseURL string            `json:"base_url"`
	APIURL  string            `json:"api_url,omitempty"`
	Timeout TimeoutConfig     `json:"timeout"`
	Tiers   entities.Timeouts `json:"tiers"`
	// Retries is how many times a failed flow is re-run.
	Retries          int           `json:"retries"`
	Headless         bool          `json:"headless"`
	SlowMo           time.Duration `json:"slow_mo"`
	LogLevel         string        `json:"log_level"`
	ResultsDir       string        `json:"results_dir"`
	StorageStatePath string        `json:"storage_state_path,omitempty"`
}

type profile struct {
	baseURL   string
	apiURL    string
	timeoutMS [2]int
	retries   int
}

var profiles = map[string]profile{
	EnvLocal: {
		baseURL:   "http://localhost:3000",
		apiURL:    "http://localhost:3000/api",
		timeoutMS: [2]int{30000, 30000},
		retries:   0,
	},
	EnvStaging: {
		baseURL:   "https://dummy-demo-njndex.web.app",
		apiURL:    "https://dummy-demo-njndex.web.app/api",
		timeoutMS: [2]int{40000, 40000},
		retries:   1,
	},
	EnvProduction: {
		baseURL:   "https://dummy-demo-njndex.web.app",
		apiURL:    "https://dummy-demo-njndex.web.app/api",
		timeoutMS: [2]int{60000, 60000},
		retries:   2,
	},
}

// Load resolves the environment called name. An empty name falls back to
// TEST_ENV, then staging; unknown names resolve to staging as well.
// A .env file in the working directory is read first when present, and
// CONFIG_FILE may point at a yaml/toml/json file with the same keys.
func Load(name string) (*Environment, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	if name == "" {
		name = v.GetString("test_env")
	}
	p, ok := profiles[name]
	if !ok {
		name = defaultEnv
		p = profiles[defaultEnv]
	}

	tiers := entities.DefaultTimeouts()
	v.SetDefault("base_url", p.baseURL)
	v.SetDefault("api_url", p.apiURL)
	v.SetDefault("timeout_default", p.timeoutMS[0])
	v.SetDefault("timeout_navigation", p.timeoutMS[1])
	v.SetDefault("timeout_short", tiers.Short.Milliseconds())
	v.SetDefault("timeout_medium", tiers.Medium.Milliseconds())
	v.SetDefault("timeout_long", tiers.Long.Milliseconds())
	v.SetDefault("timeout_very_long", tiers.VeryLong.Milliseconds())
	v.SetDefault("retries", p.retries)
	v.SetDefault("headless", true)
	v.SetDefault("slow_mo", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("results_dir", "test-results")
	v.SetDefault("storage_state", "")

	env := &Environment{
		Name:             name,
		BaseURL:          strings.TrimRight(v.GetString("base_url"), "/"),
		APIURL:           v.GetString("api_url"),
		Retries:          v.GetInt("retries"),
		Headless:         v.GetBool("headless"),
		LogLevel:         v.GetString("log_level"),
		ResultsDir:       v.GetString("results_dir"),
		StorageStatePath: v.GetString("storage_state"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"timeout_default", &env.Timeout.Default},
		{"timeout_navigation", &env.Timeout.Navigation},
		{"timeout_short", &env.Tiers.Short},
		{"timeout_medium", &env.Tiers.Medium},
		{"timeout_long", &env.Tiers.Long},
		{"timeout_very_long", &env.Tiers.VeryLong},
		{"slow_mo", &env.SlowMo},
	}
	for _, d := range durations {
		value, err := parseMillis(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", strings.ToUpper(d.key), err)
		}
		*d.dst = value
	}

	return env, nil
}

// parseMillis accepts bare integers as milliseconds and anything else as
// a Go duration string.
func parseMillis(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative duration %q", raw)
		}
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", raw)
	}
	return d, nil
}

// ResolveURL turns a relative path into an absolute URL on BaseURL;
// absolute http(s) URLs are returned unchanged.
func (e *Environment) ResolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.BaseURL + path
}

// APIURLOrBase - returns the API URL, or the base URL when unset
func (e *Environment) APIURLOrBase() string {
	if e.APIURL != "" {
		return e.APIURL
	}
	return e.BaseURL
}

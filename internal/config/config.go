// Package config loads planner tunables from an optional YAML file with
// environment-variable overrides layered on top, the same two-stage shape
// the teacher's config.go used (there, env vars only; here, a YAML base
// plus env vars for the handful of values worth overriding per-deployment
// without editing a file).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nomadstar/classplanner/internal/clique"
	"github.com/nomadstar/classplanner/internal/plan"
	"github.com/nomadstar/classplanner/internal/priority"
)

// Config is the on-disk/env-overridable shape of every tunable named in
// §4.7, §5 and §3.
type Config struct {
	ServerPort   string `yaml:"server_port"`
	LogLevel     string `yaml:"log_level"`
	CacheEnabled bool   `yaml:"cache_enabled"`
	CachePath    string `yaml:"cache_path"`

	TimeBudgetMillis int `yaml:"time_budget_ms"`
	NMax             int `yaml:"n_max"`

	Seeds      int `yaml:"seeds"`
	KTotal     int `yaml:"k_total"`
	KMin       int `yaml:"k_min"`
	MaxCourses int `yaml:"max_courses"`

	CriticalityBonus   int     `yaml:"criticality_bonus"`
	UnlockWeight       float64 `yaml:"unlock_weight"`
	OverrideBonus      int     `yaml:"override_bonus"`
	TermProximityGain  int     `yaml:"term_proximity_gain"`
	PreferredTimeBonus int     `yaml:"preferred_time_bonus"`
	DifficultyWeight   float64 `yaml:"difficulty_weight"`
}

// Default mirrors plan.DefaultConfig/clique.DefaultConfig/priority.DefaultConfig
// so a deployment with no config file at all still behaves exactly per
// spec's named constants.
func Default() Config {
	planCfg := plan.DefaultConfig()
	cliqueCfg := clique.DefaultConfig()
	priorityCfg := priority.DefaultConfig()
	return Config{
		ServerPort:         "8080",
		LogLevel:           "info",
		CacheEnabled:       true,
		CachePath:          "planner_cache.db",
		TimeBudgetMillis:   int(planCfg.TimeBudget / time.Millisecond),
		NMax:               planCfg.NMax,
		Seeds:              cliqueCfg.Seeds,
		KTotal:             cliqueCfg.KTotal,
		KMin:               cliqueCfg.KMin,
		MaxCourses:         cliqueCfg.MaxCourses,
		CriticalityBonus:   priorityCfg.CriticalityBonus,
		UnlockWeight:       priorityCfg.UnlockWeight,
		OverrideBonus:      priorityCfg.OverrideBonus,
		TermProximityGain:  priorityCfg.TermProximityGain,
		PreferredTimeBonus: priorityCfg.PreferredTimeBonus,
		DifficultyWeight:   priorityCfg.DifficultyWeight,
	}
}

// Load reads path (if non-empty) as YAML over the defaults, then applies
// environment overrides, matching the teacher's PORT/JWT_SECRET/... env
// vars but under a PLANNER_ prefix.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.ServerPort = getEnv("PLANNER_PORT", cfg.ServerPort)
	cfg.LogLevel = getEnv("PLANNER_LOG_LEVEL", cfg.LogLevel)
	cfg.CachePath = getEnv("PLANNER_CACHE_PATH", cfg.CachePath)
	cfg.CacheEnabled = getEnvBool("PLANNER_CACHE_ENABLED", cfg.CacheEnabled)

	if v, ok := getEnvInt("PLANNER_TIME_BUDGET_MS"); ok {
		cfg.TimeBudgetMillis = v
	}
	if v, ok := getEnvInt("PLANNER_N_MAX"); ok {
		cfg.NMax = v
	}
	if v, ok := getEnvInt("PLANNER_SEEDS"); ok {
		cfg.Seeds = v
	}
	if v, ok := getEnvInt("PLANNER_K_TOTAL"); ok {
		cfg.KTotal = v
	}
	if v, ok := getEnvInt("PLANNER_K_MIN"); ok {
		cfg.KMin = v
	}
	if v, ok := getEnvInt("PLANNER_MAX_COURSES"); ok {
		cfg.MaxCourses = v
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v == "true"
}

func getEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PlanConfig converts the loaded tunables into plan.Config, ready to hand
// to plan.Plan.
func (c Config) PlanConfig() plan.Config {
	base := clique.DefaultConfig()
	return plan.Config{
		TimeBudget: time.Duration(c.TimeBudgetMillis) * time.Millisecond,
		NMax:       c.NMax,
		Priority: priority.Config{
			CriticalityBonus:   c.CriticalityBonus,
			UnlockWeight:       c.UnlockWeight,
			OverrideBonus:      c.OverrideBonus,
			TermProximityGain:  c.TermProximityGain,
			PreferredTimeBonus: c.PreferredTimeBonus,
			DifficultyWeight:   c.DifficultyWeight,
		},
		Clique: clique.Config{
			Seeds:               c.Seeds,
			KTotal:              c.KTotal,
			KMin:                c.KMin,
			MaxCourses:          c.MaxCourses,
			ExhaustiveBudget:    base.ExhaustiveBudget,
			BacktrackingMaxN:    base.BacktrackingMaxN,
			CancelCheckInterval: base.CancelCheckInterval,
		},
	}
}

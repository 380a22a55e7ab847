package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesPlanAndCliqueDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 500, cfg.TimeBudgetMillis)
	assert.Equal(t, 10, cfg.NMax)
	assert.Equal(t, 80, cfg.Seeds)
	assert.Equal(t, 80, cfg.KTotal)
	assert.Equal(t, 15, cfg.KMin)
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Seeds, cfg.Seeds)
}

func TestLoadReadsYAMLOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seeds: 40\nn_max: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Seeds)
	assert.Equal(t, 5, cfg.NMax)
	assert.Equal(t, Default().KTotal, cfg.KTotal)
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seeds: 40\n"), 0o644))

	t.Setenv("PLANNER_SEEDS", "99")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Seeds)
}

func TestPlanConfigBridgesFields(t *testing.T) {
	cfg := Default()
	cfg.Seeds = 12
	cfg.NMax = 3
	planCfg := cfg.PlanConfig()
	assert.Equal(t, 12, planCfg.Clique.Seeds)
	assert.Equal(t, 3, planCfg.NMax)
	assert.Equal(t, cfg.PreferredTimeBonus, planCfg.Priority.PreferredTimeBonus)
	assert.Equal(t, cfg.DifficultyWeight, planCfg.Priority.DifficultyWeight)
}

package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	assert.Len(t, cfg.Bots, 4, "one stock bot per difficulty tier")

	rules := cfg.DuelRules()
	assert.Equal(t, 100, rules.MaxHP)
	assert.Equal(t, 5, rules.HandSize)
	assert.Equal(t, 20, rules.DeckSize)
	assert.Equal(t, 30*time.Second, rules.TurnTimeout)
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	cfg, err := LoadServerConfig("does-not-exist.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestLoadServerConfigFromHCL(t *testing.T) {
	content := `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
}

rules {
  max_hp          = 150
  attack_damage   = 35
  turn_timeout_ms = 15000
}

bot "Nemesis" {
  character  = "witch"
  difficulty = "expert"
}
`
	path := filepath.Join(t.TempDir(), "duel-server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	require.Len(t, cfg.Bots, 1)
	assert.Equal(t, "Nemesis", cfg.Bots[0].Name)
	assert.Equal(t, "witch", cfg.Bots[0].Character)

	rules := cfg.DuelRules()
	assert.Equal(t, 150, rules.MaxHP)
	assert.Equal(t, 35, rules.AttackDamage)
	assert.Equal(t, 15*time.Second, rules.TurnTimeout)
	// Unset fields keep engine defaults.
	assert.Equal(t, 25, rules.HealAmount)
	assert.Equal(t, 20, rules.TurnLimit)
}

func TestLoadServerConfigInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`server {`), 0o644))

	_, err := LoadServerConfig(path)
	assert.Error(t, err)
}

func TestServerConfigValidate(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		cfg := DefaultServerConfig()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad bot character", func(t *testing.T) {
		cfg := DefaultServerConfig()
		cfg.Bots[0].Character = "paladin"
		assert.ErrorContains(t, cfg.Validate(), "unknown character")
	})

	t.Run("bad bot difficulty", func(t *testing.T) {
		cfg := DefaultServerConfig()
		cfg.Bots[0].Difficulty = "nightmare"
		assert.ErrorContains(t, cfg.Validate(), "unknown difficulty")
	})

	t.Run("bad rules", func(t *testing.T) {
		cfg := DefaultServerConfig()
		cfg.Rules = &RulesConfig{DeckSize: 3}
		assert.Error(t, cfg.Validate(), "deck smaller than hand must be rejected")
	})
}

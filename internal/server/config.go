package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/kestrelgames/duelbots/internal/duel"
)

// ServerConfig is the complete duel-server configuration.
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Rules  *RulesConfig   `hcl:"rules,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// RulesConfig is the balance configuration block. Unset fields fall back to
// the engine defaults.
type RulesConfig struct {
	MaxHP         int `hcl:"max_hp,optional"`
	HandSize      int `hcl:"hand_size,optional"`
	DeckSize      int `hcl:"deck_size,optional"`
	AttackDamage  int `hcl:"attack_damage,optional"`
	ShieldGain    int `hcl:"shield_gain,optional"`
	HealAmount    int `hcl:"heal_amount,optional"`
	CurseTurns    int `hcl:"curse_turns,optional"`
	CurseDrain    int `hcl:"curse_drain,optional"`
	TurnLimit     int `hcl:"turn_limit,optional"`
	TurnTimeoutMs int `hcl:"turn_timeout_ms,optional"`
}

// BotConfig names a stock opponent clients can challenge.
type BotConfig struct {
	Name       string `hcl:"name,label"`
	Character  string `hcl:"character"`
	Difficulty string `hcl:"difficulty"`
}

// DefaultServerConfig returns the default configuration: one stock bot per
// difficulty tier and the engine's default rules.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Bots: []BotConfig{
			{Name: "Sparring Dummy", Character: "warden", Difficulty: "easy"},
			{Name: "Squire", Character: "knight", Difficulty: "medium"},
			{Name: "Hexen", Character: "witch", Difficulty: "hard"},
			{Name: "Grandmaster", Character: "cleric", Difficulty: "expert"},
		},
	}
}

// LoadServerConfig loads configuration from an HCL file, returning defaults
// when the file does not exist.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if len(config.Bots) == 0 {
		config.Bots = DefaultServerConfig().Bots
	}

	return &config, nil
}

// DuelRules converts the rules block into engine rules, filling unset
// fields from the defaults.
func (c *ServerConfig) DuelRules() duel.Rules {
	rules := duel.DefaultRules()
	rc := c.Rules
	if rc == nil {
		return rules
	}
	if rc.MaxHP > 0 {
		rules.MaxHP = rc.MaxHP
	}
	if rc.HandSize > 0 {
		rules.HandSize = rc.HandSize
	}
	if rc.DeckSize > 0 {
		rules.DeckSize = rc.DeckSize
	}
	if rc.AttackDamage > 0 {
		rules.AttackDamage = rc.AttackDamage
	}
	if rc.ShieldGain > 0 {
		rules.ShieldGain = rc.ShieldGain
	}
	if rc.HealAmount > 0 {
		rules.HealAmount = rc.HealAmount
	}
	if rc.CurseTurns > 0 {
		rules.CurseTurns = rc.CurseTurns
	}
	if rc.CurseDrain > 0 {
		rules.CurseDrain = rc.CurseDrain
	}
	if rc.TurnLimit > 0 {
		rules.TurnLimit = rc.TurnLimit
	}
	if rc.TurnTimeoutMs > 0 {
		rules.TurnTimeout = time.Duration(rc.TurnTimeoutMs) * time.Millisecond
	}
	return rules
}

// Validate checks the configuration before startup.
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if err := c.DuelRules().Validate(); err != nil {
		return err
	}
	for _, b := range c.Bots {
		if _, err := duel.ParseCharacter(b.Character); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
		if _, err := duel.ParseDifficulty(b.Difficulty); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}
	return nil
}

// GetServerAddress returns the host:port pair to bind to.
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

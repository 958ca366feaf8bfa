package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Loop      LoopConfig      `toml:"loop"`
	Battle    BattleConfig    `toml:"battle"`
	Player    PlayerConfig    `toml:"player"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	UI        UIConfig        `toml:"ui"`
	Autoplay  AutoplayConfig  `toml:"autoplay"`
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type BattleConfig struct {
	CountdownDelay   float64       `toml:"countdown_delay"` // number of countdown steps, may be fractional
	CountdownStep    time.Duration `toml:"countdown_step"`
	EngageTimeout    time.Duration `toml:"engage_timeout"` // 0 = wait forever
	DefeatBannerHold time.Duration `toml:"defeat_banner_hold"`
}

type PlayerConfig struct {
	Name  string  `toml:"name"`
	Speed float64 `toml:"speed"` // world units per second
	HP    int     `toml:"hp"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Z     float64 `toml:"z"`
}

type DataConfig struct {
	Enemies    string `toml:"enemies"`
	Encounters string `toml:"encounters"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables battle history
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	FlushTimeout    time.Duration `toml:"flush_timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
}

type UIConfig struct {
	Mode     string `toml:"mode"`     // "log" or "terminal"
	Language string `toml:"language"` // BCP 47 tag, e.g. "en", "zh-Hant"
}

type AutoplayConfig struct {
	Enabled       bool   `toml:"enabled"`
	Encounter     string `toml:"encounter"`
	DamagePerBeat int    `toml:"damage_per_beat"`
	EnemyHitEvery int    `toml:"enemy_hit_every"` // beats between enemy hits on the player, 0 = never
	EnemyDamage   int    `toml:"enemy_damage"`
	MaxTicks      int    `toml:"max_ticks"` // stop the loop after this many ticks, 0 = run until signal
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the game loop cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Loop.TickRate <= 0 {
		errs = append(errs, errors.New("loop.tick_rate must be positive"))
	}
	if c.Battle.CountdownDelay < 0 {
		errs = append(errs, errors.New("battle.countdown_delay must not be negative"))
	}
	if c.Battle.CountdownStep <= 0 {
		errs = append(errs, errors.New("battle.countdown_step must be positive"))
	}
	if c.Battle.EngageTimeout < 0 {
		errs = append(errs, errors.New("battle.engage_timeout must not be negative"))
	}
	if c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player.speed must be positive"))
	}
	if c.Player.HP <= 0 {
		errs = append(errs, errors.New("player.hp must be positive"))
	}
	switch c.UI.Mode {
	case "log", "terminal":
	default:
		errs = append(errs, fmt.Errorf("ui.mode %q: want log or terminal", c.UI.Mode))
	}
	return errors.Join(errs...)
}

func Defaults() *Config {
	return &Config{
		Loop: LoopConfig{
			TickRate: 50 * time.Millisecond,
		},
		Battle: BattleConfig{
			CountdownDelay:   3,
			CountdownStep:    time.Second,
			EngageTimeout:    10 * time.Second,
			DefeatBannerHold: 3 * time.Second,
		},
		Player: PlayerConfig{
			Name:  "Player",
			Speed: 6,
			HP:    100,
		},
		Data: DataConfig{
			Enemies:    "data/yaml/enemies.yaml",
			Encounters: "data/yaml/encounters.yaml",
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			FlushTimeout:    5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Mode:     "log",
			Language: "en",
		},
		Autoplay: AutoplayConfig{
			DamagePerBeat: 10,
			EnemyHitEvery: 4,
			EnemyDamage:   5,
		},
	}
}

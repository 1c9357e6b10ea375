package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the doggy host. Values missing from the file
// keep their defaults.
type Config struct {
	Physics  PhysicsConfig  `toml:"physics"`
	Activity ActivityConfig `toml:"activity"`
	Probe    ProbeConfig    `toml:"probe"`
	UI       UIConfig       `toml:"ui"`
	Control  ControlConfig  `toml:"control"`
	Logging  LoggingConfig  `toml:"logging"`
}

// PhysicsConfig values are tuned by feel, in page pixels per frame.
type PhysicsConfig struct {
	Gravity          float64 `toml:"gravity"`
	JumpForce        float64 `toml:"jump_force"`
	MaxFallSpeed     float64 `toml:"max_fall_speed"`
	WalkSpeed        float64 `toml:"walk_speed"`
	RunSpeed         float64 `toml:"run_speed"`
	FlySpeed         float64 `toml:"fly_speed"`
	FlyDamping       float64 `toml:"fly_damping"`
	ClimbSpeed       float64 `toml:"climb_speed"`
	PetWidth         float64 `toml:"pet_width"`
	PetHeight        float64 `toml:"pet_height"`
	StartX           float64 `toml:"start_x"`
	StartY           float64 `toml:"start_y"`
	EdgeMargin       float64 `toml:"edge_margin"`  // right edge clamp is viewport width minus this
	FloorMargin      float64 `toml:"floor_margin"` // implicit floor sits this far above the viewport bottom
	ArrivalRadius    float64 `toml:"arrival_radius"`
	FlyArrivalRadius float64 `toml:"fly_arrival_radius"`
	FlyThreshold     float64 `toml:"fly_threshold"` // vertical gap that turns a run into a flight
	JumpMinDistance  float64 `toml:"jump_min_distance"`
	StuckEpsilon     float64 `toml:"stuck_epsilon"`
	StuckThreshold   int     `toml:"stuck_threshold"`
}

// ActivityConfig holds how long each activity and transient overlay lasts.
type ActivityConfig struct {
	WalkMin            time.Duration `toml:"walk_min"`
	WalkJitter         time.Duration `toml:"walk_jitter"`
	Sniff              time.Duration `toml:"sniff"`
	Dig                time.Duration `toml:"dig"`
	Bark               time.Duration `toml:"bark"`
	Sit                time.Duration `toml:"sit"`
	Sleep              time.Duration `toml:"sleep"`
	PlayJump           time.Duration `toml:"play_jump"`
	PlayBark           time.Duration `toml:"play_bark"`
	MenuArmDelay       time.Duration `toml:"menu_arm_delay"`
	NoticeDuration     time.Duration `toml:"notice_duration"`
	TypingDebounce     time.Duration `toml:"typing_debounce"`
	StealChance        float64       `toml:"steal_chance"`
	StealMinLength     int           `toml:"steal_min_length"`
	StealRunDuration   time.Duration `toml:"steal_run_duration"`
	StolenFadeDelay    time.Duration `toml:"stolen_fade_delay"`
	StolenFadeDuration time.Duration `toml:"stolen_fade_duration"`
}

// ProbeConfig tunes the search for a surface under the pet's feet.
type ProbeConfig struct {
	MaxSearch         float64  `toml:"max_search"`
	FootOffset        float64  `toml:"foot_offset"`
	LadderRungDepth   float64  `toml:"ladder_rung_depth"`
	MinWalkableWidth  float64  `toml:"min_walkable_width"`
	MinWalkableHeight float64  `toml:"min_walkable_height"`
	WalkableTags      []string `toml:"walkable_tags"`
}

// UIConfig configures the terminal host.
type UIConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	CellWidth     float64       `toml:"cell_width"`
	CellHeight    float64       `toml:"cell_height"`
	LayoutPath    string        `toml:"layout_path"`
	SummonOnStart bool          `toml:"summon_on_start"`
}

// ControlConfig configures the summon/dismiss WebSocket endpoint.
type ControlConfig struct {
	Enabled      bool          `toml:"enabled"`
	BindAddress  string        `toml:"bind_address"`
	Path         string        `toml:"path"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	ReplyTimeout time.Duration `toml:"reply_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`      // "json" or "console"
	OutputPath string `toml:"output_path"` // the terminal belongs to the UI, so logs go to a file
}

// Load reads a TOML config file on top of the defaults. A missing file is not
// an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the update loop cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Physics.PetWidth <= 0 || c.Physics.PetHeight <= 0:
		return errors.New("physics: pet size must be positive")
	case c.Physics.Gravity < 0:
		return errors.New("physics: gravity must not be negative")
	case c.Physics.RunSpeed <= 0 || c.Physics.FlySpeed <= 0:
		return errors.New("physics: run and fly speeds must be positive")
	case c.Physics.ArrivalRadius <= 0 || c.Physics.FlyArrivalRadius <= 0:
		return errors.New("physics: arrival radii must be positive")
	case c.Probe.MaxSearch <= 0:
		return errors.New("probe: max_search must be positive")
	case c.Activity.StealChance < 0 || c.Activity.StealChance > 1:
		return errors.New("activity: steal_chance must be within [0, 1]")
	case c.UI.FrameInterval <= 0:
		return errors.New("ui: frame_interval must be positive")
	case c.UI.CellWidth <= 0 || c.UI.CellHeight <= 0:
		return errors.New("ui: cell size must be positive")
	}
	return nil
}

// Defaults returns the configuration the doggy ships with.
func Defaults() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:          0.5,
			JumpForce:        -10,
			MaxFallSpeed:     15,
			WalkSpeed:        2,
			RunSpeed:         5,
			FlySpeed:         4,
			FlyDamping:       0.92,
			ClimbSpeed:       2,
			PetWidth:         40,
			PetHeight:        35,
			StartX:           100,
			StartY:           100,
			EdgeMargin:       50,
			FloorMargin:      50,
			ArrivalRadius:    10,
			FlyArrivalRadius: 15,
			FlyThreshold:     200,
			JumpMinDistance:  20,
			StuckEpsilon:     0.5,
			StuckThreshold:   30,
		},
		Activity: ActivityConfig{
			WalkMin:            3 * time.Second,
			WalkJitter:         4 * time.Second,
			Sniff:              2 * time.Second,
			Dig:                2 * time.Second,
			Bark:               1 * time.Second,
			Sit:                3 * time.Second,
			Sleep:              5 * time.Second,
			PlayJump:           600 * time.Millisecond,
			PlayBark:           1 * time.Second,
			MenuArmDelay:       100 * time.Millisecond,
			NoticeDuration:     2 * time.Second,
			TypingDebounce:     500 * time.Millisecond,
			StealChance:        0.3,
			StealMinLength:     4,
			StealRunDuration:   3 * time.Second,
			StolenFadeDelay:    2 * time.Second,
			StolenFadeDuration: 1 * time.Second,
		},
		Probe: ProbeConfig{
			MaxSearch:         100,
			FootOffset:        5,
			LadderRungDepth:   10,
			MinWalkableWidth:  20,
			MinWalkableHeight: 8,
			WalkableTags:      []string{"IMG", "INPUT", "BUTTON", "SELECT", "TEXTAREA", "A", "LABEL"},
		},
		UI: UIConfig{
			FrameInterval: 16 * time.Millisecond,
			CellWidth:     8,
			CellHeight:    16,
			SummonOnStart: true,
		},
		Control: ControlConfig{
			Enabled:      true,
			BindAddress:  "127.0.0.1:7878",
			Path:         "/ws",
			WriteTimeout: 5 * time.Second,
			ReplyTimeout: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "webdoggy.log",
		},
	}
}
